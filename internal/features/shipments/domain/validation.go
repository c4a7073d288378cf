package domain

import "strings"

// FieldName identifies a form input by the name the dashboard uses for it.
type FieldName string

// Shipment-level field names.
const (
	FieldFullName              FieldName = "fullName"
	FieldEmail                 FieldName = "email"
	FieldCountry               FieldName = "country"
	FieldOriginAddress         FieldName = "originAddress"
	FieldDestinationAddress    FieldName = "destinationAddress"
	FieldStatusTimestamp       FieldName = "statusTimestamp"
	FieldStatusLocationAddress FieldName = "statusLocationAddress"
	FieldStatus                FieldName = "status"
	FieldStatusDescription     FieldName = "statusDescription"
	FieldBill                  FieldName = "bill"
)

// Event-level field names.
const (
	FieldEventTimestamp       FieldName = "timestamp"
	FieldEventLocationAddress FieldName = "eventLocationAddress"
	FieldEventDescription     FieldName = "description"
)

// Validate is the pure per-field predicate: timestamp fields must parse as a
// calendar datetime, text fields must be non-empty after trimming.
func Validate(name FieldName, value string) bool {
	switch name {
	case FieldStatusTimestamp, FieldEventTimestamp:
		return IsValidDatetime(value)
	default:
		return strings.TrimSpace(value) != ""
	}
}

// FieldWarning is one leaf of a validation error state. The flag is display
// state: it tracks whether the field's committed value failed its predicate at
// the last edit, and is deliberately decoupled from the current value so that
// freshly opened forms start clean.
type FieldWarning struct {
	ShowValidationWarning bool `json:"showValidationWarning"`
}

// ShipmentErrors tracks per-field warnings for the shipment-level form.
type ShipmentErrors struct {
	FullName            FieldWarning `json:"fullName"`
	Email               FieldWarning `json:"email"`
	OriginAddress       FieldWarning `json:"originAddress"`
	DestinationAddress  FieldWarning `json:"destinationAddress"`
	DeliveryTimestamp   FieldWarning `json:"deliveryTimestamp"`
	DeliveryLocation    FieldWarning `json:"deliveryLocation"`
	DeliveryDescription FieldWarning `json:"deliveryDescription"`
}

// SetWarning updates exactly one leaf, leaving the others untouched. Field
// names without a warning leaf (country, status, bill) are ignored.
func (e *ShipmentErrors) SetWarning(name FieldName, warning bool) {
	switch name {
	case FieldFullName:
		e.FullName.ShowValidationWarning = warning
	case FieldEmail:
		e.Email.ShowValidationWarning = warning
	case FieldOriginAddress:
		e.OriginAddress.ShowValidationWarning = warning
	case FieldDestinationAddress:
		e.DestinationAddress.ShowValidationWarning = warning
	case FieldStatusTimestamp:
		e.DeliveryTimestamp.ShowValidationWarning = warning
	case FieldStatusLocationAddress:
		e.DeliveryLocation.ShowValidationWarning = warning
	case FieldStatusDescription:
		e.DeliveryDescription.ShowValidationWarning = warning
	}
}

// Reset clears every warning, used when a form is freshly opened.
func (e *ShipmentErrors) Reset() {
	*e = ShipmentErrors{}
}

// AllClear reports whether no warning is active.
func (e *ShipmentErrors) AllClear() bool {
	return *e == ShipmentErrors{}
}

// EventErrors tracks per-field warnings for the event sub-form.
type EventErrors struct {
	Location    FieldWarning `json:"location"`
	Timestamp   FieldWarning `json:"timestamp"`
	Description FieldWarning `json:"description"`
}

// SetWarning updates exactly one leaf, leaving the others untouched.
func (e *EventErrors) SetWarning(name FieldName, warning bool) {
	switch name {
	case FieldEventLocationAddress:
		e.Location.ShowValidationWarning = warning
	case FieldEventTimestamp:
		e.Timestamp.ShowValidationWarning = warning
	case FieldEventDescription:
		e.Description.ShowValidationWarning = warning
	}
}

// Reset clears every warning, used when the event modal is freshly mounted.
func (e *EventErrors) Reset() {
	*e = EventErrors{}
}

// AllClear reports whether no warning is active.
func (e *EventErrors) AllClear() bool {
	return *e == EventErrors{}
}
