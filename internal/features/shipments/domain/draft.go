package domain

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// FormMode distinguishes creating a new record from editing an existing one.
type FormMode string

const (
	// ModeAdd creates a new record.
	ModeAdd FormMode = "add"
	// ModeEdit updates an existing record, keyed by tracking id.
	ModeEdit FormMode = "edit"
)

var (
	// ErrUnknownField is returned when a field name matches no known input.
	// Unknown names are rejected at the boundary instead of being silently
	// spread onto the draft.
	ErrUnknownField = errors.New("unknown field name")
	// ErrInvalidStatus is returned for a status value outside the enum.
	ErrInvalidStatus = errors.New("invalid delivery status")
	// ErrInvalidBill is returned when the bill value does not parse as a number.
	ErrInvalidBill = errors.New("bill must be numeric")
	// ErrEventBlocked is returned when the event draft has active warnings.
	ErrEventBlocked = errors.New("event has validation warnings")
	// ErrEventFormClosed is returned when saving is attempted while the event
	// sub-form is not open.
	ErrEventFormClosed = errors.New("event form is not open")
	// ErrNotSubmittable is returned when submission gating fails.
	ErrNotSubmittable = errors.New("shipment draft is not submittable")
)

// Draft is the server-held state of one shipment form instance: the shipment
// being edited, the transient event sub-form, and the warning state for both.
// There is exactly one owner per draft; mutations are not concurrency-safe.
type Draft struct {
	// ID identifies the draft resource.
	ID string `json:"id"`
	// Mode is "add" for a new shipment, "edit" for an existing one.
	Mode FormMode `json:"mode"`
	// Shipment is the draft document. It is the single source of truth; the
	// event sub-form copies in and out of it only on explicit save.
	Shipment Shipment `json:"shipment"`

	// Event is the transient single-event draft owned by the sub-form.
	Event Event `json:"event"`
	// EventMode says whether the open sub-form adds a new event or edits one.
	EventMode FormMode `json:"eventMode"`
	// EventOpen tracks whether the event sub-form is open.
	EventOpen bool `json:"eventOpen"`

	// ShipmentErrors and EventErrors are the decoupled display-warning states.
	ShipmentErrors ShipmentErrors `json:"shipmentErrors"`
	EventErrors    EventErrors    `json:"eventErrors"`

	// CreatedAt and UpdatedAt track the draft's own lifecycle.
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewDraft starts an "add" draft with a freshly generated tracking id and the
// canonical empty shipment.
func NewDraft() *Draft {
	now := time.Now().UTC()

	shipment := NewShipment()
	shipment.TrackingID = NewTrackingID()

	return &Draft{
		ID:        NewDraftID(),
		Mode:      ModeAdd,
		Shipment:  shipment,
		Event:     NewEvent(),
		EventMode: ModeAdd,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewEditDraft starts an "edit" draft from an existing shipment. Every
// timestamp is reformatted from the wire format to the input format, and all
// warnings start clear even if prefilled data would fail validation today.
func NewEditDraft(shipment Shipment) *Draft {
	now := time.Now().UTC()

	shipment.Status.Timestamp = ToInputDatetime(shipment.Status.Timestamp)
	for i := range shipment.Events {
		shipment.Events[i].Timestamp = ToInputDatetime(shipment.Events[i].Timestamp)
	}
	if shipment.Events == nil {
		shipment.Events = []Event{}
	}

	return &Draft{
		ID:        NewDraftID(),
		Mode:      ModeEdit,
		Shipment:  shipment,
		Event:     NewEvent(),
		EventMode: ModeAdd,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RegenerateTrackingID replaces the tracking id with a fresh one. Allowed in
// both modes; in edit mode this changes the update key.
func (d *Draft) RegenerateTrackingID() {
	d.Shipment.TrackingID = NewTrackingID()
	d.touch()
}

// ApplyField routes a shipment-level field change into the correct nested
// path and recomputes that field's warning. Unknown names return
// ErrUnknownField; the value is committed as typed, warnings never block it.
func (d *Draft) ApplyField(name FieldName, value string) error {
	switch name {
	case FieldFullName:
		d.Shipment.BelongsTo.FullName = value
	case FieldEmail:
		d.Shipment.BelongsTo.Email = value
	case FieldCountry:
		d.Shipment.BelongsTo.Country = value
	case FieldOriginAddress:
		d.Shipment.Origin.Address.AddressLocality = value
	case FieldDestinationAddress:
		d.Shipment.Destination.Address.AddressLocality = value
	case FieldStatusTimestamp:
		d.Shipment.Status.Timestamp = value
	case FieldStatusLocationAddress:
		d.Shipment.Status.Location.Address.AddressLocality = value
	case FieldStatus:
		status := DeliveryStatus(value)
		if !status.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidStatus, value)
		}
		d.Shipment.Status.Status = status
	case FieldStatusDescription:
		d.Shipment.Status.Description = value
	case FieldBill:
		bill, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidBill, value)
		}
		d.Shipment.Status.Bill = bill
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	d.ShipmentErrors.SetWarning(name, !Validate(name, value))
	d.touch()
	return nil
}

// OpenEvent opens the event sub-form. In add mode the draft is cleared and a
// fresh event id assigned immediately, so a save always has a stable id to
// key on. In edit mode the event is looked up by id with a linear scan and
// loaded verbatim; when the lookup misses, no draft is loaded and the caller
// must guard. Re-opening while already open replaces the draft.
func (d *Draft) OpenEvent(mode FormMode, eventID string) {
	switch mode {
	case ModeEdit:
		d.EventMode = ModeEdit
		if found, ok := d.Shipment.FindEvent(eventID); ok {
			d.Event = found
		}
	default:
		d.EventMode = ModeAdd
		d.Event = NewEvent()
		d.Event.EventID = NewEventID()
	}

	d.EventOpen = true
	d.EventErrors.Reset()
	d.touch()
}

// ApplyEventField routes an event-level field change and recomputes that
// field's warning. Unknown names return ErrUnknownField.
func (d *Draft) ApplyEventField(name FieldName, value string) error {
	switch name {
	case FieldEventTimestamp:
		d.Event.Timestamp = value
	case FieldEventLocationAddress:
		d.Event.Location.Address.AddressLocality = value
	case FieldEventDescription:
		d.Event.Description = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	d.EventErrors.SetWarning(name, !Validate(name, value))
	d.touch()
	return nil
}

// CanSaveEvent reports whether the event sub-form can be saved: no active
// event-level warnings.
func (d *Draft) CanSaveEvent() bool {
	return d.EventErrors.AllClear()
}

// SaveEvent merges the event draft back into the shipment. Saving requires an
// open sub-form; otherwise the zero-value draft would be appended as a junk
// event. In add mode the draft is appended and then reset with a fresh id, and
// the sub-form stays open for further adds. In edit mode any entry with the
// same event id is removed and the draft appended, so an edited event moves to
// the end of the list; the sub-form then closes.
func (d *Draft) SaveEvent() error {
	if !d.EventOpen {
		return ErrEventFormClosed
	}
	if !d.CanSaveEvent() {
		return ErrEventBlocked
	}

	if d.EventMode == ModeEdit {
		kept := make([]Event, 0, len(d.Shipment.Events))
		for _, ev := range d.Shipment.Events {
			if ev.EventID != d.Event.EventID {
				kept = append(kept, ev)
			}
		}
		d.Shipment.Events = append(kept, d.Event)
		d.CloseEvent()
		return nil
	}

	d.Shipment.Events = append(d.Shipment.Events, d.Event)
	d.Event = NewEvent()
	d.Event.EventID = NewEventID()
	d.touch()
	return nil
}

// CloseEvent discards the event draft and clears event-level warnings, so the
// sub-form never re-opens prefilled with stale data.
func (d *Draft) CloseEvent() {
	d.EventOpen = false
	d.Event = NewEvent()
	d.EventErrors.Reset()
	d.touch()
}

// DeleteEvent removes the matching event from the list by id. Deleting an id
// that is not present leaves the list unchanged.
func (d *Draft) DeleteEvent(eventID string) {
	kept := make([]Event, 0, len(d.Shipment.Events))
	for _, ev := range d.Shipment.Events {
		if ev.EventID != eventID {
			kept = append(kept, ev)
		}
	}
	d.Shipment.Events = kept
	d.touch()
}

// CanSubmit reports whether the shipment draft may be submitted: no active
// shipment-level warnings, at least one event, and a non-empty tracking id.
func (d *Draft) CanSubmit() bool {
	return d.ShipmentErrors.AllClear() &&
		len(d.Shipment.Events) > 0 &&
		d.Shipment.TrackingID != ""
}

func (d *Draft) touch() {
	d.UpdatedAt = time.Now().UTC()
}
