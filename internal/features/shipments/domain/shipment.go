package domain

import "encoding/json"

// DeliveryStatus represents the current delivery state of a shipment.
type DeliveryStatus string

const (
	// DeliveryStatusPending indicates the shipment has not left the origin yet.
	DeliveryStatusPending DeliveryStatus = "pending"
	// DeliveryStatusShipping indicates the shipment is in transit.
	DeliveryStatusShipping DeliveryStatus = "shipping"
	// DeliveryStatusDelivered indicates the shipment has reached its destination.
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	// DeliveryStatusSeized indicates the shipment was seized; a bill applies.
	DeliveryStatusSeized DeliveryStatus = "seized"
)

// IsValid reports whether s is one of the known delivery statuses.
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusShipping, DeliveryStatusDelivered, DeliveryStatusSeized:
		return true
	}
	return false
}

// Address is a single-field address record.
type Address struct {
	// AddressLocality is the locality (city/town) of the address.
	AddressLocality string `json:"addressLocality"`
}

// Location wraps an Address to match the upstream wire shape.
type Location struct {
	Address Address `json:"address"`
}

// Customer holds the client the shipment belongs to.
type Customer struct {
	// FullName is the customer's full name.
	FullName string `json:"fullName"`
	// Email is the customer's contact email.
	Email string `json:"email"`
	// Country is the customer's country.
	Country string `json:"country"`
	// Checkout flags whether the customer has completed checkout.
	Checkout bool `json:"checkout"`
}

// StatusInfo is the current delivery state of a shipment.
type StatusInfo struct {
	// Timestamp is the datetime of the latest status change, in input format.
	Timestamp string `json:"timestamp"`
	// Location is where the shipment currently is.
	Location Location `json:"location"`
	// Status is the delivery status.
	Status DeliveryStatus `json:"status"`
	// Description describes the current state.
	Description string `json:"description"`
	// Bill is the amount due; only relevant when Status is "seized".
	Bill float64 `json:"bill,omitempty"`
}

// Event is a point-in-time occurrence attached to a shipment. Events form a
// chronological log; insertion order is meaningful.
type Event struct {
	// RecordID is the server-assigned id, passed through untouched.
	RecordID string `json:"_id,omitempty"`
	// EventID is the client-generated identity used for list membership and
	// editing. It is distinct from the server record id.
	EventID string `json:"eventId"`
	// Timestamp is the event datetime, in input format.
	Timestamp string `json:"timestamp"`
	// Location is where the event occurred.
	Location Location `json:"location"`
	// Description describes the event.
	Description string `json:"description"`
}

// Shipment is the root entity tracked by the dashboard.
type Shipment struct {
	// RecordID, CreatedAt, UpdatedAt and Version are server-assigned fields,
	// passed through untouched and never mutated client-side.
	RecordID  string          `json:"_id,omitempty"`
	CreatedAt string          `json:"createdAt,omitempty"`
	UpdatedAt string          `json:"updatedAt,omitempty"`
	Version   json.RawMessage `json:"__v,omitempty"`

	// BelongsTo is the customer the shipment belongs to.
	BelongsTo Customer `json:"belongsTo"`
	// TrackingID is the client-chosen external identifier; it doubles as the
	// update key for edit submissions.
	TrackingID string `json:"trackingId"`
	// Origin is where the shipment departs from.
	Origin Location `json:"origin"`
	// Destination is where the shipment is headed.
	Destination Location `json:"destination"`
	// Status is the current delivery state.
	Status StatusInfo `json:"status"`
	// Events is the ordered event log. A shipment needs at least one event to
	// be submittable.
	Events []Event `json:"events"`
}

// NewShipment returns the canonical empty shipment: all scalars empty, status
// "pending", no events.
func NewShipment() Shipment {
	return Shipment{
		Status: StatusInfo{
			Status: DeliveryStatusPending,
		},
		Events: []Event{},
	}
}

// NewEvent returns the canonical empty event.
func NewEvent() Event {
	return Event{}
}

// FindEvent returns the event with the given event id, scanning in order.
// The second return is false when no event matches.
func (s *Shipment) FindEvent(eventID string) (Event, bool) {
	for _, ev := range s.Events {
		if ev.EventID == eventID {
			return ev, true
		}
	}
	return Event{}, false
}
