package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addValidEvent opens the sub-form, fills the event and saves it.
func addValidEvent(t *testing.T, d *Draft, location string) {
	t.Helper()

	d.OpenEvent(ModeAdd, "")
	require.NoError(t, d.ApplyEventField(FieldEventTimestamp, "2024-05-01T09:00"))
	require.NoError(t, d.ApplyEventField(FieldEventLocationAddress, location))
	require.NoError(t, d.ApplyEventField(FieldEventDescription, "Picked up"))
	require.NoError(t, d.SaveEvent())
}

// TestNewDraft verifies an "add" draft gets a tracking id immediately and is
// not yet submittable.
func TestNewDraft(t *testing.T) {
	d := NewDraft()

	assert.Equal(t, ModeAdd, d.Mode)
	assert.Len(t, d.Shipment.TrackingID, 10)
	assert.Empty(t, d.Shipment.Events)
	assert.False(t, d.CanSubmit())
	assert.True(t, d.ShipmentErrors.AllClear())
}

// TestNewEditDraft verifies timestamps are reformatted and warnings start
// clear even for prefilled data.
func TestNewEditDraft(t *testing.T) {
	shipment := NewShipment()
	shipment.TrackingID = "1234567890"
	shipment.Status.Timestamp = "2023-10-21T15:48:13.959Z"
	shipment.Events = []Event{
		{EventID: "ev-1", Timestamp: "2023-10-20T22:06:02.956Z", Description: "Created"},
	}

	d := NewEditDraft(shipment)

	assert.Equal(t, ModeEdit, d.Mode)
	assert.Equal(t, "2023-10-21T15:48", d.Shipment.Status.Timestamp)
	assert.Equal(t, "2023-10-20T22:06", d.Shipment.Events[0].Timestamp)
	assert.True(t, d.ShipmentErrors.AllClear())
	assert.True(t, d.EventErrors.AllClear())
}

// TestDraft_RegenerateTrackingID verifies the id is replaced with fresh codes.
func TestDraft_RegenerateTrackingID(t *testing.T) {
	d := NewDraft()

	seen := map[string]struct{}{d.Shipment.TrackingID: {}}
	for i := 0; i < 20; i++ {
		d.RegenerateTrackingID()
		assert.Len(t, d.Shipment.TrackingID, 10)
		seen[d.Shipment.TrackingID] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

// TestDraft_ApplyField_Routing verifies each field name lands in the correct
// nested path.
func TestDraft_ApplyField_Routing(t *testing.T) {
	d := NewDraft()

	require.NoError(t, d.ApplyField(FieldFullName, "Jane Doe"))
	require.NoError(t, d.ApplyField(FieldEmail, "jane@example.com"))
	require.NoError(t, d.ApplyField(FieldCountry, "Nigeria"))
	require.NoError(t, d.ApplyField(FieldOriginAddress, "Lagos"))
	require.NoError(t, d.ApplyField(FieldDestinationAddress, "Abuja"))
	require.NoError(t, d.ApplyField(FieldStatusTimestamp, "2024-05-01T09:00"))
	require.NoError(t, d.ApplyField(FieldStatusLocationAddress, "Lagos"))
	require.NoError(t, d.ApplyField(FieldStatus, "seized"))
	require.NoError(t, d.ApplyField(FieldStatusDescription, "Held at customs"))
	require.NoError(t, d.ApplyField(FieldBill, "249.99"))

	assert.Equal(t, "Jane Doe", d.Shipment.BelongsTo.FullName)
	assert.Equal(t, "jane@example.com", d.Shipment.BelongsTo.Email)
	assert.Equal(t, "Nigeria", d.Shipment.BelongsTo.Country)
	assert.Equal(t, "Lagos", d.Shipment.Origin.Address.AddressLocality)
	assert.Equal(t, "Abuja", d.Shipment.Destination.Address.AddressLocality)
	assert.Equal(t, "2024-05-01T09:00", d.Shipment.Status.Timestamp)
	assert.Equal(t, "Lagos", d.Shipment.Status.Location.Address.AddressLocality)
	assert.Equal(t, DeliveryStatusSeized, d.Shipment.Status.Status)
	assert.Equal(t, "Held at customs", d.Shipment.Status.Description)
	assert.Equal(t, 249.99, d.Shipment.Status.Bill)
}

// TestDraft_ApplyField_UnknownName verifies closed dispatch.
func TestDraft_ApplyField_UnknownName(t *testing.T) {
	d := NewDraft()

	err := d.ApplyField("favouriteColour", "orange")

	assert.ErrorIs(t, err, ErrUnknownField)
}

// TestDraft_ApplyField_InvalidStatus verifies the status enum is enforced.
func TestDraft_ApplyField_InvalidStatus(t *testing.T) {
	d := NewDraft()

	err := d.ApplyField(FieldStatus, "teleported")

	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, DeliveryStatusPending, d.Shipment.Status.Status)
}

// TestDraft_ApplyField_InvalidBill verifies non-numeric bills are rejected.
func TestDraft_ApplyField_InvalidBill(t *testing.T) {
	d := NewDraft()

	err := d.ApplyField(FieldBill, "lots")

	assert.ErrorIs(t, err, ErrInvalidBill)
}

// TestDraft_ApplyField_Warnings verifies warnings track the committed value
// without ever blocking the edit itself.
func TestDraft_ApplyField_Warnings(t *testing.T) {
	d := NewDraft()

	require.NoError(t, d.ApplyField(FieldFullName, ""))
	assert.True(t, d.ShipmentErrors.FullName.ShowValidationWarning)
	assert.Empty(t, d.Shipment.BelongsTo.FullName)

	require.NoError(t, d.ApplyField(FieldFullName, "Jane Doe"))
	assert.False(t, d.ShipmentErrors.FullName.ShowValidationWarning)

	require.NoError(t, d.ApplyField(FieldStatusTimestamp, "not-a-date"))
	assert.True(t, d.ShipmentErrors.DeliveryTimestamp.ShowValidationWarning)
	// the bad value is still committed; warnings are a display gate
	assert.Equal(t, "not-a-date", d.Shipment.Status.Timestamp)
}

// TestDraft_OpenEvent_Add verifies a fresh event id is assigned immediately,
// before any save.
func TestDraft_OpenEvent_Add(t *testing.T) {
	d := NewDraft()

	d.OpenEvent(ModeAdd, "")

	assert.True(t, d.EventOpen)
	assert.Equal(t, ModeAdd, d.EventMode)
	assert.NotEmpty(t, d.Event.EventID)
	assert.True(t, d.EventErrors.AllClear())
}

// TestDraft_OpenEvent_Edit verifies the event loads verbatim with its id
// unchanged.
func TestDraft_OpenEvent_Edit(t *testing.T) {
	d := NewDraft()
	addValidEvent(t, d, "Lagos")
	eventID := d.Shipment.Events[0].EventID

	d.OpenEvent(ModeEdit, eventID)

	assert.True(t, d.EventOpen)
	assert.Equal(t, ModeEdit, d.EventMode)
	assert.Equal(t, eventID, d.Event.EventID)
	assert.Equal(t, "Lagos", d.Event.Location.Address.AddressLocality)
}

// TestDraft_OpenEvent_Edit_NotFound verifies the lookup miss is silently
// inert: the sub-form opens but no draft is loaded.
func TestDraft_OpenEvent_Edit_NotFound(t *testing.T) {
	d := NewDraft()

	d.OpenEvent(ModeEdit, "missing")

	assert.True(t, d.EventOpen)
	assert.Empty(t, d.Event.EventID)
}

// TestDraft_SaveEvent_Add verifies the draft is appended, reset and re-keyed,
// and the sub-form stays open.
func TestDraft_SaveEvent_Add(t *testing.T) {
	d := NewDraft()

	d.OpenEvent(ModeAdd, "")
	firstID := d.Event.EventID
	require.NoError(t, d.ApplyEventField(FieldEventTimestamp, "2024-05-01T09:00"))
	require.NoError(t, d.ApplyEventField(FieldEventLocationAddress, "Lagos"))
	require.NoError(t, d.ApplyEventField(FieldEventDescription, "Picked up"))

	require.NoError(t, d.SaveEvent())

	require.Len(t, d.Shipment.Events, 1)
	assert.Equal(t, firstID, d.Shipment.Events[0].EventID)
	assert.True(t, d.EventOpen)
	assert.Empty(t, d.Event.Timestamp)
	assert.NotEmpty(t, d.Event.EventID)
	assert.NotEqual(t, firstID, d.Event.EventID)
}

// TestDraft_SaveEvent_Edit_MovesToEnd verifies the remove-then-append merge:
// an edited event loses its position and lands at the end of the list.
func TestDraft_SaveEvent_Edit_MovesToEnd(t *testing.T) {
	d := NewDraft()
	addValidEvent(t, d, "Lagos")
	addValidEvent(t, d, "Ibadan")
	first := d.Shipment.Events[0].EventID
	second := d.Shipment.Events[1].EventID

	d.OpenEvent(ModeEdit, first)
	require.NoError(t, d.ApplyEventField(FieldEventDescription, "Rescanned"))
	require.NoError(t, d.SaveEvent())

	require.Len(t, d.Shipment.Events, 2)
	assert.Equal(t, second, d.Shipment.Events[0].EventID)
	assert.Equal(t, first, d.Shipment.Events[1].EventID)
	assert.Equal(t, "Rescanned", d.Shipment.Events[1].Description)
	// edit-save closes the sub-form; add-save does not
	assert.False(t, d.EventOpen)
}

// TestDraft_SaveEvent_FormClosed verifies saving without an open sub-form is
// rejected instead of appending the zero-value event draft.
func TestDraft_SaveEvent_FormClosed(t *testing.T) {
	d := NewDraft()

	err := d.SaveEvent()

	assert.ErrorIs(t, err, ErrEventFormClosed)
	assert.Empty(t, d.Shipment.Events)
	assert.False(t, d.CanSubmit())
}

// TestDraft_SaveEvent_AfterClose verifies a closed sub-form stays closed to
// saves even when it was open earlier.
func TestDraft_SaveEvent_AfterClose(t *testing.T) {
	d := NewDraft()
	d.OpenEvent(ModeAdd, "")
	d.CloseEvent()

	err := d.SaveEvent()

	assert.ErrorIs(t, err, ErrEventFormClosed)
	assert.Empty(t, d.Shipment.Events)
}

// TestDraft_SaveEvent_Blocked verifies saving is gated by event warnings.
func TestDraft_SaveEvent_Blocked(t *testing.T) {
	d := NewDraft()

	d.OpenEvent(ModeAdd, "")
	require.NoError(t, d.ApplyEventField(FieldEventTimestamp, "not-a-date"))

	err := d.SaveEvent()

	assert.ErrorIs(t, err, ErrEventBlocked)
	assert.Empty(t, d.Shipment.Events)
}

// TestDraft_CloseEvent verifies the draft is discarded and warnings cleared.
func TestDraft_CloseEvent(t *testing.T) {
	d := NewDraft()
	d.OpenEvent(ModeAdd, "")
	require.NoError(t, d.ApplyEventField(FieldEventTimestamp, "not-a-date"))

	d.CloseEvent()

	assert.False(t, d.EventOpen)
	assert.Empty(t, d.Event.EventID)
	assert.Empty(t, d.Event.Timestamp)
	assert.True(t, d.EventErrors.AllClear())
}

// TestDraft_ApplyEventField_UnknownName verifies closed dispatch on the
// sub-form too.
func TestDraft_ApplyEventField_UnknownName(t *testing.T) {
	d := NewDraft()
	d.OpenEvent(ModeAdd, "")

	err := d.ApplyEventField("carrier", "DHL")

	assert.ErrorIs(t, err, ErrUnknownField)
}

// TestDraft_DeleteEvent verifies removal by id and the no-op miss.
func TestDraft_DeleteEvent(t *testing.T) {
	d := NewDraft()
	addValidEvent(t, d, "Lagos")
	addValidEvent(t, d, "Ibadan")
	first := d.Shipment.Events[0].EventID

	d.DeleteEvent(first)
	require.Len(t, d.Shipment.Events, 1)
	assert.NotEqual(t, first, d.Shipment.Events[0].EventID)

	before := append([]Event(nil), d.Shipment.Events...)
	d.DeleteEvent("missing")
	assert.Equal(t, before, d.Shipment.Events)
}

// TestDraft_CanSubmit verifies the three-way submission gate.
func TestDraft_CanSubmit(t *testing.T) {
	d := NewDraft()
	assert.False(t, d.CanSubmit(), "zero events must block submission")

	addValidEvent(t, d, "Lagos")
	assert.True(t, d.CanSubmit(), "one valid event should make a fresh add draft submittable")

	require.NoError(t, d.ApplyField(FieldFullName, "")) // raises a warning
	assert.False(t, d.CanSubmit())

	require.NoError(t, d.ApplyField(FieldFullName, "Jane Doe"))
	assert.True(t, d.CanSubmit())

	d.Shipment.TrackingID = ""
	assert.False(t, d.CanSubmit(), "empty tracking id must block submission")
}
