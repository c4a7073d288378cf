package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestValidate_TextFields verifies the non-empty predicate for text inputs.
func TestValidate_TextFields(t *testing.T) {
	textFields := []FieldName{
		FieldFullName,
		FieldEmail,
		FieldCountry,
		FieldOriginAddress,
		FieldDestinationAddress,
		FieldStatusLocationAddress,
		FieldStatusDescription,
		FieldEventLocationAddress,
		FieldEventDescription,
	}

	for _, field := range textFields {
		assert.False(t, Validate(field, ""), "empty %s should be invalid", field)
		assert.False(t, Validate(field, "   "), "blank %s should be invalid", field)
		assert.True(t, Validate(field, "non-empty"), "non-empty %s should be valid", field)
	}
}

// TestValidate_TimestampFields verifies the datetime predicate.
func TestValidate_TimestampFields(t *testing.T) {
	for _, field := range []FieldName{FieldStatusTimestamp, FieldEventTimestamp} {
		assert.False(t, Validate(field, ""), "empty %s should be invalid", field)
		assert.False(t, Validate(field, "not-a-date"), "garbage %s should be invalid", field)
		assert.True(t, Validate(field, "2024-01-01T10:00"), "input-format %s should be valid", field)
		assert.True(t, Validate(field, "2023-10-21T15:48:13.959Z"), "wire-format %s should be valid", field)
	}
}

// TestShipmentErrors_SetWarning verifies that exactly one leaf changes.
func TestShipmentErrors_SetWarning(t *testing.T) {
	var errs ShipmentErrors

	errs.SetWarning(FieldFullName, true)

	assert.True(t, errs.FullName.ShowValidationWarning)
	assert.False(t, errs.Email.ShowValidationWarning)
	assert.False(t, errs.OriginAddress.ShowValidationWarning)
	assert.False(t, errs.AllClear())

	errs.SetWarning(FieldFullName, false)
	assert.True(t, errs.AllClear())
}

// TestShipmentErrors_SetWarning_FieldsWithoutLeaf verifies that country,
// status and bill changes never flip a warning.
func TestShipmentErrors_SetWarning_FieldsWithoutLeaf(t *testing.T) {
	var errs ShipmentErrors

	errs.SetWarning(FieldCountry, true)
	errs.SetWarning(FieldStatus, true)
	errs.SetWarning(FieldBill, true)

	assert.True(t, errs.AllClear())
}

// TestShipmentErrors_Reset verifies that reset clears every warning.
func TestShipmentErrors_Reset(t *testing.T) {
	var errs ShipmentErrors
	errs.SetWarning(FieldFullName, true)
	errs.SetWarning(FieldStatusTimestamp, true)

	errs.Reset()

	assert.True(t, errs.AllClear())
}

// TestEventErrors_Warnings verifies the event-level warning shape.
func TestEventErrors_Warnings(t *testing.T) {
	var errs EventErrors
	assert.True(t, errs.AllClear())

	errs.SetWarning(FieldEventTimestamp, true)
	assert.True(t, errs.Timestamp.ShowValidationWarning)
	assert.False(t, errs.Location.ShowValidationWarning)
	assert.False(t, errs.AllClear())

	errs.Reset()
	assert.True(t, errs.AllClear())
}
