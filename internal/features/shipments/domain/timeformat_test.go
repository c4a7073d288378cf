package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestToInputDatetime_WireFormat verifies the documented wire-to-input conversion.
func TestToInputDatetime_WireFormat(t *testing.T) {
	assert.Equal(t, "2023-10-21T15:48", ToInputDatetime("2023-10-21T15:48:13.959Z"))
}

// TestToInputDatetime_SecondPrecision verifies second-precision input is truncated.
func TestToInputDatetime_SecondPrecision(t *testing.T) {
	assert.Equal(t, "2018-12-19T14:48", ToInputDatetime("2018-12-19T14:48:25"))
}

// TestToInputDatetime_AlreadyTruncated verifies minute-precision input is unchanged.
func TestToInputDatetime_AlreadyTruncated(t *testing.T) {
	assert.Equal(t, "2024-05-01T09:00", ToInputDatetime("2024-05-01T09:00"))
}

// TestToInputDatetime_Unparseable verifies garbage passes through unchanged.
func TestToInputDatetime_Unparseable(t *testing.T) {
	assert.Equal(t, "not-a-date", ToInputDatetime("not-a-date"))
	assert.Equal(t, "", ToInputDatetime(""))
}

// TestToInputDatetime_RoundTrip verifies minute-level precision survives a
// convert-and-revalidate cycle.
func TestToInputDatetime_RoundTrip(t *testing.T) {
	converted := ToInputDatetime("2023-10-21T15:48:13.959Z")

	assert.True(t, IsValidDatetime(converted))
	assert.Equal(t, converted, ToInputDatetime(converted))
}

// TestIsValidDatetime covers the accepted and rejected layouts.
func TestIsValidDatetime(t *testing.T) {
	assert.True(t, IsValidDatetime("2024-01-01T10:00"))
	assert.True(t, IsValidDatetime("2023-10-21T15:48:13.959Z"))
	assert.True(t, IsValidDatetime("2018-12-19T14:48:25"))
	assert.False(t, IsValidDatetime("not-a-date"))
	assert.False(t, IsValidDatetime(""))
	assert.False(t, IsValidDatetime("2024-13-45T99:99"))
}
