package domain

import "time"

// InputDatetimeLayout is the minute-precision format used by datetime form
// inputs ("2023-10-21T15:48").
const InputDatetimeLayout = "2006-01-02T15:04"

// wireDatetimeLayouts are the formats the upstream API is known to return,
// tried in order.
var wireDatetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	InputDatetimeLayout,
}

// ToInputDatetime converts an upstream timestamp to the minute-precision
// input format. The upstream returns ISO strings with seconds
// ("2023-10-21T15:48:13.959Z") which datetime inputs reject, so edit drafts
// are reformatted on load. Unparseable values pass through unchanged rather
// than failing the load; validation flags them when the field is edited.
func ToInputDatetime(value string) string {
	for _, layout := range wireDatetimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(InputDatetimeLayout)
		}
	}
	return value
}

// IsValidDatetime reports whether value parses as a calendar datetime in any
// accepted layout. The empty string is not valid; these are required fields.
func IsValidDatetime(value string) bool {
	for _, layout := range wireDatetimeLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}
