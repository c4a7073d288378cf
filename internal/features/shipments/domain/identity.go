package domain

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// trackingIDLength is the number of digits in a generated tracking id.
const trackingIDLength = 10

// NewTrackingID generates a random numeric tracking code. Uniqueness is high
// probability only; the upstream API owns collision handling.
func NewTrackingID() string {
	const digits = "0123456789"

	code := make([]byte, trackingIDLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken.
			panic(err)
		}
		code[i] = digits[n.Int64()]
	}
	return string(code)
}

// NewEventID generates a random identifier for a shipment event. It is used
// only for client-side list identity, never surfaced as the record id.
func NewEventID() string {
	return uuid.NewString()
}

// NewDraftID generates an identifier for a draft resource.
func NewDraftID() string {
	return uuid.NewString()
}
