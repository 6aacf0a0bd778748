package ledger

import (
	"crypto/rand"
	"encoding/binary"
	"math"
)

const (
	// MaxExternalID is the largest accepted external transaction ID.
	MaxExternalID = math.MaxInt32

	externalIDMask = 0x7fffffff

	// maxGeneratedIDAttempts bounds redraws when a generated ID already exists.
	// Caller supplied IDs are never retried.
	maxGeneratedIDAttempts = 3
)

// IDSource draws a candidate external ID for operations submitted without one.
type IDSource func() (int64, error)

func ValidateExternalID(id int64) error {
	if id <= 0 || id > MaxExternalID {
		return ErrInvalidID
	}
	return nil
}

// RandomExternalID masks a random 64-bit value to its low 31 bits. Zero is
// outside the valid range and is redrawn.
func RandomExternalID() (int64, error) {
	var b [8]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			return 0, err
		}
		if id := int64(binary.BigEndian.Uint64(b[:]) & externalIDMask); id != 0 {
			return id, nil
		}
	}
}
