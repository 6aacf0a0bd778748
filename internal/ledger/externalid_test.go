package ledger

import (
	"errors"
	"testing"
)

func TestValidateExternalID(t *testing.T) {
	for _, id := range []int64{1, 42, MaxExternalID} {
		if err := ValidateExternalID(id); err != nil {
			t.Fatalf("id %d rejected: %v", id, err)
		}
	}
	for _, id := range []int64{0, -1, MaxExternalID + 1, 1 << 40} {
		if err := ValidateExternalID(id); !errors.Is(err, ErrInvalidID) {
			t.Fatalf("id %d: expected invalid id, got %v", id, err)
		}
	}
}

func TestRandomExternalIDInRange(t *testing.T) {
	seen := make(map[int64]struct{})
	for i := 0; i < 1000; i++ {
		id, err := RandomExternalID()
		if err != nil {
			t.Fatalf("draw: %v", err)
		}
		if err := ValidateExternalID(id); err != nil {
			t.Fatalf("generated id %d out of range", id)
		}
		seen[id] = struct{}{}
	}
	if len(seen) < 990 {
		t.Fatalf("suspiciously few distinct ids: %d", len(seen))
	}
}
