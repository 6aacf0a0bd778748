package ledger

import (
	"errors"
	"testing"
)

func TestValidateAmount(t *testing.T) {
	cases := []struct {
		amount string
		ok     bool
	}{
		{"0.01", true},
		{"0.000000000000000001", true},
		{"2.000000000000000000000", true},
		{"99999999999999999999.999999999999999999", true},
		{"0", false},
		{"-1", false},
		{"0.0000000000000000001", false},
		{"1.00000000000000000005", false},
		{"100000000000000000000", false},
		{"1e25", false},
	}
	for _, tc := range cases {
		err := ValidateAmount(dec(tc.amount))
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.amount, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("%s: expected invalid amount, got %v", tc.amount, err)
		}
	}
}
