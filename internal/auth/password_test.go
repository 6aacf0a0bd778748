package auth

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}
	hash, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "pw" {
		t.Fatal("hash must not equal the plain password")
	}
	if err := h.Compare(hash, "pw"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := h.Compare(hash, "wrong"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}

	again, _ := h.Hash("pw")
	if again == hash {
		t.Fatal("hashes of the same password should be salted")
	}
}

func TestBcryptHasherMalformedHash(t *testing.T) {
	err := BcryptHasher{}.Compare("not-a-hash", "pw")
	if err == nil || errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected malformed hash error, got %v", err)
	}
}
