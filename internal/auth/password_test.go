package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	ps := NewPasswordService(bcrypt.MinCost)

	hash, err := ps.Hash("sekret")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "sekret" {
		t.Fatal("Hash() must not return the plaintext")
	}

	if err := ps.Verify(hash, "sekret"); err != nil {
		t.Errorf("Verify() with correct password error = %v", err)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	ps := NewPasswordService(bcrypt.MinCost)

	hash, err := ps.Hash("sekret")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if err := ps.Verify(hash, "wrong"); err == nil {
		t.Error("Verify() should fail for the wrong password")
	}
}

func TestHash_SaltsDiffer(t *testing.T) {
	ps := NewPasswordService(bcrypt.MinCost)

	h1, err := ps.Hash("sekret")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := ps.Hash("sekret")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}

func TestHash_TooLong(t *testing.T) {
	ps := NewPasswordService(bcrypt.MinCost)

	if _, err := ps.Hash(strings.Repeat("a", 73)); err == nil {
		t.Error("Hash() should reject passwords longer than 72 bytes")
	}
}
