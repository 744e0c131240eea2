package crypto

import (
	"bytes"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("swordfish")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if len(hash) == 0 {
		t.Fatal("expected non-empty hash")
	}
	if bytes.Contains(hash, []byte("swordfish")) {
		t.Fatal("hash must not contain the plaintext password")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("swordfish")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !CheckPassword(hash, "swordfish") {
		t.Error("correct password should verify")
	}
	if CheckPassword(hash, "Swordfish") {
		t.Error("wrong password should not verify")
	}
	if CheckPassword(nil, "swordfish") {
		t.Error("nil hash should not verify")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("swordfish")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	h2, err := HashPassword("swordfish")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if bytes.Equal(h1, h2) {
		t.Error("two hashes of the same password should differ")
	}
}
