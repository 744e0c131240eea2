package crypto

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestNewLoginToken(t *testing.T) {
	token, err := NewLoginToken("pub-123", testSecret)
	if err != nil {
		t.Fatalf("NewLoginToken failed: %v", err)
	}

	claims, err := DecodeToken(token, testSecret)
	if err != nil {
		t.Fatalf("DecodeToken failed: %v", err)
	}
	if claims.PublicID != "pub-123" {
		t.Errorf("expected public id pub-123, got %q", claims.PublicID)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("login token should carry an expiry")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 59*time.Minute || ttl > 61*time.Minute {
		t.Errorf("expected roughly one hour expiry, got %v", ttl)
	}
}

func TestNewConfirmToken(t *testing.T) {
	token, err := NewConfirmToken("pub-123", "Driver@Example.com", testSecret)
	if err != nil {
		t.Fatalf("NewConfirmToken failed: %v", err)
	}

	claims, err := DecodeToken(token, testSecret)
	if err != nil {
		t.Fatalf("DecodeToken failed: %v", err)
	}
	if claims.PublicID != "pub-123" {
		t.Errorf("expected public id pub-123, got %q", claims.PublicID)
	}
	if claims.Email != "Driver@Example.com" {
		t.Errorf("expected email claim, got %q", claims.Email)
	}
	if claims.ExpiresAt != nil {
		t.Error("confirmation tokens must not expire")
	}
}

func TestDecodeTokenWrongSecret(t *testing.T) {
	token, err := NewLoginToken("pub-123", testSecret)
	if err != nil {
		t.Fatalf("NewLoginToken failed: %v", err)
	}

	if _, err := DecodeToken(token, "other-secret"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestDecodeTokenGarbage(t *testing.T) {
	if _, err := DecodeToken("not-a-token", testSecret); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

// Decode only checks the signature: an expired login token still passes.
func TestDecodeTokenIgnoresExpiry(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		PublicID: "pub-123",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	decoded, err := DecodeToken(token, testSecret)
	if err != nil {
		t.Fatalf("expired token should still decode, got %v", err)
	}
	if decoded.PublicID != "pub-123" {
		t.Errorf("expected public id pub-123, got %q", decoded.PublicID)
	}
}
