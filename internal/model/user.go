package model

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a driver account in the database. The numeric ID is
// internal only; clients are handed the public identifier instead.
type User struct {
	ID           int64
	PublicID     string
	Username     string
	Email        string
	PasswordHash []byte
	LastActive   time.Time
	AvatarHash   string
	Confirmed    bool
}

// NewUser builds a user record with a fresh public identifier and a
// derived avatar hash. The password hash is supplied by the caller.
func NewUser(username, email string, passwordHash []byte, confirmed bool) *User {
	return &User{
		PublicID:     uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		LastActive:   time.Now().UTC(),
		AvatarHash:   AvatarHash(email),
		Confirmed:    confirmed,
	}
}

// AvatarHash derives the avatar identifier for an email address: the md5
// hex digest of the lowercased address, as served by gravatar.
func AvatarHash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(email)))
	return hex.EncodeToString(sum[:])
}

// CreateUserRequest represents a signup request. Pointer fields
// distinguish a missing key from an empty value; each required field
// missing maps to its own error code.
type CreateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserResponse is the full user representation returned by the API.
type UserResponse struct {
	PublicID   string    `json:"public_id"`
	Username   string    `json:"username"`
	LastActive time.Time `json:"last_active"`
	AvatarHash string    `json:"avatar_hash"`
	Confirmed  bool      `json:"confirmed"`
}

// UserMinimal is the reduced shape embedded in job representations.
type UserMinimal struct {
	Username   string    `json:"username"`
	AvatarHash string    `json:"avatar_hash"`
	LastActive time.Time `json:"last_active"`
}

// Response converts the record to its full wire representation.
func (u *User) Response() UserResponse {
	return UserResponse{
		PublicID:   u.PublicID,
		Username:   u.Username,
		LastActive: u.LastActive,
		AvatarHash: u.AvatarHash,
		Confirmed:  u.Confirmed,
	}
}

// Minimal converts the record to the nested driver representation.
func (u *User) Minimal() UserMinimal {
	return UserMinimal{
		Username:   u.Username,
		AvatarHash: u.AvatarHash,
		LastActive: u.LastActive,
	}
}

// TokenResponse carries an issued login token.
type TokenResponse struct {
	Token string `json:"token"`
}
