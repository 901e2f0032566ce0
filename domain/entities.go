package domain

import "time"

// User represents an account identified by phone number
type User struct {
	ID          uint
	PhoneNumber string
	IsVerified  bool
	CreatedAt   time.Time
	LastLogin   *time.Time
}

// OTPCode represents a one-time passcode issued for a phone number
type OTPCode struct {
	PhoneNumber string
	Code        string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	IsUsed      bool
}

// Live reports whether the code is still consumable at the given instant.
// Expiry is strict: a code whose ExpiresAt equals now is dead.
func (o *OTPCode) Live(now time.Time) bool {
	return !o.IsUsed && o.ExpiresAt.After(now)
}

// AuthResult represents a completed verification outcome
type AuthResult struct {
	User      *User
	Token     string
	ExpiresAt time.Time
}

// TokenClaims represents the identity claims carried by a session token
type TokenClaims struct {
	UserID    uint   `json:"sub"`
	Phone     string `json:"phone"`
	Verified  bool   `json:"verified"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
