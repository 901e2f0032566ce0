package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	FindOrCreate(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	MarkVerified(ctx context.Context, phone string, now time.Time) (*User, error)
}

// OTPStore owns the OTP lifecycle for each phone number. Issue replaces
// any live code for the phone; Consume is a one-shot check-and-set.
type OTPStore interface {
	Issue(ctx context.Context, phone string) (*OTPCode, error)
	Consume(ctx context.Context, phone, code string, now time.Time) (*OTPCode, error)
}

// MessageGateway delivers OTP codes through an external channel.
// Addressing (channel prefixes, country codes) is the adapter's problem.
type MessageGateway interface {
	SendOTP(ctx context.Context, phone, code string) error
}

// TokenService defines session token operations
type TokenService interface {
	Issue(user *User) (token string, expiresAt time.Time, err error)
	Validate(token string) (*TokenClaims, error)
}

// AuthService defines the login/verify orchestration
type AuthService interface {
	Login(ctx context.Context, rawPhone string) error
	Verify(ctx context.Context, rawPhone, rawCode string) (*AuthResult, error)
}
