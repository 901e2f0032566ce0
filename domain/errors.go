package domain

import "errors"

// Validation errors
var (
	ErrPhoneRequired = errors.New("phone number is required")
	ErrCodeRequired  = errors.New("phone number and code are required")
)

// OTP errors. ErrOTPNotFound deliberately covers wrong code, expired and
// already-used alike so callers cannot probe which check failed.
var (
	ErrOTPNotFound = errors.New("invalid or expired otp")
	ErrOTPDelivery = errors.New("failed to send otp")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// Token errors
var (
	ErrTokenInvalid = errors.New("invalid token")
)
