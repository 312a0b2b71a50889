package accounts

import "errors"

var (
	// ErrNotFound indicates the user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrInvalidInput indicates a malformed request.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyRegistered is returned by SendOTP for an email that has a password.
	ErrAlreadyRegistered = errors.New("user already registered")

	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
