package accounts

import "time"

// User is an account. A user without a password hash is pending registration.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	OTPHash      string
	OTPExpiresAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Registered reports whether the user has completed registration.
func (u User) Registered() bool {
	return u.PasswordHash != ""
}
