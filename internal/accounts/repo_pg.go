package accounts

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

const selectUser = `
SELECT id, email, name, password_hash, otp_hash, otp_expires_at, created_at, updated_at
FROM users`

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, selectUser+"\nWHERE email = $1\nLIMIT 1", email))
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, selectUser+"\nWHERE id = $1\nLIMIT 1", userID))
}

// Save upserts the user keyed by email.
func (r *PGRepo) Save(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, name, password_hash, otp_hash, otp_expires_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (email) DO UPDATE SET
  name = EXCLUDED.name,
  password_hash = EXCLUDED.password_hash,
  otp_hash = EXCLUDED.otp_hash,
  otp_expires_at = EXCLUDED.otp_expires_at,
  updated_at = EXCLUDED.updated_at`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		nullableString(user.Name),
		nullableString(user.PasswordHash),
		nullableString(user.OTPHash),
		nullableTime(user.OTPExpiresAt),
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

func scanUser(row *sql.Row) (User, error) {
	var user User
	var name, passwordHash, otpHash sql.NullString
	var otpExpiresAt sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.Email,
		&name,
		&passwordHash,
		&otpHash,
		&otpExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.Name = name.String
	user.PasswordHash = passwordHash.String
	user.OTPHash = otpHash.String
	if otpExpiresAt.Valid {
		at := otpExpiresAt.Time
		user.OTPExpiresAt = &at
	}
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return *value
}

var _ Repo = (*PGRepo)(nil)
