package accounts

import "context"

// Repo persists accounts. Email is unique.
type Repo interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	Save(ctx context.Context, user User) error
}
