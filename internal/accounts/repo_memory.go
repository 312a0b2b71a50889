package accounts

import (
	"context"
	"sync"
)

// MemoryRepo stores accounts in memory.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return copyUser(r.byID[id]), nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return copyUser(user), nil
}

// Save inserts or replaces the user keyed by email.
func (r *MemoryRepo) Save(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existingID, ok := r.byEmail[user.Email]; ok && existingID != user.ID {
		existing := r.byID[existingID]
		user.ID = existing.ID
		user.CreatedAt = existing.CreatedAt
	}
	r.byID[user.ID] = copyUser(user)
	r.byEmail[user.Email] = user.ID
	return nil
}

func copyUser(user User) User {
	if user.OTPExpiresAt != nil {
		at := *user.OTPExpiresAt
		user.OTPExpiresAt = &at
	}
	return user
}

var _ Repo = (*MemoryRepo)(nil)
