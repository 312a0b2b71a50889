package resumes

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
)

// MemoryRepo stores resumes in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Resume)}
}

// Create stores the resume.
func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[resume.ID] = copyResume(resume)
	return nil
}

// Update overwrites name, content, score and updated_at of an owned resume.
func (r *MemoryRepo) Update(ctx context.Context, resume Resume) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[resume.ID]
	if !ok || existing.UserID != resume.UserID {
		return Resume{}, ErrNotFound
	}
	existing.Name = resume.Name
	existing.Content = resume.Content
	existing.ATSScore = resume.ATSScore
	existing.UpdatedAt = resume.UpdatedAt
	existing = copyResume(existing)
	r.byID[resume.ID] = existing
	return copyResume(existing), nil
}

// GetByID returns a resume by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.byID[resumeID]
	if !ok || resume.UserID != userID {
		return Resume{}, ErrNotFound
	}
	return copyResume(resume), nil
}

// ListByUser returns a user's resumes, most recently updated first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Resume, 0)
	for _, resume := range r.byID {
		if resume.UserID == userID {
			out = append(out, copyResume(resume))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Delete removes an owned resume.
func (r *MemoryRepo) Delete(ctx context.Context, userID, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.byID[resumeID]
	if !ok || resume.UserID != userID {
		return ErrNotFound
	}
	delete(r.byID, resumeID)
	return nil
}

func copyResume(resume Resume) Resume {
	resume.Content = append(json.RawMessage(nil), resume.Content...)
	if resume.ATSScore != nil {
		score := *resume.ATSScore
		resume.ATSScore = &score
	}
	return resume
}

var _ Repo = (*MemoryRepo)(nil)
