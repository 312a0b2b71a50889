package resumes

import "context"

// Repo defines persistence operations for resumes. Every lookup is scoped to
// the owning user; rows owned by someone else are reported as ErrNotFound.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	Update(ctx context.Context, resume Resume) (Resume, error)
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	Delete(ctx context.Context, userID, resumeID string) error
}
