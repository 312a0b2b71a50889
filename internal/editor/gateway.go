package editor

import (
	"context"
	"encoding/json"
	"time"
)

// Payload is the body of a create or update request.
type Payload struct {
	Name     string          `json:"name"`
	Content  json.RawMessage `json:"content"`
	ATSScore *float64        `json:"atsScore,omitempty"`
}

// Record is a stored resume as returned by the resumes API.
type Record struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Content   json.RawMessage `json:"content"`
	ATSScore  *float64        `json:"atsScore,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Summary is one row of the saved-resumes listing.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ATSScore  *float64  `json:"atsScore,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Gateway persists resumes on behalf of the owner identified by cred.
// Implementations report ErrUnauthorized, ErrNotFound or ErrNetwork.
type Gateway interface {
	Create(ctx context.Context, cred string, p Payload) (Record, error)
	Update(ctx context.Context, cred, id string, p Payload) (Record, error)
	Get(ctx context.Context, cred, id string) (Record, error)
	List(ctx context.Context, cred string) ([]Summary, error)
	Delete(ctx context.Context, cred, id string) error
}
