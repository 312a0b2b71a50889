package resumes

import (
	"encoding/json"
	"time"
)

const (
	// DefaultName is used when a resume is saved without a name.
	DefaultName = "Untitled Resume"

	maxNameLength = 200
)

// Resume is a stored resume document. Content is opaque to the server.
type Resume struct {
	ID        string
	UserID    string
	Name      string
	Content   json.RawMessage
	ATSScore  *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Input carries the writable fields of a resume.
type Input struct {
	Name     string          `validate:"max=200"`
	Content  json.RawMessage `validate:"required"`
	ATSScore *float64        `validate:"omitempty,gte=0,lte=100"`
}
