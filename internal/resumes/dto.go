package resumes

import (
	"encoding/json"
	"time"
)

// Request is the body accepted by create and update.
type Request struct {
	Name     string          `json:"name"`
	Content  json.RawMessage `json:"content"`
	ATSScore *float64        `json:"atsScore,omitempty"`
}

// RecordResponse is the outward-facing representation of a stored resume.
type RecordResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Content   json.RawMessage `json:"content"`
	ATSScore  *float64        `json:"atsScore,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// SummaryResponse is a listing entry without content.
type SummaryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ATSScore  *float64  `json:"atsScore,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r Request) toInput() Input {
	return Input{Name: r.Name, Content: r.Content, ATSScore: r.ATSScore}
}

func toRecord(resume Resume) RecordResponse {
	return RecordResponse{
		ID:        resume.ID,
		Name:      resume.Name,
		Content:   resume.Content,
		ATSScore:  resume.ATSScore,
		CreatedAt: resume.CreatedAt,
		UpdatedAt: resume.UpdatedAt,
	}
}

func toSummaries(list []Resume) []SummaryResponse {
	out := make([]SummaryResponse, 0, len(list))
	for _, resume := range list {
		out = append(out, SummaryResponse{
			ID:        resume.ID,
			Name:      resume.Name,
			ATSScore:  resume.ATSScore,
			CreatedAt: resume.CreatedAt,
			UpdatedAt: resume.UpdatedAt,
		})
	}
	return out
}
