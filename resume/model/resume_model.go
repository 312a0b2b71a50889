package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTitle is the name a document is saved under when it has none.
const DefaultTitle = "Untitled Resume"

var (
	// ErrUnknownTemplate is returned when a template key is not one of the known variants.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrScoreOutOfRange is returned for ATS scores outside 0-100.
	ErrScoreOutOfRange = errors.New("ats score out of range")
)

// Template selects a rendering variant. It carries no other state.
type Template string

const (
	TemplateModern   Template = "modern"
	TemplateClassic  Template = "classic"
	TemplateMinimal  Template = "minimal"
	TemplateCreative Template = "creative"
)

// Templates lists the known template keys in display order.
func Templates() []Template {
	return []Template{TemplateModern, TemplateClassic, TemplateMinimal, TemplateCreative}
}

// Valid reports whether t is one of the known templates.
func (t Template) Valid() bool {
	switch t {
	case TemplateModern, TemplateClassic, TemplateMinimal, TemplateCreative:
		return true
	default:
		return false
	}
}

// ParseTemplate normalizes a raw template key.
func ParseTemplate(raw string) (Template, error) {
	t := Template(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, raw)
	}
	return t, nil
}

// ResumeDocument is the aggregate edited by the user and stored as opaque
// content by the resumes API.
type ResumeDocument struct {
	ID           string       `json:"id"`
	Title        string       `json:"title,omitempty"`
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Summary      string       `json:"summary"`
	Experiences  []Experience `json:"experiences"`
	Education    []Education  `json:"education"`
	Projects     []Project    `json:"projects"`
	Skills       []string     `json:"skills"`
	Template     Template     `json:"template"`
	ATSScore     *float64     `json:"atsScore,omitempty"`
	CreatedAt    *time.Time   `json:"createdAt,omitempty"`
}

// PersonalInfo holds contact details. All fields are freeform.
type PersonalInfo struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// Experience is a single work history entry. Dates are display strings.
type Experience struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Description string   `json:"description"`
	Bullets     []string `json:"bullets"`
}

// Education is a single education entry.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	GPA         string `json:"gpa,omitempty"`
}

// Project is a single portfolio entry.
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
}

// NewID returns a fresh identifier for a document or sub-entity.
func NewID() string {
	return uuid.NewString()
}

// New returns an empty, never-persisted document with a fresh identifier.
func New() ResumeDocument {
	return ResumeDocument{
		ID:          NewID(),
		Experiences: []Experience{},
		Education:   []Education{},
		Projects:    []Project{},
		Skills:      []string{},
		Template:    TemplateModern,
	}
}

// Persisted reports whether the document has been saved at least once.
func (d ResumeDocument) Persisted() bool {
	return d.CreatedAt != nil
}

// DisplayTitle returns the title, falling back to DefaultTitle.
func (d ResumeDocument) DisplayTitle() string {
	if title := strings.TrimSpace(d.Title); title != "" {
		return title
	}
	return DefaultTitle
}

// Clone returns a deep copy so callers cannot alias the store's slices.
func (d ResumeDocument) Clone() ResumeDocument {
	out := d
	out.Experiences = make([]Experience, len(d.Experiences))
	for i, exp := range d.Experiences {
		out.Experiences[i] = exp.Clone()
	}
	out.Education = append(make([]Education, 0, len(d.Education)), d.Education...)
	out.Projects = make([]Project, len(d.Projects))
	for i, p := range d.Projects {
		out.Projects[i] = p.Clone()
	}
	out.Skills = cloneStrings(d.Skills)
	if d.ATSScore != nil {
		score := *d.ATSScore
		out.ATSScore = &score
	}
	if d.CreatedAt != nil {
		ts := *d.CreatedAt
		out.CreatedAt = &ts
	}
	return out
}

// Clone returns a deep copy of the experience.
func (e Experience) Clone() Experience {
	e.Bullets = cloneStrings(e.Bullets)
	return e
}

// Clone returns a deep copy of the project.
func (p Project) Clone() Project {
	p.Technologies = cloneStrings(p.Technologies)
	return p
}

// HasSkill reports whether skill is already present (exact match).
func (d ResumeDocument) HasSkill(skill string) bool {
	for _, s := range d.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// ValidateScore checks an ATS score is within 0-100.
func ValidateScore(score float64) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("%w: %v", ErrScoreOutOfRange, score)
	}
	return nil
}

// Normalize fills nil sequences after decoding content produced by older
// clients. An empty or unknown template falls back to modern and an
// out-of-range score is dropped.
func (d *ResumeDocument) Normalize() {
	if d.Experiences == nil {
		d.Experiences = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Skills == nil {
		d.Skills = []string{}
	}
	for i := range d.Experiences {
		if d.Experiences[i].Bullets == nil {
			d.Experiences[i].Bullets = []string{}
		}
	}
	for i := range d.Projects {
		if d.Projects[i].Technologies == nil {
			d.Projects[i].Technologies = []string{}
		}
	}
	if !d.Template.Valid() {
		d.Template = TemplateModern
	}
	if d.ATSScore != nil && ValidateScore(*d.ATSScore) != nil {
		d.ATSScore = nil
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return append(make([]string, 0, len(in)), in...)
}
