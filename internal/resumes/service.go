package resumes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"resumecraft/internal/shared/metrics"
	"resumecraft/internal/shared/telemetry"
)

var validate = validator.New()

// Service contains business logic for stored resumes.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Create stores a new resume owned by userID.
func (s *Service) Create(ctx context.Context, userID string, in Input) (Resume, error) {
	start := time.Now()
	if userID == "" {
		return Resume{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	in, err := normalizeInput(in)
	if err != nil {
		return Resume{}, err
	}

	now := s.now()
	resume := Resume{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      in.Name,
		Content:   in.Content,
		ATSScore:  in.ATSScore,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		metrics.IncResumeFailed()
		return Resume{}, err
	}

	metrics.IncResumeCreated()
	metrics.ObserveResumeWriteMs(metrics.SinceMillis(start))
	telemetry.Info("resume.created", map[string]any{
		"resume_id": resume.ID,
		"user_id":   userID,
		"bytes":     len(resume.Content),
	})
	return resume, nil
}

// Update overwrites an existing resume owned by userID.
func (s *Service) Update(ctx context.Context, userID, resumeID string, in Input) (Resume, error) {
	start := time.Now()
	if userID == "" || strings.TrimSpace(resumeID) == "" {
		return Resume{}, fmt.Errorf("%w: resume id required", ErrInvalidInput)
	}
	in, err := normalizeInput(in)
	if err != nil {
		return Resume{}, err
	}

	updated, err := s.Repo.Update(ctx, Resume{
		ID:        resumeID,
		UserID:    userID,
		Name:      in.Name,
		Content:   in.Content,
		ATSScore:  in.ATSScore,
		UpdatedAt: s.now(),
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			metrics.IncResumeFailed()
		}
		return Resume{}, err
	}

	metrics.IncResumeUpdated()
	metrics.ObserveResumeWriteMs(metrics.SinceMillis(start))
	telemetry.Info("resume.updated", map[string]any{
		"resume_id": resumeID,
		"user_id":   userID,
		"bytes":     len(updated.Content),
	})
	return updated, nil
}

// Get returns one resume owned by userID.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	if userID == "" {
		return Resume{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// List returns the user's resumes, most recently updated first.
func (s *Service) List(ctx context.Context, userID string) ([]Resume, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Delete removes a resume owned by userID.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	if err := s.Repo.Delete(ctx, userID, resumeID); err != nil {
		if !errors.Is(err, ErrNotFound) {
			metrics.IncResumeFailed()
		}
		return err
	}
	metrics.IncResumeDeleted()
	telemetry.Info("resume.deleted", map[string]any{"resume_id": resumeID, "user_id": userID})
	return nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func normalizeInput(in Input) (Input, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		in.Name = DefaultName
	}
	if err := validate.Struct(in); err != nil {
		return Input{}, fmt.Errorf("%w: %s", ErrInvalidInput, describeValidation(err))
	}

	content := bytes.TrimSpace(in.Content)
	if len(content) == 0 || content[0] != '{' || !json.Valid(content) {
		return Input{}, fmt.Errorf("%w: content must be a JSON object", ErrInvalidInput)
	}
	in.Content = append(json.RawMessage(nil), content...)

	if in.ATSScore != nil {
		score := *in.ATSScore
		in.ATSScore = &score
	}
	return in, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Name":
		return fmt.Sprintf("name must be at most %d characters", maxNameLength)
	case "Content":
		return "content is required"
	case "ATSScore":
		return "atsScore must be between 0 and 100"
	default:
		return fe.Error()
	}
}
