// Package editor holds the resume currently being edited, the cached listing
// of saved resumes, and the save/load protocol with the resumes API.
package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"resumecraft/resume/model"
)

type requestKind int

const (
	kindDocument requestKind = iota
	kindListing
	numKinds
)

// Store owns one current document and a cached listing of saved resumes.
// In-memory mutations are applied immediately; network-bound operations
// apply their result only after the gateway succeeds.
type Store struct {
	gw  Gateway
	log zerolog.Logger

	mu     sync.Mutex
	doc    model.ResumeDocument
	saved  []Summary
	issued [numKinds]uint64
	// ids deleted since the last applied listing; filtered out of any
	// listing that was already in flight.
	deleted map[string]struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithDocument installs doc as the initial current document.
func WithDocument(doc model.ResumeDocument) Option {
	return func(s *Store) {
		doc = doc.Clone()
		doc.Normalize()
		s.doc = doc
	}
}

// WithSaved installs an initial cached listing.
func WithSaved(saved []Summary) Option {
	return func(s *Store) {
		s.saved = append([]Summary(nil), saved...)
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// New builds a Store backed by gw, starting from a fresh document.
func New(gw Gateway, opts ...Option) *Store {
	s := &Store{
		gw:    gw,
		log:   zerolog.Nop(),
		doc:   model.New(),
		saved: []Summary{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Document returns a copy of the current document.
func (s *Store) Document() model.ResumeDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Saved returns a copy of the cached listing.
func (s *Store) Saved() []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Summary{}, s.saved...)
}

// Replace merges a partial document into the current one. A patch with an
// unknown template or an out-of-range score is rejected as a whole.
func (s *Store) Replace(p model.ResumePatch) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = p.Apply(s.doc)
	return nil
}

// SetPersonalInfo merges p into the contact block field by field.
func (s *Store) SetPersonalInfo(p model.PersonalInfoPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.PersonalInfo = p.Apply(s.doc.PersonalInfo)
}

// SetSummary replaces the summary text.
func (s *Store) SetSummary(summary string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Summary = summary
}

// SetSkills replaces the skill list as given. Duplicates are only filtered
// by AddSkill.
func (s *Store) SetSkills(skills []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Skills = append([]string{}, skills...)
}

// AddSkill appends skill unless it is already present.
func (s *Store) AddSkill(skill string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.HasSkill(skill) {
		return
	}
	s.doc.Skills = append(s.doc.Skills, skill)
}

// RemoveSkill drops skill if present.
func (s *Store) RemoveSkill(skill string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.doc.Skills[:0:0]
	for _, existing := range s.doc.Skills {
		if existing != skill {
			out = append(out, existing)
		}
	}
	s.doc.Skills = out
}

// SetTemplate switches the rendering template; unknown keys are rejected.
func (s *Store) SetTemplate(t model.Template) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownTemplate, t)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Template = t
	return nil
}

// SetATSScore records a score returned by the external scorer.
func (s *Store) SetATSScore(score float64) error {
	if err := model.ValidateScore(score); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.ATSScore = &score
	return nil
}

// Reset discards the current document and starts a new, never-persisted one.
// Any in-flight save or load is superseded.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = model.New()
	s.issued[kindDocument]++
}

// Save persists the current document. A never-persisted document is created;
// a persisted one is updated in place. title overrides the document title
// when non-empty.
func (s *Store) Save(ctx context.Context, cred, title string) (model.ResumeDocument, error) {
	s.mu.Lock()
	snapshot := s.doc.Clone()
	seq := s.issue(kindDocument)
	s.mu.Unlock()

	name := strings.TrimSpace(title)
	if name == "" {
		name = snapshot.DisplayTitle()
	}
	content, err := json.Marshal(snapshot)
	if err != nil {
		return model.ResumeDocument{}, fmt.Errorf("encode resume: %w", err)
	}
	payload := Payload{Name: name, Content: content, ATSScore: snapshot.ATSScore}

	var rec Record
	if snapshot.Persisted() {
		rec, err = s.gw.Update(ctx, cred, snapshot.ID, payload)
	} else {
		rec, err = s.gw.Create(ctx, cred, payload)
	}
	if err != nil {
		err = classify(err)
		s.log.Warn().Err(err).Str("resume_id", snapshot.ID).Msg("save failed")
		return model.ResumeDocument{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(kindDocument, seq) {
		return model.ResumeDocument{}, ErrSuperseded
	}
	createdAt := rec.CreatedAt
	s.doc.ID = rec.ID
	s.doc.CreatedAt = &createdAt
	s.doc.Title = rec.Name
	return s.doc.Clone(), nil
}

// Load replaces the current document with the stored resume id.
func (s *Store) Load(ctx context.Context, cred, id string) (model.ResumeDocument, error) {
	s.mu.Lock()
	seq := s.issue(kindDocument)
	s.mu.Unlock()

	rec, err := s.gw.Get(ctx, cred, id)
	if err != nil {
		err = classify(err)
		s.log.Warn().Err(err).Str("resume_id", id).Msg("load failed")
		return model.ResumeDocument{}, err
	}
	doc, err := documentFromRecord(rec)
	if err != nil {
		return model.ResumeDocument{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(kindDocument, seq) {
		return model.ResumeDocument{}, ErrSuperseded
	}
	s.doc = doc
	return s.doc.Clone(), nil
}

// ListSaved refreshes the cached listing.
func (s *Store) ListSaved(ctx context.Context, cred string) ([]Summary, error) {
	s.mu.Lock()
	seq := s.issue(kindListing)
	s.mu.Unlock()

	list, err := s.gw.List(ctx, cred)
	if err != nil {
		err = classify(err)
		s.log.Warn().Err(err).Msg("list failed")
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(kindListing, seq) {
		return nil, ErrSuperseded
	}
	saved := make([]Summary, 0, len(list))
	for _, sum := range list {
		if _, gone := s.deleted[sum.ID]; !gone {
			saved = append(saved, sum)
		}
	}
	s.saved = saved
	s.deleted = nil
	return append([]Summary{}, s.saved...), nil
}

// DeleteSaved deletes a stored resume and drops it from the listing, including
// a listing still in flight. The current document is left alone even when it
// has the same id.
func (s *Store) DeleteSaved(ctx context.Context, cred, id string) error {
	if err := s.gw.Delete(ctx, cred, id); err != nil {
		err = classify(err)
		s.log.Warn().Err(err).Str("resume_id", id).Msg("delete failed")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleted == nil {
		s.deleted = make(map[string]struct{})
	}
	s.deleted[id] = struct{}{}
	out := s.saved[:0:0]
	for _, sum := range s.saved {
		if sum.ID != id {
			out = append(out, sum)
		}
	}
	s.saved = out
	return nil
}

func (s *Store) issue(kind requestKind) uint64 {
	s.issued[kind]++
	return s.issued[kind]
}

func (s *Store) current(kind requestKind, seq uint64) bool {
	if s.issued[kind] != seq {
		s.log.Debug().Int("kind", int(kind)).Uint64("seq", seq).Uint64("latest", s.issued[kind]).Msg("discarding stale response")
		return false
	}
	return true
}

func documentFromRecord(rec Record) (model.ResumeDocument, error) {
	var doc model.ResumeDocument
	if len(rec.Content) > 0 {
		if err := json.Unmarshal(rec.Content, &doc); err != nil {
			return model.ResumeDocument{}, errors.Join(ErrNetwork, fmt.Errorf("decode resume content: %w", err))
		}
	}
	createdAt := rec.CreatedAt
	doc.ID = rec.ID
	doc.Title = rec.Name
	doc.ATSScore = nil
	if rec.ATSScore != nil {
		score := *rec.ATSScore
		doc.ATSScore = &score
	}
	doc.CreatedAt = &createdAt
	doc.Normalize()
	return doc, nil
}
