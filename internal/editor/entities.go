package editor

import "resumecraft/resume/model"

// Sub-entity operations address entries by identifier only. Update and
// remove are silent no-ops when the identifier is missing; the returned bool
// reports whether anything matched.

// AddExperience appends e to the experience list.
func (s *Store) AddExperience(e model.Experience) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Experiences = append(s.doc.Experiences, e.Clone())
}

// UpdateExperience merges p into the experience with id.
func (s *Store) UpdateExperience(id string, p model.ExperiencePatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.doc.Experiences, ok = updateByID(s.doc.Experiences, id, experienceID, p.Apply)
	s.logMiss(ok, "experience", "update", id)
	return ok
}

// RemoveExperience drops the experience with id.
func (s *Store) RemoveExperience(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.doc.Experiences, ok = removeByID(s.doc.Experiences, id, experienceID)
	s.logMiss(ok, "experience", "remove", id)
	return ok
}

// ReorderExperiences installs experiences as the new sequence. The caller is
// responsible for passing a permutation of the current entries.
func (s *Store) ReorderExperiences(experiences []model.Experience) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Experience, len(experiences))
	for i, e := range experiences {
		out[i] = e.Clone()
	}
	s.doc.Experiences = out
}

// AddEducation appends e to the education list.
func (s *Store) AddEducation(e model.Education) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Education = append(s.doc.Education, e)
}

// UpdateEducation merges p into the education entry with id.
func (s *Store) UpdateEducation(id string, p model.EducationPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.doc.Education, ok = updateByID(s.doc.Education, id, educationID, p.Apply)
	s.logMiss(ok, "education", "update", id)
	return ok
}

// RemoveEducation drops the education entry with id.
func (s *Store) RemoveEducation(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.doc.Education, ok = removeByID(s.doc.Education, id, educationID)
	s.logMiss(ok, "education", "remove", id)
	return ok
}

// AddProject appends p to the project list.
func (s *Store) AddProject(p model.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Projects = append(s.doc.Projects, p.Clone())
}

// UpdateProject merges p into the project with id.
func (s *Store) UpdateProject(id string, p model.ProjectPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.doc.Projects, ok = updateByID(s.doc.Projects, id, projectID, p.Apply)
	s.logMiss(ok, "project", "update", id)
	return ok
}

// RemoveProject drops the project with id.
func (s *Store) RemoveProject(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.doc.Projects, ok = removeByID(s.doc.Projects, id, projectID)
	s.logMiss(ok, "project", "remove", id)
	return ok
}

func (s *Store) logMiss(ok bool, entity, op, id string) {
	if ok {
		return
	}
	s.log.Debug().Str("entity", entity).Str("op", op).Str("id", id).Msg("no entry with id; ignored")
}

func experienceID(e model.Experience) string { return e.ID }
func educationID(e model.Education) string   { return e.ID }
func projectID(p model.Project) string       { return p.ID }

// updateByID applies fn to the first entry with the given id. On a miss the
// original slice is returned untouched.
func updateByID[T any](items []T, id string, idOf func(T) string, fn func(T) T) ([]T, bool) {
	for i := range items {
		if idOf(items[i]) == id {
			out := append(make([]T, 0, len(items)), items...)
			out[i] = fn(items[i])
			return out, true
		}
	}
	return items, false
}

func removeByID[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	if len(out) == len(items) {
		return items, false
	}
	return out, true
}
