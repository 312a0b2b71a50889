package model

import "fmt"

// Patches describe partial updates. A nil pointer or nil slice means the
// field is absent and keeps its prior value; a non-nil slice (even empty)
// replaces the prior sequence wholesale. Sequences are never merged
// element by element.

// PersonalInfoPatch is a partial PersonalInfo, merged field by field.
type PersonalInfoPatch struct {
	FullName  *string `json:"fullName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Location  *string `json:"location,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	GitHub    *string `json:"github,omitempty"`
	Portfolio *string `json:"portfolio,omitempty"`
}

// Apply merges the patch into info.
func (p PersonalInfoPatch) Apply(info PersonalInfo) PersonalInfo {
	setString(&info.FullName, p.FullName)
	setString(&info.Email, p.Email)
	setString(&info.Phone, p.Phone)
	setString(&info.Location, p.Location)
	setString(&info.LinkedIn, p.LinkedIn)
	setString(&info.GitHub, p.GitHub)
	setString(&info.Portfolio, p.Portfolio)
	return info
}

// ResumePatch is a partial document used for bulk imports. Top-level fields
// replace; PersonalInfo merges field by field.
type ResumePatch struct {
	ID           *string            `json:"id,omitempty"`
	Title        *string            `json:"title,omitempty"`
	PersonalInfo *PersonalInfoPatch `json:"personalInfo,omitempty"`
	Summary      *string            `json:"summary,omitempty"`
	Experiences  []Experience       `json:"experiences,omitempty"`
	Education    []Education        `json:"education,omitempty"`
	Projects     []Project          `json:"projects,omitempty"`
	Skills       []string           `json:"skills,omitempty"`
	Template     *Template          `json:"template,omitempty"`
	ATSScore     *float64           `json:"atsScore,omitempty"`
}

// Validate checks the template and score carried by the patch, if any.
func (p ResumePatch) Validate() error {
	if p.Template != nil && !p.Template.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, *p.Template)
	}
	if p.ATSScore != nil {
		return ValidateScore(*p.ATSScore)
	}
	return nil
}

// Apply merges the patch into doc and returns the result. doc is not
// modified; sequences carried by the patch are copied.
func (p ResumePatch) Apply(doc ResumeDocument) ResumeDocument {
	out := doc.Clone()
	setString(&out.ID, p.ID)
	setString(&out.Title, p.Title)
	if p.PersonalInfo != nil {
		out.PersonalInfo = p.PersonalInfo.Apply(out.PersonalInfo)
	}
	setString(&out.Summary, p.Summary)
	if p.Experiences != nil {
		out.Experiences = make([]Experience, len(p.Experiences))
		for i, exp := range p.Experiences {
			out.Experiences[i] = exp.Clone()
		}
	}
	if p.Education != nil {
		out.Education = append(make([]Education, 0, len(p.Education)), p.Education...)
	}
	if p.Projects != nil {
		out.Projects = make([]Project, len(p.Projects))
		for i, proj := range p.Projects {
			out.Projects[i] = proj.Clone()
		}
	}
	if p.Skills != nil {
		out.Skills = cloneStrings(p.Skills)
	}
	if p.Template != nil {
		out.Template = *p.Template
	}
	if p.ATSScore != nil {
		score := *p.ATSScore
		out.ATSScore = &score
	}
	return out
}

// ExperiencePatch is a partial Experience. The identifier is not patchable.
type ExperiencePatch struct {
	Company     *string  `json:"company,omitempty"`
	Position    *string  `json:"position,omitempty"`
	StartDate   *string  `json:"startDate,omitempty"`
	EndDate     *string  `json:"endDate,omitempty"`
	Description *string  `json:"description,omitempty"`
	Bullets     []string `json:"bullets,omitempty"`
}

// Apply merges the patch into e.
func (p ExperiencePatch) Apply(e Experience) Experience {
	e = e.Clone()
	setString(&e.Company, p.Company)
	setString(&e.Position, p.Position)
	setString(&e.StartDate, p.StartDate)
	setString(&e.EndDate, p.EndDate)
	setString(&e.Description, p.Description)
	if p.Bullets != nil {
		e.Bullets = cloneStrings(p.Bullets)
	}
	return e
}

// EducationPatch is a partial Education.
type EducationPatch struct {
	Institution *string `json:"institution,omitempty"`
	Degree      *string `json:"degree,omitempty"`
	Field       *string `json:"field,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	GPA         *string `json:"gpa,omitempty"`
}

// Apply merges the patch into e.
func (p EducationPatch) Apply(e Education) Education {
	setString(&e.Institution, p.Institution)
	setString(&e.Degree, p.Degree)
	setString(&e.Field, p.Field)
	setString(&e.StartDate, p.StartDate)
	setString(&e.EndDate, p.EndDate)
	setString(&e.GPA, p.GPA)
	return e
}

// ProjectPatch is a partial Project.
type ProjectPatch struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          *string  `json:"url,omitempty"`
}

// Apply merges the patch into proj.
func (p ProjectPatch) Apply(proj Project) Project {
	proj = proj.Clone()
	setString(&proj.Name, p.Name)
	setString(&proj.Description, p.Description)
	if p.Technologies != nil {
		proj.Technologies = cloneStrings(p.Technologies)
	}
	setString(&proj.URL, p.URL)
	return proj
}

// String returns a pointer to s, for building patches inline.
func String(s string) *string {
	return &s
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
