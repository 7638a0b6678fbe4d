package domain

import "strings"

// PersonalInfo mirrors the personal_info table of the profile store.
type PersonalInfo struct {
	FullName               string              `json:"full_name" yaml:"full_name"`
	PreferredName          string              `json:"preferred_name,omitempty" yaml:"preferred_name"`
	Title                  string              `json:"title,omitempty" yaml:"title"`
	Phone                  string              `json:"phone,omitempty" yaml:"phone"`
	Email                  string              `json:"email,omitempty" yaml:"email"`
	Location               string              `json:"location,omitempty" yaml:"location"`
	WillingToRelocate      string              `json:"willing_to_relocate,omitempty" yaml:"willing_to_relocate"`
	Portfolio              string              `json:"portfolio,omitempty" yaml:"portfolio"`
	BehancePortfolio       string              `json:"behance_portfolio,omitempty" yaml:"behance_portfolio"`
	GitHub                 string              `json:"github,omitempty" yaml:"github"`
	LinkedIn               string              `json:"linkedin,omitempty" yaml:"linkedin"`
	Languages              []string            `json:"languages,omitempty" yaml:"languages"`
	Summary                string              `json:"summary,omitempty" yaml:"summary"`
	DesignPhilosophy       string              `json:"design_philosophy,omitempty" yaml:"design_philosophy"`
	Skills                 map[string][]string `json:"skills,omitempty" yaml:"skills"`
	ProfessionalAttributes []string            `json:"professional_attributes,omitempty" yaml:"professional_attributes"`
	References             string              `json:"references,omitempty" yaml:"references"`
}

type ExperienceEntry struct {
	Title            string   `json:"title" yaml:"title"`
	Company          string   `json:"company" yaml:"company"`
	Location         string   `json:"location,omitempty" yaml:"location"`
	PeriodStart      string   `json:"period_start,omitempty" yaml:"period_start"`
	PeriodEnd        string   `json:"period_end,omitempty" yaml:"period_end"`
	Responsibilities []string `json:"responsibilities,omitempty" yaml:"responsibilities"`
	Highlights       []string `json:"highlights,omitempty" yaml:"highlights"`
}

type EducationEntry struct {
	Degree         string   `json:"degree" yaml:"degree"`
	Specialization string   `json:"specialization,omitempty" yaml:"specialization"`
	Institution    string   `json:"institution" yaml:"institution"`
	Location       string   `json:"location,omitempty" yaml:"location"`
	Period         string   `json:"period,omitempty" yaml:"period"`
	Highlights     []string `json:"highlights,omitempty" yaml:"highlights"`
}

// ProfileSnapshot is the candidate's data as read from a profile store. It is
// serialized verbatim into generation prompts.
type ProfileSnapshot struct {
	PersonalInfo PersonalInfo      `json:"personal_info" yaml:"personal_info"`
	Experience   []ExperienceEntry `json:"experience" yaml:"experience"`
	Education    []EducationEntry  `json:"education" yaml:"education"`
}

// Validate returns ErrNoProfile when the snapshot carries no personal info.
func (p ProfileSnapshot) Validate() error {
	if strings.TrimSpace(p.PersonalInfo.FullName) == "" && strings.TrimSpace(p.PersonalInfo.Email) == "" {
		return ErrNoProfile
	}
	return nil
}

// LanguagesLine joins the profile languages for the CV trailer.
func (p ProfileSnapshot) LanguagesLine() string {
	var langs []string
	for _, l := range p.PersonalInfo.Languages {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return strings.Join(langs, ", ")
}
