package model

import (
	"encoding/json"
	"fmt"
)

// Go models that match schema/cv.schema.json and schema/letter.schema.json.

type CVPersonalInfo struct {
	FullName   string   `json:"full_name"`
	Title      string   `json:"title,omitempty"`
	Location   string   `json:"location,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Email      string   `json:"email,omitempty"`
	Portfolio  string   `json:"portfolio,omitempty"`
	GitHub     string   `json:"github,omitempty"`
	LinkedIn   string   `json:"linkedin,omitempty"`
	OtherLinks []string `json:"other_links,omitempty"`
}

type CVExperience struct {
	Title            string   `json:"title"`
	Company          string   `json:"company,omitempty"`
	Location         string   `json:"location,omitempty"`
	Period           string   `json:"period,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

type CVEducation struct {
	Degree      string   `json:"degree"`
	Institution string   `json:"institution,omitempty"`
	Period      string   `json:"period,omitempty"`
	Details     []string `json:"details,omitempty"`
}

// StructuredCV is the JSON contract the CV generation stage must return.
type StructuredCV struct {
	PersonalInfo CVPersonalInfo `json:"personal_info"`
	Summary      string         `json:"summary,omitempty"`
	Experience   []CVExperience `json:"experience,omitempty"`
	Education    []CVEducation  `json:"education,omitempty"`
}

// StructuredLetter is the JSON contract of the cover letter stage.
type StructuredLetter struct {
	Greeting  string   `json:"greeting,omitempty"`
	Body      []string `json:"body"`
	Closing   string   `json:"closing,omitempty"`
	Signature string   `json:"signature,omitempty"`
}

// CVFromMap validates m and converts it into a StructuredCV.
func CVFromMap(m map[string]any) (StructuredCV, error) {
	var cv StructuredCV
	if err := ValidateCV(m); err != nil {
		return cv, err
	}
	if err := convert(m, &cv); err != nil {
		return cv, err
	}
	return cv, nil
}

// LetterFromMap validates m and converts it into a StructuredLetter.
func LetterFromMap(m map[string]any) (StructuredLetter, error) {
	var l StructuredLetter
	if err := ValidateLetter(m); err != nil {
		return l, err
	}
	if err := convert(m, &l); err != nil {
		return l, err
	}
	return l, nil
}

func convert(m map[string]any, v any) error {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("convert document: %w", err)
	}
	return nil
}
