package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// UnknownSource is recorded when the caller does not say where a posting came from.
const UnknownSource = "unknown"

// JobPosting is the caller-supplied input for one application run.
type JobPosting struct {
	Description string `json:"description"`
	Source      string `json:"source"`
}

func NewJobPosting(description, source string) JobPosting {
	source = strings.TrimSpace(source)
	if source == "" {
		source = UnknownSource
	}
	return JobPosting{Description: strings.TrimSpace(description), Source: source}
}

// Validate rejects empty descriptions and, when minLength > 0, descriptions
// shorter than minLength characters.
func (j JobPosting) Validate(minLength int) error {
	if strings.TrimSpace(j.Description) == "" {
		return &InputValidationError{Field: "job_description", Message: "job description is required"}
	}
	if minLength > 0 && utf8.RuneCountInString(j.Description) < minLength {
		return &InputValidationError{
			Field:   "job_description",
			Message: "job description is too short",
		}
	}
	return nil
}

// JobInfo is the title/company pair extracted from a posting for file naming.
type JobInfo struct {
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
}

// DefaultJobInfo is used whenever extraction fails.
func DefaultJobInfo() JobInfo {
	return JobInfo{JobTitle: "Job", CompanyName: "Company"}
}

// ArtifactKind names one of the documents a run produces.
type ArtifactKind string

const (
	KindCV            ArtifactKind = "cv"
	KindCoverLetterEN ArtifactKind = "cover_letter_en"
	KindCoverLetterZH ArtifactKind = "cover_letter_zh"
	KindMerged        ArtifactKind = "merged_application"
)

// ArtifactKinds lists every kind, longest prefix first so that prefix
// matching on file names is unambiguous.
var ArtifactKinds = []ArtifactKind{KindMerged, KindCoverLetterEN, KindCoverLetterZH, KindCV}

const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusError   = "error"
)

// ApplicationRecord is the history row persisted after each run.
type ApplicationRecord struct {
	ID                uuid.UUID `json:"id"`
	CompanyName       string    `json:"company_name"`
	Position          string    `json:"position"`
	JobDescription    string    `json:"job_description"`
	JobSource         string    `json:"job_source"`
	CVPath            string    `json:"cv_path,omitempty"`
	CoverLetterENPath string    `json:"cover_letter_en_path,omitempty"`
	CoverLetterZHPath string    `json:"cover_letter_zh_path,omitempty"`
	MergedPath        string    `json:"merged_path,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}
