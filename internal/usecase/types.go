package usecase

import (
	"cv-generator/internal/domain"
	"cv-generator/pkg/ai"
)

// Options are the processor settings taken from configuration.
type Options struct {
	Generation           ai.Options
	MinDescriptionLength int
	TargetLanguage       string
	KeepMarkdown         bool
	PublicBaseURL        string
}

// Files holds the public URL of each produced PDF; nil when not produced.
type Files struct {
	CVPDF            *string `json:"cv_pdf"`
	CoverLetterENPDF *string `json:"cover_letter_en_pdf"`
	CoverLetterZHPDF *string `json:"cover_letter_zh_pdf"`
	MergedPDF        *string `json:"merged_pdf"`
}

// ApplicationResult is the response of one generation run.
type ApplicationResult struct {
	Status        string `json:"status"`
	ApplicationID string `json:"application_id"`
	JobTitle      string `json:"job_title"`
	CompanyName   string `json:"company_name"`

	CVMarkdown            string `json:"cv_md"`
	CoverLetterENMarkdown string `json:"cover_letter_en_md"`
	CoverLetterZHMarkdown string `json:"cover_letter_zh_md"`

	Files Files `json:"files"`

	// Errors holds a non-fatal note per artifact kind that was not produced.
	Errors map[string]string `json:"errors,omitempty"`

	paths map[domain.ArtifactKind]string
}

func (r *ApplicationResult) noteError(kind domain.ArtifactKind, err error) {
	if r.Errors == nil {
		r.Errors = map[string]string{}
	}
	r.Errors[string(kind)] = err.Error()
}

func (r *ApplicationResult) setFile(kind domain.ArtifactKind, url, path string) {
	if r.paths == nil {
		r.paths = map[domain.ArtifactKind]string{}
	}
	r.paths[kind] = path
	u := url
	switch kind {
	case domain.KindCV:
		r.Files.CVPDF = &u
	case domain.KindCoverLetterEN:
		r.Files.CoverLetterENPDF = &u
	case domain.KindCoverLetterZH:
		r.Files.CoverLetterZHPDF = &u
	case domain.KindMerged:
		r.Files.MergedPDF = &u
	}
}

// Path returns the stored location of an artifact, or "".
func (r *ApplicationResult) Path(kind domain.ArtifactKind) string {
	return r.paths[kind]
}

func (r *ApplicationResult) record(job domain.JobPosting) *domain.ApplicationRecord {
	status := domain.StatusSuccess
	if len(r.Errors) > 0 {
		status = domain.StatusPartial
	}
	return &domain.ApplicationRecord{
		CompanyName:       r.CompanyName,
		Position:          r.JobTitle,
		JobDescription:    job.Description,
		JobSource:         job.Source,
		CVPath:            r.Path(domain.KindCV),
		CoverLetterENPath: r.Path(domain.KindCoverLetterEN),
		CoverLetterZHPath: r.Path(domain.KindCoverLetterZH),
		MergedPath:        r.Path(domain.KindMerged),
		Status:            status,
	}
}
