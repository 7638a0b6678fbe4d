// Package prompt builds the instruction text sent to generation backends.
package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"cv-generator/internal/domain"
)

// Variant selects the CV prompt layout strategy.
type Variant string

const (
	VariantATSJSON   Variant = "ats-json"
	VariantTwoColumn Variant = "two-column"
)

// DefaultTargetLanguage is the translation target when none is configured.
const DefaultTargetLanguage = "Traditional Chinese (繁體中文)"

// Builder renders prompts. It is pure: identical inputs give identical text.
type Builder struct {
	variant Variant
	cv      *template.Template
}

func NewBuilder(v Variant) (*Builder, error) {
	if v == "" {
		v = VariantATSJSON
	}
	var src string
	switch v {
	case VariantATSJSON:
		src = atsCVTemplate
	case VariantTwoColumn:
		src = twoColumnCVTemplate
	default:
		return nil, fmt.Errorf("unknown prompt variant %q", v)
	}
	cv, err := template.New(string(v)).Parse(src)
	if err != nil {
		return nil, err
	}
	return &Builder{variant: v, cv: cv}, nil
}

func (b *Builder) Variant() Variant { return b.variant }

type promptData struct {
	JobDescription string
	JobSource      string
	Profile        string
	SourceText     string
	TargetLanguage string
	CVSchema       string
	LetterSchema   string
}

// CVPrompt asks for a tailored CV as a StructuredCV JSON object.
func (b *Builder) CVPrompt(job domain.JobPosting, profile domain.ProfileSnapshot) string {
	return execute(b.cv, promptData{
		JobDescription: job.Description,
		JobSource:      job.Source,
		Profile:        mustMarshal(profile),
		CVSchema:       cvSchemaHint,
	})
}

// LetterPrompt asks for an English cover letter as a StructuredLetter object.
func (b *Builder) LetterPrompt(job domain.JobPosting, profile domain.ProfileSnapshot) string {
	return execute(letterTmpl, promptData{
		JobDescription: job.Description,
		JobSource:      job.Source,
		Profile:        mustMarshal(profile),
		LetterSchema:   letterSchemaHint,
	})
}

// TranslationPrompt asks for sourceText translated into targetLanguage,
// returned as Markdown only.
func (b *Builder) TranslationPrompt(sourceText, targetLanguage string) string {
	if strings.TrimSpace(targetLanguage) == "" {
		targetLanguage = DefaultTargetLanguage
	}
	return execute(translationTmpl, promptData{SourceText: sourceText, TargetLanguage: targetLanguage})
}

// JobInfoPrompt asks for {job_title, company_name} extracted from a posting.
func (b *Builder) JobInfoPrompt(description string) string {
	return execute(jobInfoTmpl, promptData{JobDescription: description})
}

func execute(t *template.Template, data promptData) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		// templates are static and data is plain strings
		panic(fmt.Sprintf("prompt: execute %s: %v", t.Name(), err))
	}
	return buf.String()
}

func mustMarshal(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
	return strings.TrimSpace(buf.String())
}
