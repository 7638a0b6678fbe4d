package usecase

import (
	"context"
	"strings"

	"cv-generator/internal/assemble"
	"cv-generator/internal/domain"
	"cv-generator/internal/model"
	"cv-generator/internal/sanitize"
)

// extractJobInfo never fails: any problem yields DefaultJobInfo.
func (p *Processor) extractJobInfo(ctx context.Context, job domain.JobPosting) domain.JobInfo {
	def := domain.DefaultJobInfo()
	raw, err := p.gen.Generate(ctx, domain.StageJobInfo, p.prompts.JobInfoPrompt(job.Description), p.opts.Generation)
	if err != nil {
		p.logger.Warn("job info extraction failed, using defaults", "error", err)
		return def
	}
	var info domain.JobInfo
	if err := sanitize.Decode(raw, &info); err != nil {
		p.logger.Warn("job info response malformed, using defaults", "error", err)
		return def
	}
	if strings.TrimSpace(info.JobTitle) == "" {
		info.JobTitle = def.JobTitle
	}
	if strings.TrimSpace(info.CompanyName) == "" {
		info.CompanyName = def.CompanyName
	}
	return info
}

func (p *Processor) generateCV(ctx context.Context, job domain.JobPosting, profile domain.ProfileSnapshot) (string, error) {
	raw, err := p.gen.Generate(ctx, domain.StageCV, p.prompts.CVPrompt(job, profile), p.opts.Generation)
	if err != nil {
		return "", err
	}
	m, err := sanitize.ExtractJSON(raw)
	if err != nil {
		return "", err
	}
	cv, err := model.CVFromMap(m)
	if err != nil {
		return "", &domain.MalformedResponse{RawText: raw, Cause: err}
	}
	return assemble.CVMarkdown(cv, profile.LanguagesLine()), nil
}

func (p *Processor) generateLetter(ctx context.Context, job domain.JobPosting, profile domain.ProfileSnapshot) (string, error) {
	raw, err := p.gen.Generate(ctx, domain.StageLetter, p.prompts.LetterPrompt(job, profile), p.opts.Generation)
	if err != nil {
		return "", err
	}
	m, err := sanitize.ExtractJSON(raw)
	if err != nil {
		return "", err
	}
	letter, err := model.LetterFromMap(m)
	if err != nil {
		return "", &domain.MalformedResponse{RawText: raw, Cause: err}
	}
	md := assemble.LetterMarkdown(letter)
	if md == "" {
		return "", &domain.MalformedResponse{RawText: raw, Cause: errEmptyLetter}
	}
	return md, nil
}

func (p *Processor) translateLetter(ctx context.Context, englishMarkdown string) (string, error) {
	prompt := p.prompts.TranslationPrompt(englishMarkdown, p.opts.TargetLanguage)
	raw, err := p.gen.Generate(ctx, domain.StageTranslation, prompt, p.opts.Generation)
	if err != nil {
		return "", err
	}
	md := sanitize.NormalizeNewlines(sanitize.StripFence(raw, "markdown"))
	if md == "" {
		return "", &domain.MalformedResponse{RawText: raw, Cause: errEmptyTranslation}
	}
	return md + "\n", nil
}
