package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"cv-generator/internal/domain"
	"cv-generator/internal/output"
	"cv-generator/internal/prompt"
	"cv-generator/internal/render"
	"cv-generator/pkg/ai"

	"github.com/google/uuid"
)

var (
	errEmptyTranslation = errors.New("translation is empty")
	errEmptyLetter      = errors.New("cover letter has no text")
	errNoEnglishLetter  = errors.New("skipped: english cover letter was not produced")
	errMergeInputs      = errors.New("skipped: cv and english cover letter are both required")
)

type ProfileStore interface {
	LoadProfile(ctx context.Context) (domain.ProfileSnapshot, error)
}

type ApplicationsRepo interface {
	Save(ctx context.Context, a *domain.ApplicationRecord) error
}

type Generator interface {
	Generate(ctx context.Context, stage domain.Stage, prompt string, opts ai.Options) (string, error)
}

// Recorder receives one observation per artifact attempt.
type Recorder interface {
	ObserveArtifact(kind, outcome string)
}

// Dependencies are the collaborators of a Processor. Applications and
// Recorder may be nil.
type Dependencies struct {
	Profiles     ProfileStore
	Applications ApplicationsRepo
	Generator    Generator
	Prompts      *prompt.Builder
	Pipeline     *render.Pipeline
	Output       *output.Manager
	Recorder     Recorder
	Logger       *slog.Logger
}

// Processor runs one application through generation, assembly, rendering
// and storage. Requests share no mutable state.
type Processor struct {
	profiles ProfileStore
	apps     ApplicationsRepo
	gen      Generator
	prompts  *prompt.Builder
	pipeline *render.Pipeline
	output   *output.Manager
	recorder Recorder
	logger   *slog.Logger
	opts     Options
	now      func() time.Time
	merge    func(paths []string) ([]byte, error)
}

func NewProcessor(deps Dependencies, opts Options) *Processor {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		profiles: deps.Profiles,
		apps:     deps.Applications,
		gen:      deps.Generator,
		prompts:  deps.Prompts,
		pipeline: deps.Pipeline,
		output:   deps.Output,
		recorder: deps.Recorder,
		logger:   logger,
		opts:     opts,
		now:      time.Now,
		merge:    render.MergePDFs,
	}
}

// Process validates the posting, loads the profile and produces the CV, the
// English letter, its translation and the merged PDF. A failed artifact is
// noted in the result and does not stop the others. An error is returned
// only for invalid input, a missing profile, or when no document at all
// could be generated.
func (p *Processor) Process(ctx context.Context, job domain.JobPosting) (*ApplicationResult, error) {
	if err := job.Validate(p.opts.MinDescriptionLength); err != nil {
		return nil, err
	}
	profile, err := p.profiles.LoadProfile(ctx)
	if err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	log := p.logger.With("application_id", id.String())
	started := p.now()

	info := p.extractJobInfo(ctx, job)
	title := output.SafeFilename(info.JobTitle)
	log.Info("generating application", "job_title", info.JobTitle, "company", info.CompanyName, "source", job.Source)

	res := &ApplicationResult{
		Status:        domain.StatusSuccess,
		ApplicationID: id.String(),
		JobTitle:      info.JobTitle,
		CompanyName:   info.CompanyName,
	}
	name := profile.PersonalInfo.FullName

	var firstErr error
	fail := func(kind domain.ArtifactKind, err error) {
		log.Warn("artifact not produced", "kind", kind, "error", err)
		res.noteError(kind, err)
		p.observe(kind, "generation_failed")
		if firstErr == nil {
			firstErr = err
		}
	}

	if md, err := p.generateCV(ctx, job, profile); err != nil {
		fail(domain.KindCV, err)
	} else {
		res.CVMarkdown = md
		p.produce(ctx, log, res, domain.KindCV, md, render.Page{Layout: render.LayoutCV, Title: name + " - CV"}, title, started)
	}

	if md, err := p.generateLetter(ctx, job, profile); err != nil {
		fail(domain.KindCoverLetterEN, err)
	} else {
		res.CoverLetterENMarkdown = md
		p.produce(ctx, log, res, domain.KindCoverLetterEN, md, render.Page{Layout: render.LayoutLetter, Title: name + " - Cover Letter"}, title, started)
	}

	if res.CoverLetterENMarkdown == "" {
		res.noteError(domain.KindCoverLetterZH, errNoEnglishLetter)
	} else if md, err := p.translateLetter(ctx, res.CoverLetterENMarkdown); err != nil {
		fail(domain.KindCoverLetterZH, err)
	} else {
		res.CoverLetterZHMarkdown = md
		p.produce(ctx, log, res, domain.KindCoverLetterZH, md, render.Page{Layout: render.LayoutLetter, Title: name + " - 求職信", Lang: "zh-Hant"}, title, started)
	}

	if res.CVMarkdown == "" && res.CoverLetterENMarkdown == "" {
		return nil, firstErr
	}

	p.mergeApplication(ctx, log, res, title, started)

	report := p.output.Sweep(ctx)
	if len(report.Deleted) > 0 || len(report.Failed) > 0 {
		log.Info("retention sweep", "deleted", len(report.Deleted), "failed", len(report.Failed))
	}

	rec := res.record(job)
	rec.ID = id
	rec.CreatedAt = started
	if p.apps != nil {
		if err := p.apps.Save(ctx, rec); err != nil {
			log.Warn("failed to save application record", "error", err)
		}
	}

	log.Info("application generated", "status", rec.Status, "took_ms", p.now().Sub(started).Milliseconds())
	return res, nil
}

// produce renders md and writes the PDF (and, when enabled, the Markdown
// source). Failures are noted on res.
func (p *Processor) produce(ctx context.Context, log *slog.Logger, res *ApplicationResult, kind domain.ArtifactKind, md string, page render.Page, title string, ts time.Time) {
	if p.opts.KeepMarkdown {
		if _, err := p.output.WriteArtifact(ctx, []byte(md), output.Filename(kind, title, ts, ".md")); err != nil {
			log.Warn("failed to keep markdown copy", "kind", kind, "error", err)
		}
	}

	art, err := p.pipeline.RenderPDF(ctx, kind, md, page)
	if err != nil {
		log.Warn("render failed", "kind", kind, "error", err)
		res.noteError(kind, err)
		p.observe(kind, "render_failed")
		return
	}
	art.Filename = output.Filename(kind, title, ts, ".pdf")
	p.store(ctx, log, res, kind, art.PDF, art.Filename)
}

func (p *Processor) mergeApplication(ctx context.Context, log *slog.Logger, res *ApplicationResult, title string, ts time.Time) {
	cv, letter := res.Path(domain.KindCV), res.Path(domain.KindCoverLetterEN)
	if cv == "" || letter == "" {
		res.noteError(domain.KindMerged, errMergeInputs)
		return
	}
	merged, err := p.merge([]string{letter, cv})
	if err != nil {
		log.Warn("merge failed", "error", err)
		res.noteError(domain.KindMerged, err)
		p.observe(domain.KindMerged, "render_failed")
		return
	}
	p.store(ctx, log, res, domain.KindMerged, merged, output.Filename(domain.KindMerged, title, ts, ".pdf"))
}

func (p *Processor) store(ctx context.Context, log *slog.Logger, res *ApplicationResult, kind domain.ArtifactKind, data []byte, filename string) {
	path, err := p.output.WriteArtifact(ctx, data, filename)
	if err != nil {
		log.Warn("write failed", "kind", kind, "error", err)
		res.noteError(kind, err)
		p.observe(kind, "write_failed")
		return
	}
	res.setFile(kind, p.publicURL(filename), path)
	p.observe(kind, "success")
	log.Info("artifact written", "kind", kind, "file", filename)
}

func (p *Processor) publicURL(filename string) string {
	return fmt.Sprintf("%s/output/%s", p.opts.PublicBaseURL, url.PathEscape(filename))
}

func (p *Processor) observe(kind domain.ArtifactKind, outcome string) {
	if p.recorder != nil {
		p.recorder.ObserveArtifact(string(kind), outcome)
	}
}
