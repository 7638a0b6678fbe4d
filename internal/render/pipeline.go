package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cv-generator/internal/domain"

	"github.com/yuin/goldmark"
)

// ErrNotPDF is returned when the renderer output lacks the %PDF signature.
var ErrNotPDF = errors.New("renderer output is not a PDF")

// Renderer converts a full HTML document into PDF bytes.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// Artifact is one rendered document. Filename is assigned by the caller.
type Artifact struct {
	Kind      domain.ArtifactKind
	Markdown  string
	HTML      string
	PDF       []byte
	Filename  string
	CreatedAt time.Time
}

// Pipeline runs Markdown -> HTML -> PDF. It holds no per-request state.
type Pipeline struct {
	renderer Renderer
	md       goldmark.Markdown
	logger   *slog.Logger
}

func NewPipeline(r Renderer) *Pipeline {
	return &Pipeline{renderer: r, md: newMarkdown(), logger: slog.Default()}
}

// RenderPDF converts markdown into a PDF artifact of the given kind. Any
// failure is returned as *domain.RenderFailure.
func (p *Pipeline) RenderPDF(ctx context.Context, kind domain.ArtifactKind, markdown string, page Page) (*Artifact, error) {
	fragment, err := p.ToHTML(markdown)
	if err != nil {
		return nil, &domain.RenderFailure{Kind: kind, Cause: err}
	}
	doc, err := Document(fragment, page)
	if err != nil {
		return nil, &domain.RenderFailure{Kind: kind, Cause: err}
	}

	start := time.Now()
	pdf, err := p.renderer.RenderHTMLToPDF(ctx, doc)
	if err != nil {
		return nil, &domain.RenderFailure{Kind: kind, Cause: err}
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return nil, &domain.RenderFailure{Kind: kind, Cause: fmt.Errorf("%w (%d bytes)", ErrNotPDF, len(pdf))}
	}
	p.logger.Info("rendered pdf", "kind", kind, "bytes", len(pdf), "took_ms", time.Since(start).Milliseconds())

	return &Artifact{
		Kind:      kind,
		Markdown:  markdown,
		HTML:      doc,
		PDF:       pdf,
		CreatedAt: time.Now(),
	}, nil
}
