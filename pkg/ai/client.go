// Package ai calls text generation backends with a single fallback chain.
package ai

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"cv-generator/internal/domain"
)

// ErrEmptyResponse is returned when a backend answers with no text.
var ErrEmptyResponse = errors.New("backend returned empty content")

// ErrNoBackend is returned by a Client built without backends.
var ErrNoBackend = errors.New("no generation backend configured")

// Options are the generation parameters, mapped onto each backend's own
// request fields.
type Options struct {
	Temperature     float32
	MaxOutputTokens int32
}

// Backend is a single text generation provider.
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// Recorder receives one observation per backend call.
type Recorder interface {
	ObserveGeneration(backend, outcome string)
}

// Client tries its backends in order. It moves to the next backend only when
// the current one fails transiently; any other failure is returned at once.
type Client struct {
	backends []Backend
	recorder Recorder
	logger   *slog.Logger
}

func NewClient(backends ...Backend) *Client {
	return &Client{backends: backends, logger: slog.Default()}
}

func (c *Client) WithRecorder(r Recorder) *Client {
	c.recorder = r
	return c
}

func (c *Client) WithLogger(l *slog.Logger) *Client {
	if l != nil {
		c.logger = l
	}
	return c
}

// Generate returns the first successful, non-empty completion. Failures are
// reported as *domain.GenerationFailure naming the last backend tried.
func (c *Client) Generate(ctx context.Context, stage domain.Stage, prompt string, opts Options) (string, error) {
	if len(c.backends) == 0 {
		return "", &domain.GenerationFailure{Stage: stage, Backend: "none", Cause: ErrNoBackend}
	}
	for i, b := range c.backends {
		text, err := b.Generate(ctx, prompt, opts)
		if err == nil && strings.TrimSpace(text) == "" {
			err = ErrEmptyResponse
		}
		if err == nil {
			c.observe(b.Name(), "success")
			return text, nil
		}

		last := i == len(c.backends)-1
		if !IsTransient(err) || ctx.Err() != nil {
			c.observe(b.Name(), "error")
			return "", &domain.GenerationFailure{Stage: stage, Backend: b.Name(), Cause: err}
		}
		c.observe(b.Name(), "transient_error")
		if last {
			return "", &domain.GenerationFailure{Stage: stage, Backend: b.Name(), Cause: err}
		}
		c.logger.Warn("generation backend failed, falling back",
			"stage", stage, "backend", b.Name(), "next", c.backends[i+1].Name(), "error", err)
	}
	return "", &domain.GenerationFailure{Stage: stage, Backend: "none", Cause: ErrNoBackend}
}

func (c *Client) observe(backend, outcome string) {
	if c.recorder != nil {
		c.recorder.ObserveGeneration(backend, outcome)
	}
}
