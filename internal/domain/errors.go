package domain

import (
	"errors"
	"fmt"
)

// ErrNoProfile is returned when the profile store has no personal info row.
var ErrNoProfile = errors.New("no CV data found")

// InputValidationError is returned before any generation call is made.
type InputValidationError struct {
	Field   string
	Message string
}

func (e *InputValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Stage identifies which generation call failed.
type Stage string

const (
	StageJobInfo     Stage = "job_info"
	StageCV          Stage = "cv"
	StageLetter      Stage = "cover_letter"
	StageTranslation Stage = "translation"
)

// GenerationFailure means every eligible backend failed, or one failed
// non-transiently.
type GenerationFailure struct {
	Stage   Stage
	Backend string
	Cause   error
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("%s generation failed on %s: %v", e.Stage, e.Backend, e.Cause)
}

func (e *GenerationFailure) Unwrap() error { return e.Cause }

// MalformedResponse carries the raw model output that could not be decoded.
type MalformedResponse struct {
	RawText   string
	Attempted string
	Cause     error
}

func (e *MalformedResponse) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Cause)
}

func (e *MalformedResponse) Unwrap() error { return e.Cause }

// RenderFailure is reported per artifact; other artifacts still proceed.
type RenderFailure struct {
	Kind  ArtifactKind
	Cause error
}

func (e *RenderFailure) Error() string {
	return fmt.Sprintf("render %s: %v", e.Kind, e.Cause)
}

func (e *RenderFailure) Unwrap() error { return e.Cause }
