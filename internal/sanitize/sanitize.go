// Package sanitize turns raw model output into structured data.
package sanitize

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"cv-generator/internal/domain"
)

// ErrNoJSONObject is the cause recorded when the text holds no {...} span.
var ErrNoJSONObject = errors.New("no JSON object found")

var (
	jsonFence = regexp.MustCompile("(?s)```[ \\t]*(?i:json)[ \\t]*\\r?\\n?(.*?)```")
	anyFence  = regexp.MustCompile("(?s)```[^\\n`]*\\r?\\n?(.*?)```")
)

// ExtractJSON decodes the first JSON object found in raw. Text that is
// already a complete JSON object is parsed as is. Otherwise a fenced block
// (json-tagged preferred) narrows the search; within it the span from the
// first '{' to the last '}' is parsed. Nothing else is repaired.
func ExtractJSON(raw string) (map[string]any, error) {
	var out map[string]any
	if err := Decode(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Decode is ExtractJSON for an arbitrary destination.
func Decode(raw string, v any) error {
	if whole := strings.TrimSpace(raw); strings.HasPrefix(whole, "{") && strings.HasSuffix(whole, "}") && json.Valid([]byte(whole)) {
		if err := json.Unmarshal([]byte(whole), v); err != nil {
			return &domain.MalformedResponse{RawText: raw, Attempted: whole, Cause: fmt.Errorf("decode json: %w", err)}
		}
		return nil
	}

	candidate, err := objectSpan(raw)
	if err != nil {
		return &domain.MalformedResponse{RawText: raw, Cause: err}
	}
	if err := json.Unmarshal([]byte(candidate), v); err != nil {
		return &domain.MalformedResponse{RawText: raw, Attempted: candidate, Cause: fmt.Errorf("decode json: %w", err)}
	}
	return nil
}

func objectSpan(raw string) (string, error) {
	text := raw
	if m := jsonFence.FindStringSubmatch(raw); m != nil {
		text = m[1]
	} else if m := anyFence.FindStringSubmatch(raw); m != nil && strings.Contains(m[1], "{") {
		text = m[1]
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", ErrNoJSONObject
	}
	return text[start : end+1], nil
}

// StripFence removes one leading ``` or ```tag line and one trailing ```
// from raw, then trims surrounding whitespace.
func StripFence(raw, tag string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		rest := strings.TrimPrefix(s, "```")
		if tag != "" && strings.HasPrefix(strings.ToLower(rest), strings.ToLower(tag)) {
			rest = rest[len(tag):]
		}
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 && strings.TrimSpace(rest[:nl]) == "" {
			rest = rest[nl+1:]
		}
		s = rest
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// NormalizeNewlines replaces literal backslash-n sequences with real newlines.
func NormalizeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
