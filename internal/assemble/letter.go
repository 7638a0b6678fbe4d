package assemble

import (
	"strings"

	"cv-generator/internal/model"
	"cv-generator/internal/sanitize"
)

// LetterMarkdown joins greeting, body paragraphs, closing and signature
// with blank lines, dropping empty parts.
func LetterMarkdown(l model.StructuredLetter) string {
	var parts []string
	add := func(s string) {
		s = strings.TrimSpace(sanitize.NormalizeNewlines(s))
		if s != "" {
			parts = append(parts, s)
		}
	}
	add(l.Greeting)
	for _, p := range l.Body {
		add(p)
	}
	add(l.Closing)
	add(l.Signature)
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// inline collapses a field onto one line so it cannot open a new block.
func inline(s string) string {
	s = strings.ReplaceAll(s, `\n`, " ")
	return strings.Join(strings.Fields(s), " ")
}

// text is inline plus escaping of a leading heading marker.
func text(s string) string {
	return escapeLead(inline(s))
}

func escapeLead(s string) string {
	if strings.HasPrefix(s, "#") {
		return `\` + s
	}
	return s
}

func joinNonEmpty(sep string, values ...string) string {
	var out []string
	for _, v := range values {
		if v = inline(v); v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}

func bullets(items []string) []string {
	var out []string
	for _, it := range items {
		if it = text(it); it != "" {
			out = append(out, "- "+it)
		}
	}
	return out
}
