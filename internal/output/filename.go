package output

import (
	"path/filepath"
	"strings"
	"time"

	"cv-generator/internal/domain"
)

// TimestampLayout is the second-resolution stamp embedded in file names.
const TimestampLayout = "20060102_150405"

// SafeFilename strips characters that are unsafe in file names and replaces
// spaces with underscores. An empty result becomes "Job".
func SafeFilename(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', '*', '?', ':', '"', '<', '>', '|':
			return -1
		case ' ', '\t', '\n', '\r':
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
	if s == "" {
		return "Job"
	}
	return s
}

// Filename builds "{kind}_{title}_{timestamp}{ext}". The title is omitted
// when empty.
func Filename(kind domain.ArtifactKind, title string, ts time.Time, ext string) string {
	parts := []string{string(kind)}
	if title != "" {
		parts = append(parts, title)
	}
	parts = append(parts, ts.Format(TimestampLayout))
	return strings.Join(parts, "_") + ext
}

// KindOf returns the artifact kind a file name belongs to, or "" when the
// name does not follow the artifact naming scheme.
func KindOf(name string) domain.ArtifactKind {
	for _, k := range domain.ArtifactKinds {
		if strings.HasPrefix(name, string(k)+"_") {
			return k
		}
	}
	return ""
}

// typeKey partitions artifacts for retention: kind plus extension, so PDFs
// and their Markdown copies are counted separately.
func typeKey(name string) string {
	k := KindOf(name)
	if k == "" {
		return ""
	}
	return string(k) + strings.ToLower(filepath.Ext(name))
}
