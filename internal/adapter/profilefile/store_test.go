package profilefile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cv-generator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `personal_info:
  full_name: Jane Doe
  email: jane@example.com
  github: github.com/jane
  languages: ["English: Fluent", "Cantonese: Native"]
  skills:
    backend: [Go, PostgreSQL]
experience:
  - title: Engineer
    company: Acme
    period_start: "2020"
    period_end: "2024"
    responsibilities:
      - Built billing APIs
education:
  - degree: BSc Computer Science
    institution: HKU
`

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	p, err := NewStore(path).LoadProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.PersonalInfo.FullName)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, p.PersonalInfo.Skills["backend"])
	require.Len(t, p.Experience, 1)
	assert.Equal(t, "2020", p.Experience[0].PeriodStart)
	assert.Equal(t, "HKU", p.Education[0].Institution)
	assert.Equal(t, "English: Fluent, Cantonese: Native", p.LanguagesLine())
}

func TestLoadProfile_Empty(t *testing.T) {
	dir := t.TempDir()

	_, err := NewStore(filepath.Join(dir, "missing.yaml")).LoadProfile(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoProfile)

	path := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("experience: []\n"), 0o644))
	_, err = NewStore(path).LoadProfile(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoProfile)
}

func TestLoadProfile_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("personal_info: [unterminated"), 0o644))
	_, err := NewStore(path).LoadProfile(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoProfile)
}
