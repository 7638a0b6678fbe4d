package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCVFromMap(t *testing.T) {
	m := map[string]any{
		"personal_info": map[string]any{
			"full_name": "Jane Doe",
			"title":     "Backend Engineer",
			"github":    "github.com/jane",
		},
		"summary": "Builds reliable services.",
		"experience": []any{
			map[string]any{
				"title":            "Engineer",
				"company":          "Acme",
				"period":           "2020 - 2024",
				"responsibilities": []any{"Shipped things"},
			},
		},
	}

	cv, err := CVFromMap(m)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", cv.PersonalInfo.FullName)
	assert.Equal(t, "github.com/jane", cv.PersonalInfo.GitHub)
	assert.Empty(t, cv.PersonalInfo.Portfolio)
	require.Len(t, cv.Experience, 1)
	assert.Equal(t, []string{"Shipped things"}, cv.Experience[0].Responsibilities)
	assert.Empty(t, cv.Education)
}

func TestValidateCV_Rejects(t *testing.T) {
	cases := map[string]map[string]any{
		"missing personal_info": {"summary": "x"},
		"empty name":            {"personal_info": map[string]any{"full_name": ""}},
		"blank name":            {"personal_info": map[string]any{"full_name": "  \t"}, "summary": "x"},
		"experience not array":  {"personal_info": map[string]any{"full_name": "J"}, "experience": "none"},
		"bullet not string": {
			"personal_info": map[string]any{"full_name": "J"},
			"experience":    []any{map[string]any{"title": "T", "responsibilities": []any{1}}},
		},
	}
	for name, m := range cases {
		t.Run(name, func(t *testing.T) {
			err := ValidateCV(m)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "schema validation failed")
		})
	}
}

func TestLetterFromMap(t *testing.T) {
	l, err := LetterFromMap(map[string]any{
		"greeting":  "Dear Hiring Manager,",
		"body":      []any{"First.", "Second."},
		"closing":   "Sincerely,",
		"signature": "Jane Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"First.", "Second."}, l.Body)

	_, err = LetterFromMap(map[string]any{"greeting": "Hi", "body": []any{}})
	assert.Error(t, err)

	_, err = LetterFromMap(map[string]any{"greeting": "Hi"})
	assert.Error(t, err)

	_, err = LetterFromMap(map[string]any{"greeting": " ", "body": []any{"   ", ""}})
	assert.Error(t, err)

	l, err = LetterFromMap(map[string]any{"body": []any{"", "Real paragraph."}})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "Real paragraph."}, l.Body)
}
