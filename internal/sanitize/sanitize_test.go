package sanitize

import (
	"encoding/json"
	"errors"
	"testing"

	"cv-generator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want map[string]any
	}{
		{"plain", `{"a":1}`, map[string]any{"a": float64(1)}},
		{"json fence with prose", "Here is your result:\n```json\n{\"a\":1}\n```\nHope this helps!", map[string]any{"a": float64(1)}},
		{"bare fence", "```\n{\"b\":\"x\"}\n```", map[string]any{"b": "x"}},
		{"upper case tag", "```JSON\n{\"b\":\"x\"}\n```", map[string]any{"b": "x"}},
		{"surrounding prose", `Sure! {"name":"Jane","tags":["a","b"]} Let me know.`, map[string]any{"name": "Jane", "tags": []any{"a", "b"}}},
		{"nested braces", `{"a":{"b":{"c":1}}}`, map[string]any{"a": map[string]any{"b": map[string]any{"c": float64(1)}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractJSON_JSONFencePreferredOverOtherFences(t *testing.T) {
	raw := "```text\nnot this\n```\nthen\n```json\n{\"picked\":true}\n```"
	got, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"picked": true}, got)
}

func TestExtractJSON_FencedEqualsUnfenced(t *testing.T) {
	inner := `{"personal_info":{"full_name":"Jane"},"experience":[]}`
	a, err := ExtractJSON(inner)
	require.NoError(t, err)
	b, err := ExtractJSON("```json\n" + inner + "\n```")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExtractJSON_RoundTrip(t *testing.T) {
	in := map[string]any{
		"greeting":  "Dear Hiring Manager,",
		"body":      []any{"one", "two"},
		"signature": "Jane",
		"nested":    map[string]any{"n": float64(3), "ok": false},
	}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	got, err := ExtractJSON(string(b))
	require.NoError(t, err)
	assert.Equal(t, in, got)

	// string values may themselves contain fences and braces
	withFence := map[string]any{
		"a":       float64(1),
		"summary": "Wrote docs like ```json\n{\"b\":2}\n``` for APIs",
	}
	b, err = json.Marshal(withFence)
	require.NoError(t, err)
	got, err = ExtractJSON(string(b))
	require.NoError(t, err)
	assert.Equal(t, withFence, got)

	again, err := json.Marshal(got)
	require.NoError(t, err)
	got2, err := ExtractJSON(string(again))
	require.NoError(t, err)
	assert.Equal(t, got, got2)
}

func TestExtractJSON_Failures(t *testing.T) {
	t.Run("no braces", func(t *testing.T) {
		_, err := ExtractJSON("I cannot help with that.")
		var mr *domain.MalformedResponse
		require.True(t, errors.As(err, &mr))
		assert.ErrorIs(t, err, ErrNoJSONObject)
		assert.Equal(t, "I cannot help with that.", mr.RawText)
		assert.Empty(t, mr.Attempted)
	})

	t.Run("unbalanced", func(t *testing.T) {
		raw := `{"a": {"b": 1}`
		_, err := ExtractJSON(raw)
		var mr *domain.MalformedResponse
		require.True(t, errors.As(err, &mr))
		assert.Equal(t, raw, mr.RawText)
		assert.Equal(t, raw, mr.Attempted)
	})

	t.Run("closing brace only", func(t *testing.T) {
		_, err := ExtractJSON("} nothing {")
		assert.ErrorIs(t, err, ErrNoJSONObject)
	})
}

func TestDecode(t *testing.T) {
	var info domain.JobInfo
	require.NoError(t, Decode("```json\n{\"job_title\":\"Go Engineer\",\"company_name\":\"Acme\"}\n```", &info))
	assert.Equal(t, domain.JobInfo{JobTitle: "Go Engineer", CompanyName: "Acme"}, info)
}

func TestStripFence(t *testing.T) {
	assert.Equal(t, "# Title\n\nBody", StripFence("```markdown\n# Title\n\nBody\n```", "markdown"))
	assert.Equal(t, "# Title", StripFence("```\n# Title\n```", "markdown"))
	assert.Equal(t, "plain text", StripFence("  plain text \n", "markdown"))
	assert.Equal(t, "md\n# Title", StripFence("```md\n# Title\n```", "markdown"))
}

func TestNormalizeNewlines(t *testing.T) {
	assert.Equal(t, "a\nb\n\nc", NormalizeNewlines(`a\nb\n\nc`))
	assert.Equal(t, "unchanged", NormalizeNewlines("unchanged"))
}
