package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-teacher/internal/lang"
)

func writePrompts(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	b, err := Load("")
	require.NoError(t, err)
	out, err := b.Correction("Ich bin gut", lang.German)
	require.NoError(t, err)
	assert.Contains(t, out, "Correct the German sentence")
}

func TestLoad_OverridesTemplatesAndExamples(t *testing.T) {
	p := writePrompts(t, `
correction: |
  sentence: {{.Sentence}}
  Correct the {{.Learn}} sentence. If the sentence is correct then answer ONLY with: "None"
examples:
  german:
    target: english
    literal: '[["gehen", "go", "Ich will gehen", "I want to go"]]'
`)
	b, err := Load(p)
	require.NoError(t, err)

	out, err := b.Correction("Ich bin gut", lang.German)
	require.NoError(t, err)
	assert.Contains(t, out, `answer ONLY with: "None"`)

	ex, err := b.Example(lang.German)
	require.NoError(t, err)
	assert.Equal(t, lang.English, ex.Target)

	// untouched defaults survive
	out, err = b.System(lang.Config{Learn: lang.French, Clarification: lang.Spanish, Tone: lang.Formal})
	require.NoError(t, err)
	assert.Contains(t, out, "You are a French language teacher")

	// the package defaults are not mutated by an override
	assert.Equal(t, lang.Italian, New().examples[lang.German].Target)
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown field":    "system: \"{{.Nope}}\"\n",
		"bad syntax":       "vocabulary: \"{{.Words\"\n",
		"unknown language": "examples:\n  klingon:\n    target: english\n    literal: '[]'\n",
		"empty literal":    "examples:\n  german:\n    target: english\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writePrompts(t, body))
			require.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
