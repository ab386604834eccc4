// Package prompt builds the exact text sent to the generation service for the
// persona, correction, clarification and vocabulary requests.
package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"ai-teacher/internal/lang"
)

// MissingParameterError reports a required prompt input that is empty.
type MissingParameterError struct {
	Param string
}

func (e *MissingParameterError) Error() string {
	return "missing parameter: " + e.Param
}

// Builder renders prompts. It is immutable after construction and safe for
// concurrent use.
type Builder struct {
	system        *template.Template
	correction    *template.Template
	clarification *template.Template
	vocabulary    *template.Template
	examples      map[lang.Language]Example
}

// New returns a Builder with the built-in templates and canonical examples.
func New() *Builder {
	examples := make(map[lang.Language]Example, len(defaultExamples))
	for l, ex := range defaultExamples {
		examples[l] = ex
	}
	return &Builder{
		system:        template.Must(parse("system", defaultSystemTemplate)),
		correction:    template.Must(parse("correction", defaultCorrectionTemplate)),
		clarification: template.Must(parse("clarification", defaultClarificationTemplate)),
		vocabulary:    template.Must(parse("vocabulary", defaultVocabularyTemplate)),
		examples:      examples,
	}
}

func parse(name, text string) (*template.Template, error) {
	return template.New(name).Option("missingkey=error").Parse(text)
}

func render(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}
	return b.String(), nil
}

func requireParams(params ...string) error {
	for i := 0; i+1 < len(params); i += 2 {
		if strings.TrimSpace(params[i+1]) == "" {
			return &MissingParameterError{Param: params[i]}
		}
	}
	return nil
}

// System renders the teacher persona for a session.
func (b *Builder) System(cfg lang.Config) (string, error) {
	if err := requireParams(
		"learn language", string(cfg.Learn),
		"clarification language", string(cfg.Clarification),
		"tone", string(cfg.Tone),
	); err != nil {
		return "", err
	}
	return render(b.system, systemData{
		Learn:         string(cfg.Learn),
		Clarification: string(cfg.Clarification),
		Tone:          string(cfg.Tone),
		Topics:        strings.TrimSpace(cfg.Topics),
	})
}

// Correction asks for the user's sentence to be corrected if it is wrong.
func (b *Builder) Correction(sentence string, learn lang.Language) (string, error) {
	if err := requireParams("sentence", sentence, "learn language", string(learn)); err != nil {
		return "", err
	}
	return render(b.correction, correctionData{Sentence: sentence, Learn: string(learn)})
}

// Clarification asks for the user's questions about reply to be answered in
// the clarification language.
func (b *Builder) Clarification(reply, questions string, pair lang.Pair) (string, error) {
	if err := requireParams(
		"teacher reply", reply,
		"questions", questions,
		"learn language", string(pair.Learn),
		"clarification language", string(pair.Clarification),
	); err != nil {
		return "", err
	}
	return render(b.clarification, clarificationData{
		Reply:         reply,
		Questions:     questions,
		Learn:         string(pair.Learn),
		Clarification: string(pair.Clarification),
	})
}

// Vocabulary asks for words to be translated into a nested array literal,
// anchored on the canonical example of the learn language.
func (b *Builder) Vocabulary(words string, pair lang.Pair) (string, error) {
	if err := requireParams(
		"words", words,
		"learn language", string(pair.Learn),
		"clarification language", string(pair.Clarification),
	); err != nil {
		return "", err
	}
	ex, err := b.Example(pair.Learn)
	if err != nil {
		return "", err
	}
	return render(b.vocabulary, vocabularyData{
		Words:         words,
		Learn:         string(pair.Learn),
		Clarification: string(pair.Clarification),
		Example:       ex.Literal,
		ExampleTarget: string(ex.Target),
	})
}

// Example returns the canonical vocabulary example for l.
func (b *Builder) Example(l lang.Language) (Example, error) {
	ex, ok := b.examples[l]
	if !ok {
		return Example{}, &lang.UnsupportedLanguageError{Language: string(l)}
	}
	return ex, nil
}
