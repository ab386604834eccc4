package tutor

import (
	"context"
	"strings"

	"ai-teacher/internal/lang"
	"ai-teacher/internal/llm"
	"ai-teacher/internal/vocab"
)

// NoCorrection is the answer the model gives for a sentence without mistakes.
const NoCorrection = "None"

// Correction is the outcome of a correction request.
type Correction struct {
	Text            string
	NeedsCorrection bool
}

// Correct asks for sentence to be corrected. A reply that is exactly "None"
// (ignoring surrounding whitespace) means the sentence is fine.
func (t *Tutor) Correct(ctx context.Context, sentence string, learn lang.Language) (Correction, error) {
	p, err := t.prompts.Correction(sentence, learn)
	if err != nil {
		return Correction{}, err
	}
	text, err := t.complete(ctx, "correction", p, t.temps.Correction)
	if err != nil {
		return Correction{}, err
	}
	text = strings.TrimSpace(text)
	return Correction{Text: text, NeedsCorrection: text != NoCorrection}, nil
}

// Clarify answers questions about a teacher reply in the clarification language.
func (t *Tutor) Clarify(ctx context.Context, reply, questions string, pair lang.Pair) (string, error) {
	p, err := t.prompts.Clarification(reply, questions, pair)
	if err != nil {
		return "", err
	}
	text, err := t.complete(ctx, "clarification", p, t.temps.Clarification)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Translate requests translations for words and parses the answer. raw is
// returned even when parsing fails.
func (t *Tutor) Translate(ctx context.Context, words string, pair lang.Pair) (raw string, entries []vocab.Entry, err error) {
	p, err := t.prompts.Vocabulary(words, pair)
	if err != nil {
		return "", nil, err
	}
	raw, err = t.complete(ctx, "vocabulary", p, t.temps.Vocabulary)
	if err != nil {
		return "", nil, err
	}
	entries, err = vocab.Parse(raw)
	if err != nil {
		return raw, nil, err
	}
	return raw, entries, nil
}

func (t *Tutor) complete(ctx context.Context, op, prompt string, temperature float32) (string, error) {
	resp, err := t.llm.Complete(ctx, prompt, llm.CompletionOptions{Temperature: temperature})
	if err != nil {
		t.log.Error().Err(err).Str("request", op).Msg("completion failed")
		return "", &llm.ServiceError{Op: op, Err: err}
	}
	t.log.Debug().
		Str("request", op).
		Str("model", resp.Model).
		Int("total_tokens", resp.TotalTokens).
		Msg("completion done")
	return resp.Content, nil
}
