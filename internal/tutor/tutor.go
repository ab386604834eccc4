// Package tutor runs one user submission: the conversation turn, then the
// correction, clarification and vocabulary requests, each reported on its own.
package tutor

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"ai-teacher/internal/lang"
	"ai-teacher/internal/llm"
	"ai-teacher/internal/prompt"
	"ai-teacher/internal/session"
	"ai-teacher/internal/storage"
	"ai-teacher/internal/vocab"
)

type Branch string

const (
	BranchConversation  Branch = "conversation"
	BranchCorrection    Branch = "correction"
	BranchClarification Branch = "clarification"
	BranchVocabulary    Branch = "vocabulary"
)

// Form is what the user submits: the settings plus three free-text fields.
// Empty fields skip their branches.
type Form struct {
	Config        lang.Config
	Conversation  string
	Clarification string
	Vocabulary    string
}

// Outcome is the result of one branch. A skipped branch was never invoked.
type Outcome struct {
	Branch  Branch
	Skipped bool
	Text    string
	Err     error
}

func (o Outcome) OK() bool { return !o.Skipped && o.Err == nil }

// Result holds the four branch outcomes of a submission.
type Result struct {
	Conversation  Outcome
	Correction    Outcome
	Clarification Outcome
	Vocabulary    Outcome

	// NeedsCorrection is false when the correction request answered "None".
	NeedsCorrection bool
	// Entries are the parsed vocabulary entries; Added counts those new to the store.
	Entries []vocab.Entry
	Added   int
}

// Outcomes returns the outcomes in display order.
func (r Result) Outcomes() []Outcome {
	return []Outcome{r.Conversation, r.Correction, r.Clarification, r.Vocabulary}
}

// Temperatures are the sampling temperatures of the single-shot requests.
type Temperatures struct {
	Correction    float32
	Clarification float32
	Vocabulary    float32
}

func DefaultTemperatures() Temperatures {
	return Temperatures{Correction: 0.7, Clarification: 0.7, Vocabulary: 0}
}

// Tutor orchestrates submissions against one Session.
type Tutor struct {
	session *session.Session
	llm     llm.Completer
	prompts *prompt.Builder
	store   storage.Store
	temps   Temperatures
	log     zerolog.Logger
}

func New(sess *session.Session, completer llm.Completer, prompts *prompt.Builder, store storage.Store, temps Temperatures, logger zerolog.Logger) *Tutor {
	return &Tutor{
		session: sess,
		llm:     completer,
		prompts: prompts,
		store:   store,
		temps:   temps,
		log:     logger.With().Str("session", sess.ID()).Logger(),
	}
}

func (t *Tutor) Session() *session.Session { return t.session }

// Submit runs the branches in order. A failing branch never stops the others.
func (t *Tutor) Submit(ctx context.Context, form Form) Result {
	res := Result{
		Conversation:  Outcome{Branch: BranchConversation, Skipped: true},
		Correction:    Outcome{Branch: BranchCorrection, Skipped: true},
		Clarification: Outcome{Branch: BranchClarification, Skipped: true},
		Vocabulary:    Outcome{Branch: BranchVocabulary, Skipped: true},
	}

	var reply string
	if strings.TrimSpace(form.Conversation) != "" {
		res.Conversation.Skipped = false
		reply, res.Conversation.Err = t.session.Submit(ctx, form.Config, form.Conversation)
		res.Conversation.Text = reply

		res.Correction.Skipped = false
		c, err := t.Correct(ctx, form.Conversation, form.Config.Learn)
		res.Correction.Text, res.Correction.Err = c.Text, err
		res.NeedsCorrection = err == nil && c.NeedsCorrection
	}

	if strings.TrimSpace(form.Clarification) != "" {
		res.Clarification.Skipped = false
		if res.Conversation.Err != nil || reply == "" {
			reply, _ = t.session.LastReply()
		}
		res.Clarification.Text, res.Clarification.Err = t.Clarify(ctx, reply, form.Clarification, form.Config.Pair())
	}

	if strings.TrimSpace(form.Vocabulary) != "" {
		res.Vocabulary.Skipped = false
		res.Entries, res.Added, res.Vocabulary.Text, res.Vocabulary.Err = t.vocabulary(ctx, form.Vocabulary, form.Config.Pair())
	}

	t.logResult(res)
	return res
}

// vocabulary translates words and stores the new entries. On a parse failure
// the raw answer is returned as text and nothing is stored.
func (t *Tutor) vocabulary(ctx context.Context, words string, pair lang.Pair) ([]vocab.Entry, int, string, error) {
	raw, entries, err := t.Translate(ctx, words, pair)
	if err != nil {
		var mre *vocab.MalformedResponseError
		if errors.As(err, &mre) {
			return nil, 0, raw, err
		}
		return nil, 0, "", err
	}
	if t.store == nil {
		return entries, 0, vocab.Format(entries), nil
	}
	added, err := t.store.Append(ctx, pair, entries)
	if err != nil {
		return entries, 0, vocab.Format(entries), err
	}
	return entries, added, vocab.Format(entries), nil
}

// Vocabulary lists the stored entries for pair.
func (t *Tutor) Vocabulary(ctx context.Context, pair lang.Pair) ([]vocab.Entry, error) {
	if t.store == nil {
		return nil, nil
	}
	return t.store.List(ctx, pair)
}

func (t *Tutor) logResult(res Result) {
	ev := t.log.Info()
	for _, o := range res.Outcomes() {
		status := "ok"
		switch {
		case o.Skipped:
			status = "skipped"
		case o.Err != nil:
			status = "error"
			t.log.Warn().Err(o.Err).Str("branch", string(o.Branch)).Msg("branch failed")
		}
		ev = ev.Str(string(o.Branch), status)
	}
	ev.Int("vocabulary_added", res.Added).Msg("submission handled")
}
