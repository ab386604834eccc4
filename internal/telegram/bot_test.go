package telegram

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"ai-teacher/internal/lang"
	"ai-teacher/internal/tutor"
	"ai-teacher/internal/vocab"
)

type fakeSender struct{ sent []tgbotapi.MessageConfig }

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) texts() []string {
	out := make([]string, len(f.sent))
	for i, m := range f.sent {
		out[i] = m.Text
	}
	return out
}

type fakeTutor struct {
	forms   []tutor.Form
	result  tutor.Result
	entries []vocab.Entry
	listErr error
	started bool
}

func (f *fakeTutor) Submit(ctx context.Context, form tutor.Form) tutor.Result {
	f.forms = append(f.forms, form)
	return f.result
}

func (f *fakeTutor) Vocabulary(ctx context.Context, pair lang.Pair) ([]vocab.Entry, error) {
	return f.entries, f.listErr
}

func (f *fakeTutor) Started() bool { return f.started }

func newTestBot(svc *fakeTutor, parseMode string) (*Bot, *fakeSender) {
	fs := &fakeSender{}
	return &Bot{
		s:         fs,
		tutor:     svc,
		parseMode: parseMode,
		log:       zerolog.New(io.Discard),
		rng:       rand.New(rand.NewPCG(1, 2)),
		settings: lang.Config{
			Learn:         lang.German,
			Clarification: lang.Italian,
			Tone:          lang.Informal,
		},
	}, fs
}

func textMessage(chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}, Text: text}
}

func commandMessage(chatID int64, text string) *tgbotapi.Message {
	cmd := strings.SplitN(text, " ", 2)[0]
	msg := textMessage(chatID, text)
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}}
	return msg
}

func fullResult() tutor.Result {
	return tutor.Result{
		Conversation:    tutor.Outcome{Branch: tutor.BranchConversation, Text: "Hallo! Wie geht's?"},
		Correction:      tutor.Outcome{Branch: tutor.BranchCorrection, Text: "None"},
		Clarification:   tutor.Outcome{Branch: tutor.BranchClarification, Skipped: true},
		Vocabulary:      tutor.Outcome{Branch: tutor.BranchVocabulary, Skipped: true},
		NeedsCorrection: false,
	}
}

func TestPlainText_SubmitsConversationAndSendsEachBranch(t *testing.T) {
	svc := &fakeTutor{result: fullResult()}
	b, fs := newTestBot(svc, "")

	b.handleIncomingMessage(context.Background(), textMessage(7, "Hallo"))

	if len(svc.forms) != 1 {
		t.Fatalf("expected one submission, got %d", len(svc.forms))
	}
	form := svc.forms[0]
	if form.Conversation != "Hallo" || form.Clarification != "" || form.Vocabulary != "" {
		t.Fatalf("unexpected form: %+v", form)
	}
	if form.Config.Learn != lang.German || form.Config.Tone != lang.Informal {
		t.Fatalf("settings not carried: %+v", form.Config)
	}
	texts := fs.texts()
	if len(texts) != 2 {
		t.Fatalf("expected conversation and correction messages, got %q", texts)
	}
	if !strings.HasPrefix(texts[0], "Conversation\n\n") || !strings.Contains(texts[0], "Wie geht's?") {
		t.Fatalf("unexpected conversation message: %q", texts[0])
	}
	if texts[1] != "Corrections\n\nNo corrections needed." {
		t.Fatalf("unexpected correction message: %q", texts[1])
	}
}

func TestDraftFields_AreSentWithNextMessageThenCleared(t *testing.T) {
	svc := &fakeTutor{result: fullResult()}
	b, _ := newTestBot(svc, "")
	ctx := context.Background()

	b.handleIncomingMessage(ctx, commandMessage(7, "/ask what does geht mean?"))
	b.handleIncomingMessage(ctx, commandMessage(7, "/words Hund"))
	b.handleIncomingMessage(ctx, commandMessage(7, "/words Katze"))
	b.handleIncomingMessage(ctx, textMessage(7, "Mir geht's gut"))
	b.handleIncomingMessage(ctx, textMessage(7, "Und dir?"))

	if len(svc.forms) != 2 {
		t.Fatalf("expected two submissions, got %d", len(svc.forms))
	}
	first := svc.forms[0]
	if first.Clarification != "what does geht mean?" || first.Vocabulary != "Hund, Katze" {
		t.Fatalf("draft not attached: %+v", first)
	}
	second := svc.forms[1]
	if second.Clarification != "" || second.Vocabulary != "" {
		t.Fatalf("draft not cleared: %+v", second)
	}
}

func TestSubmitCommand_SendsDraftWithoutConversation(t *testing.T) {
	svc := &fakeTutor{result: tutor.Result{
		Conversation:  tutor.Outcome{Branch: tutor.BranchConversation, Skipped: true},
		Correction:    tutor.Outcome{Branch: tutor.BranchCorrection, Skipped: true},
		Clarification: tutor.Outcome{Branch: tutor.BranchClarification, Skipped: true},
		Vocabulary:    tutor.Outcome{Branch: tutor.BranchVocabulary, Text: "Hund - cane"},
		Entries:       []vocab.Entry{{Term: "Hund"}},
		Added:         1,
	}}
	b, fs := newTestBot(svc, "")
	ctx := context.Background()

	b.handleIncomingMessage(ctx, commandMessage(7, "/words Hund"))
	b.handleIncomingMessage(ctx, commandMessage(7, "/submit"))

	if len(svc.forms) != 1 || svc.forms[0].Conversation != "" || svc.forms[0].Vocabulary != "Hund" {
		t.Fatalf("unexpected submissions: %+v", svc.forms)
	}
	last := fs.texts()[len(fs.sent)-1]
	if !strings.Contains(last, "1 new of 1 saved") {
		t.Fatalf("vocabulary summary missing: %q", last)
	}
}

func TestSubmitCommand_EmptyDraftDoesNotCallTutor(t *testing.T) {
	svc := &fakeTutor{}
	b, fs := newTestBot(svc, "")
	b.handleIncomingMessage(context.Background(), commandMessage(7, "/submit"))
	if len(svc.forms) != 0 {
		t.Fatalf("tutor should not be called: %+v", svc.forms)
	}
	if len(fs.sent) != 1 || !strings.HasPrefix(fs.sent[0].Text, "Nothing to send") {
		t.Fatalf("unexpected reply: %q", fs.texts())
	}
}

func TestFailedBranch_IsReportedWithError(t *testing.T) {
	res := fullResult()
	res.Correction = tutor.Outcome{Branch: tutor.BranchCorrection, Err: errors.New("service unavailable")}
	svc := &fakeTutor{result: res}
	b, fs := newTestBot(svc, "")

	b.handleIncomingMessage(context.Background(), textMessage(7, "Hallo"))

	texts := fs.texts()
	if len(texts) != 2 || !strings.Contains(texts[1], "Error: service unavailable") {
		t.Fatalf("error not reported: %q", texts)
	}
	if !strings.Contains(texts[0], "Wie geht's?") {
		t.Fatalf("conversation should still be shown: %q", texts[0])
	}
}

func TestSecondChat_IsRejected(t *testing.T) {
	svc := &fakeTutor{result: fullResult()}
	b, fs := newTestBot(svc, "")
	ctx := context.Background()

	b.handleIncomingMessage(ctx, textMessage(7, "Hallo"))
	b.handleIncomingMessage(ctx, textMessage(8, "Hallo"))

	if len(svc.forms) != 1 {
		t.Fatalf("second chat must not reach the tutor: %d submissions", len(svc.forms))
	}
	last := fs.sent[len(fs.sent)-1]
	if last.ChatID != 8 || !strings.Contains(last.Text, "busy") {
		t.Fatalf("unexpected rejection: %+v", last)
	}
}

func TestConfiguredChat_RejectsOthers(t *testing.T) {
	svc := &fakeTutor{result: fullResult()}
	b, _ := newTestBot(svc, "")
	b.chatID = 42
	b.handleIncomingMessage(context.Background(), textMessage(7, "Hallo"))
	if len(svc.forms) != 0 {
		t.Fatalf("unexpected submission from unbound chat")
	}
}

func TestSettingsCommands(t *testing.T) {
	svc := &fakeTutor{}
	b, fs := newTestBot(svc, "")
	ctx := context.Background()

	b.handleIncomingMessage(ctx, commandMessage(7, "/learn french"))
	b.handleIncomingMessage(ctx, commandMessage(7, "/clarify English"))
	b.handleIncomingMessage(ctx, commandMessage(7, "/tone formal"))
	b.handleIncomingMessage(ctx, commandMessage(7, "/topics food, travel"))

	want := lang.Config{Learn: lang.French, Clarification: lang.English, Tone: lang.Formal, Topics: "food, travel"}
	if b.settings != want {
		t.Fatalf("settings = %+v, want %+v", b.settings, want)
	}
	last := fs.sent[len(fs.sent)-1].Text
	if !strings.Contains(last, "Topics: food, travel") || strings.Contains(last, "has started") {
		t.Fatalf("unexpected settings text: %q", last)
	}

	b.handleIncomingMessage(ctx, commandMessage(7, "/learn Klingon"))
	if b.settings.Learn != lang.French {
		t.Fatalf("invalid language changed settings")
	}
	if !strings.Contains(fs.sent[len(fs.sent)-1].Text, "Unknown language") {
		t.Fatalf("invalid language not reported")
	}
}

func TestSettingsAfterStart_WarnsPersonaIsFixed(t *testing.T) {
	svc := &fakeTutor{started: true}
	b, fs := newTestBot(svc, "")
	b.handleIncomingMessage(context.Background(), commandMessage(7, "/tone formal"))
	if !strings.Contains(fs.sent[0].Text, "keeps the settings it began with") {
		t.Fatalf("missing persona note: %q", fs.sent[0].Text)
	}
}

func TestVocabCommand(t *testing.T) {
	svc := &fakeTutor{entries: []vocab.Entry{{Term: "Hund", Translation: "cane", Sentence: "Der Hund bellt.", TranslatedSentence: "Il cane abbaia."}}}
	b, fs := newTestBot(svc, "")
	b.handleIncomingMessage(context.Background(), commandMessage(7, "/vocab"))
	if len(fs.sent) != 1 || !strings.Contains(fs.sent[0].Text, "Hund - cane") || !strings.Contains(fs.sent[0].Text, "German/Italian") {
		t.Fatalf("unexpected vocabulary listing: %q", fs.texts())
	}

	svc.entries = nil
	svc.listErr = errors.New("disk gone")
	b.handleIncomingMessage(context.Background(), commandMessage(7, "/vocab"))
	if !strings.Contains(fs.sent[1].Text, "disk gone") {
		t.Fatalf("list error not reported: %q", fs.sent[1].Text)
	}
}

func TestHTMLParseMode_EscapesModelText(t *testing.T) {
	res := fullResult()
	res.Conversation.Text = "a <b> & c"
	svc := &fakeTutor{result: res}
	b, fs := newTestBot(svc, "HTML")

	b.handleIncomingMessage(context.Background(), textMessage(7, "Hallo"))

	got := fs.sent[0]
	if got.ParseMode != "HTML" {
		t.Fatalf("parse mode = %q", got.ParseMode)
	}
	if got.Text != "<b>Conversation</b>\n\na &lt;b&gt; &amp; c" {
		t.Fatalf("unexpected text: %q", got.Text)
	}
}

func TestSendDigest(t *testing.T) {
	entries := []vocab.Entry{
		{Term: "Hund", Translation: "cane"},
		{Term: "Katze", Translation: "gatto"},
		{Term: "Maus", Translation: "topo"},
	}
	svc := &fakeTutor{entries: entries}
	b, fs := newTestBot(svc, "")

	if err := b.SendDigest(context.Background(), 2); err != nil {
		t.Fatalf("digest without chat: %v", err)
	}
	if len(fs.sent) != 0 {
		t.Fatalf("digest sent before a chat was bound")
	}

	b.chatID = 7
	if err := b.SendDigest(context.Background(), 2); err != nil {
		t.Fatalf("digest: %v", err)
	}
	if len(fs.sent) != 1 {
		t.Fatalf("expected one digest message, got %d", len(fs.sent))
	}
	if n := strings.Count(fs.sent[0].Text, " - "); n != 2 {
		t.Fatalf("digest should hold 2 entries, got %d: %q", n, fs.sent[0].Text)
	}

	svc.listErr = errors.New("boom")
	if err := b.SendDigest(context.Background(), 2); err == nil {
		t.Fatalf("expected list error")
	}
}

func TestSplitMessage(t *testing.T) {
	if got := splitMessage("short", 10); len(got) != 1 || got[0] != "short" {
		t.Fatalf("unexpected split: %q", got)
	}
	got := splitMessage("aaaa\nbbbb\ncccc", 10)
	if len(got) != 2 || got[0] != "aaaa\nbbbb" || got[1] != "cccc" {
		t.Fatalf("unexpected split: %q", got)
	}
	got = splitMessage(strings.Repeat("x", 25), 10)
	if len(got) != 3 || got[2] != "xxxxx" {
		t.Fatalf("unexpected hard split: %q", got)
	}
}
