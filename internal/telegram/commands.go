package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ai-teacher/internal/lang"
	"ai-teacher/internal/vocab"
)

const helpText = `Write to your teacher in the language you are learning. Each message gets a reply, a correction, and answers to anything you queued:

/ask <question> - ask about the teacher's last message
/words <w1, w2> - translate words and save them to your vocabulary
/submit - send queued questions or words without a new message
/vocab - show your saved vocabulary
/settings - show the current settings
/learn <language>, /clarify <language>, /tone <Formal|Informal>, /topics <text>`

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		b.sendMessage(chatID, helpText+"\n\n"+b.settingsText())
	case "settings":
		b.sendMessage(chatID, b.settingsText())
	case "learn", "clarify":
		l, err := lang.Parse(args)
		if err != nil {
			b.sendMessage(chatID, fmt.Sprintf("Unknown language %q. Choose one of: %s", args, languageList()))
			return
		}
		b.updateSettings(func(cfg *lang.Config) {
			if msg.Command() == "learn" {
				cfg.Learn = l
			} else {
				cfg.Clarification = l
			}
		})
		b.sendMessage(chatID, b.settingsText())
	case "tone":
		t, err := lang.ParseTone(args)
		if err != nil {
			b.sendMessage(chatID, "Tone must be Formal or Informal.")
			return
		}
		b.updateSettings(func(cfg *lang.Config) { cfg.Tone = t })
		b.sendMessage(chatID, b.settingsText())
	case "topics":
		b.updateSettings(func(cfg *lang.Config) { cfg.Topics = args })
		b.sendMessage(chatID, b.settingsText())
	case "ask":
		if args == "" {
			b.sendMessage(chatID, "Usage: /ask <question>")
			return
		}
		b.mu.Lock()
		b.draft.clarification = joinLines(b.draft.clarification, args)
		b.mu.Unlock()
		b.sendMessage(chatID, "Question queued. It is answered with your next message, or send /submit.")
	case "words":
		if args == "" {
			b.sendMessage(chatID, "Usage: /words <w1, w2>")
			return
		}
		b.mu.Lock()
		b.draft.vocabulary = joinList(b.draft.vocabulary, args)
		b.mu.Unlock()
		b.sendMessage(chatID, "Words queued. They are translated with your next message, or send /submit.")
	case "submit":
		b.submit(ctx, chatID, "")
	case "vocab":
		b.sendVocabulary(ctx, chatID)
	default:
		b.sendMessage(chatID, "Unknown command. Send /help for the list.")
	}
}

func (b *Bot) updateSettings(apply func(cfg *lang.Config)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	apply(&b.settings)
}

func (b *Bot) settingsText() string {
	b.mu.Lock()
	cfg := b.settings
	b.mu.Unlock()
	return formatSettings(cfg, b.tutor.Started())
}

func (b *Bot) sendVocabulary(ctx context.Context, chatID int64) {
	b.mu.Lock()
	pair := b.settings.Pair()
	b.mu.Unlock()

	entries, err := b.tutor.Vocabulary(ctx, pair)
	if err != nil {
		b.log.Error().Err(err).Str("pair", pair.String()).Msg("failed to list vocabulary")
		b.sendMessage(chatID, "Error: "+err.Error())
		return
	}
	if len(entries) == 0 {
		b.sendMessage(chatID, "No saved vocabulary for "+pair.String()+" yet.")
		return
	}
	b.sendSection(chatID, fmt.Sprintf("Vocabulary %s (%d)", pair, len(entries)), vocab.Format(entries))
}

func languageList() string {
	names := make([]string, len(lang.Supported))
	for i, l := range lang.Supported {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}

func joinLines(a, b string) string {
	if a == "" {
		return b
	}
	return a + "\n" + b
}

func joinList(a, b string) string {
	if a == "" {
		return b
	}
	return a + ", " + b
}
