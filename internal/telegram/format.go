package telegram

import (
	"html"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ai-teacher/internal/lang"
)

// Telegram rejects longer messages; leave room for the section title.
const maxMessageLen = 3900

func formatSection(parseMode, title, body string) string {
	if parseMode == tgbotapi.ModeHTML {
		return "<b>" + html.EscapeString(title) + "</b>\n\n" + html.EscapeString(body)
	}
	return title + "\n\n" + body
}

// splitMessage cuts text into parts of at most limit runes, preferring line
// breaks.
func splitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}
	var parts []string
	for utf8.RuneCountInString(text) > limit {
		runes := []rune(text)
		cut := limit
		if i := strings.LastIndex(string(runes[:limit]), "\n"); i > 0 {
			cut = utf8.RuneCountInString(string(runes[:limit])[:i])
		}
		parts = append(parts, strings.TrimRight(string(runes[:cut]), "\n"))
		text = strings.TrimLeft(string(runes[cut:]), "\n")
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}

func formatSettings(cfg lang.Config, started bool) string {
	var b strings.Builder
	b.WriteString("Learning: " + string(cfg.Learn) + "\n")
	b.WriteString("Clarifications in: " + string(cfg.Clarification) + "\n")
	b.WriteString("Tone: " + string(cfg.Tone) + "\n")
	topics := cfg.Topics
	if topics == "" {
		topics = "(any)"
	}
	b.WriteString("Topics: " + topics)
	if started {
		b.WriteString("\n\nThe conversation has started, so the teacher keeps the settings it began with. Changes apply to corrections, clarifications and vocabulary.")
	}
	return b.String()
}
