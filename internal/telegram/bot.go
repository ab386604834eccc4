package telegram

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"ai-teacher/internal/lang"
	"ai-teacher/internal/tutor"
	"ai-teacher/internal/vocab"
)

type tutorService interface {
	Submit(ctx context.Context, form tutor.Form) tutor.Result
	Vocabulary(ctx context.Context, pair lang.Pair) ([]vocab.Entry, error)
	Started() bool
}

// sender is the part of the Bot API the bot writes through.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type botAPISender struct{ api *tgbotapi.BotAPI }

func (s botAPISender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return s.api.Send(c)
}

// draft holds the optional form fields sent ahead of the next conversation line.
type draft struct {
	clarification string
	vocabulary    string
}

// Bot is the Telegram front end of a single tutoring session: it serves one
// chat per run, either configured or claimed by the first chat that writes.
type Bot struct {
	api       *tgbotapi.BotAPI
	s         sender
	tutor     tutorService
	parseMode string
	log       zerolog.Logger
	rng       *rand.Rand

	mu       sync.Mutex
	chatID   int64
	settings lang.Config
	draft    draft
}

func New(botToken string, svc tutorService, settings lang.Config, chatID int64, parseMode string, logger zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("bot", api.Self.UserName).Msg("authorized on telegram")
	return &Bot{
		api:       api,
		s:         botAPISender{api: api},
		tutor:     svc,
		parseMode: parseMode,
		log:       logger,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		chatID:    chatID,
		settings:  settings,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleIncomingMessage(ctx, update.Message)
			}
		}
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat == nil || !b.claim(msg.Chat.ID) {
		if msg.Chat != nil {
			b.log.Warn().Int64("chat", msg.Chat.ID).Msg("message from a second chat ignored")
			b.sendMessage(msg.Chat.ID, "This tutor is already busy with another conversation.")
		}
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	if strings.TrimSpace(msg.Text) == "" {
		return
	}
	b.submit(ctx, msg.Chat.ID, msg.Text)
}

// claim binds the bot to chatID on first contact and reports whether chatID
// is the bound chat.
func (b *Bot) claim(chatID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.chatID == 0 {
		b.chatID = chatID
		b.log.Info().Int64("chat", chatID).Msg("chat bound to session")
	}
	return b.chatID == chatID
}

func (b *Bot) submit(ctx context.Context, chatID int64, conversation string) {
	b.mu.Lock()
	form := tutor.Form{
		Config:        b.settings,
		Conversation:  conversation,
		Clarification: b.draft.clarification,
		Vocabulary:    b.draft.vocabulary,
	}
	b.draft = draft{}
	b.mu.Unlock()

	if form.Conversation == "" && form.Clarification == "" && form.Vocabulary == "" {
		b.sendMessage(chatID, "Nothing to send yet. Write to your teacher, or use /ask and /words first.")
		return
	}

	b.log.Info().Int64("chat", chatID).
		Bool("conversation", form.Conversation != "").
		Bool("clarification", form.Clarification != "").
		Bool("vocabulary", form.Vocabulary != "").
		Msg("submission received")

	res := b.tutor.Submit(ctx, form)
	for _, o := range res.Outcomes() {
		if o.Skipped {
			continue
		}
		b.sendSection(chatID, o.Branch.Title(), res.Display(o))
	}
}

// SendDigest sends a random selection of saved vocabulary to the bound chat.
func (b *Bot) SendDigest(ctx context.Context, size int) error {
	b.mu.Lock()
	chatID, pair := b.chatID, b.settings.Pair()
	b.mu.Unlock()
	if chatID == 0 {
		return nil
	}

	entries, err := b.tutor.Vocabulary(ctx, pair)
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}
	picked := vocab.Sample(entries, size, b.rng)
	b.sendSection(chatID, "Vocabulary review", vocab.Format(picked))
	return nil
}

func (b *Bot) sendSection(chatID int64, title, body string) {
	for _, part := range splitMessage(body, maxMessageLen) {
		b.sendFormatted(chatID, title, part)
	}
}

func (b *Bot) sendFormatted(chatID int64, title, body string) {
	msg := tgbotapi.NewMessage(chatID, formatSection(b.parseMode, title, body))
	msg.ParseMode = b.parseModeValue()
	if _, err := b.s.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat", chatID).Msg("failed to send message")
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat", chatID).Msg("failed to send message")
	}
}

func (b *Bot) parseModeValue() string {
	if b.parseMode == tgbotapi.ModeHTML {
		return tgbotapi.ModeHTML
	}
	return ""
}
