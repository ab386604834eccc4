// Package session owns the single conversation between the user and the
// teacher persona.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ai-teacher/internal/history"
	"ai-teacher/internal/lang"
	"ai-teacher/internal/llm"
	"ai-teacher/internal/prompt"
)

type State int

const (
	Uninitialized State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "uninitialized"
}

// Session is created once per run. The tutor configuration is bound on the
// first successful turn and the persona never changes afterwards.
type Session struct {
	id      string
	chat    llm.Client
	prompts *prompt.Builder
	log     zerolog.Logger

	mu      sync.Mutex
	state   State
	cfg     lang.Config
	history *history.History
}

func New(chat llm.Client, prompts *prompt.Builder, logger zerolog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:      id,
		chat:    chat,
		prompts: prompts,
		log:     logger.With().Str("session", id).Logger(),
		history: history.New(),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Config returns the bound configuration; ok is false before the first turn.
func (s *Session) Config() (cfg lang.Config, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg, s.state == Active
}

// History returns a copy of the conversation so far.
func (s *Session) History() []llm.Message {
	return s.history.Messages()
}

// LastReply returns the most recent teacher reply.
func (s *Session) LastReply() (string, bool) {
	return s.history.LastAssistant()
}

// Submit sends one user turn with the full history and returns the reply.
// cfg is only used on the first turn. History changes only when the round trip
// succeeds: the user and assistant messages are appended together.
func (s *Session) Submit(ctx context.Context, cfg lang.Config, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &prompt.MissingParameterError{Param: "conversation text"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []llm.Message
	if s.state == Uninitialized {
		system, err := s.prompts.System(cfg)
		if err != nil {
			return "", err
		}
		pending = append(pending, llm.Message{Role: llm.RoleSystem, Content: system})
	}
	pending = append(pending, llm.Message{Role: llm.RoleUser, Content: text})

	request := append(s.history.Messages(), pending...)
	resp, err := s.chat.Generate(ctx, request)
	if err != nil {
		s.log.Error().Err(err).Int("history", len(request)).Msg("chat turn failed")
		return "", &llm.ServiceError{Op: "chat", Err: err}
	}

	pending = append(pending, llm.Message{Role: llm.RoleAssistant, Content: resp.Content})
	s.history.Append(pending...)

	if s.state == Uninitialized {
		s.cfg = cfg
		s.state = Active
		s.log.Info().
			Str("learn", string(cfg.Learn)).
			Str("clarification", string(cfg.Clarification)).
			Str("tone", string(cfg.Tone)).
			Msg("session started")
	}

	s.log.Debug().
		Str("model", resp.Model).
		Int("prompt_tokens", resp.PromptTokens).
		Int("completion_tokens", resp.CompletionTokens).
		Int("history", s.history.Len()).
		Msg("chat turn completed")
	return resp.Content, nil
}
