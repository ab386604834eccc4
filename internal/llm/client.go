package llm

import (
	"context"
	"fmt"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client is the chat shape of the generation service: an ordered message list
// in, one assistant message out.
type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}

type CompletionOptions struct {
	Temperature float32
}

// Completer is the single-shot shape: one prompt in, one text out.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (Response, error)
}

// Model serves both request shapes.
type Model interface {
	Client
	Completer
}

// ServiceError wraps any failure of a generation service round trip. Sub-kinds
// (rate limit, network, invalid request) are not distinguished.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("generation service %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
