// Package history keeps the ordered message log of one conversation.
package history

import (
	"sync"

	"ai-teacher/internal/llm"
)

// History is append-only: entries are never edited, reordered or removed.
type History struct {
	mu   sync.RWMutex
	msgs []llm.Message
}

func New() *History {
	return &History{}
}

// Append adds msgs in order as one step, so a reader never sees half a turn.
func (h *History) Append(msgs ...llm.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs = append(h.msgs, msgs...)
}

// Messages returns a copy of all entries.
func (h *History) Messages() []llm.Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]llm.Message, len(h.msgs))
	copy(out, h.msgs)
	return out
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.msgs)
}

// LastAssistant returns the most recent assistant message.
func (h *History) LastAssistant() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for i := len(h.msgs) - 1; i >= 0; i-- {
		if h.msgs[i].Role == llm.RoleAssistant {
			return h.msgs[i].Content, true
		}
	}
	return "", false
}
