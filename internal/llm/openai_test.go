package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	path   string
	header http.Header
	body   map[string]any
}

func newFakeOpenAI(t *testing.T, reqs *[]recordedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		*reqs = append(*reqs, recordedRequest{path: r.URL.Path, header: r.Header.Clone(), body: body})

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/chat/completions":
			_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"chat-model",
				"choices":[{"index":0,"message":{"role":"assistant","content":"Hallo!"},"finish_reason":"stop"}],
				"usage":{"prompt_tokens":3,"completion_tokens":2,"total_tokens":5}}`)
		case "/v1/completions":
			_, _ = io.WriteString(w, `{"id":"c2","object":"text_completion","created":1,"model":"instruct-model",
				"choices":[{"index":0,"text":"\n\nNone","finish_reason":"stop"}],
				"usage":{"prompt_tokens":7,"completion_tokens":1,"total_tokens":8}}`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"error":{"message":"boom","type":"server_error"}}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIClient_Generate(t *testing.T) {
	var reqs []recordedRequest
	srv := newFakeOpenAI(t, &reqs)

	c := NewOpenAI("key", srv.URL+"/v1", "chat-model", "https://example.org", "ai-teacher").WithTemperature(0.7)
	resp, err := c.Generate(context.Background(), []Message{
		{Role: RoleSystem, Content: "You are a teacher"},
		{Role: RoleUser, Content: "Ich bin gut"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hallo!", resp.Content)
	assert.Equal(t, 5, resp.TotalTokens)

	require.Len(t, reqs, 1)
	assert.Equal(t, "/v1/chat/completions", reqs[0].path)
	assert.Equal(t, "ai-teacher", reqs[0].header.Get("X-Title"))
	assert.Equal(t, "https://example.org", reqs[0].header.Get("HTTP-Referer"))
	assert.Equal(t, "chat-model", reqs[0].body["model"])
	assert.InDelta(t, 0.7, reqs[0].body["temperature"], 0.0001)
	msgs := reqs[0].body["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
}

func TestOpenAIClient_CompleteWithCompletionModel(t *testing.T) {
	var reqs []recordedRequest
	srv := newFakeOpenAI(t, &reqs)

	c := NewOpenAI("key", srv.URL+"/v1", "chat-model", "", "").WithCompletionModel("instruct-model", 0)
	resp, err := c.Complete(context.Background(), "sentence: Ich bin gut", CompletionOptions{Temperature: 0})
	require.NoError(t, err)
	assert.Equal(t, "\n\nNone", resp.Content)
	assert.Equal(t, "instruct-model", resp.Model)

	require.Len(t, reqs, 1)
	assert.Equal(t, "/v1/completions", reqs[0].path)
	assert.Equal(t, "sentence: Ich bin gut", reqs[0].body["prompt"])
	assert.EqualValues(t, defaultCompletionMaxTokens, reqs[0].body["max_tokens"])
	// zero temperature must still reach the wire
	temp, ok := reqs[0].body["temperature"]
	require.True(t, ok)
	assert.InDelta(t, 0, temp, 0.0001)
	assert.Empty(t, reqs[0].header.Get("X-Title"))
}

func TestOpenAIClient_CompleteFallsBackToChat(t *testing.T) {
	var reqs []recordedRequest
	srv := newFakeOpenAI(t, &reqs)

	c := NewOpenAI("key", srv.URL+"/v1", "chat-model", "", "")
	resp, err := c.Complete(context.Background(), "translate", CompletionOptions{Temperature: 0.3})
	require.NoError(t, err)
	assert.Equal(t, "Hallo!", resp.Content)

	require.Len(t, reqs, 1)
	assert.Equal(t, "/v1/chat/completions", reqs[0].path)
	msgs := reqs[0].body["messages"].([]any)
	require.Len(t, msgs, 1)
	assert.Equal(t, "user", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "translate", msgs[0].(map[string]any)["content"])
}

func TestOpenAIClient_ErrorStatus(t *testing.T) {
	var reqs []recordedRequest
	srv := newFakeOpenAI(t, &reqs)

	c := NewOpenAI("key", srv.URL+"/broken", "chat-model", "", "")
	_, err := c.Generate(context.Background(), []Message{{Role: RoleUser, Content: "x"}})
	require.Error(t, err)
}

func TestServiceErrorUnwrap(t *testing.T) {
	cause := errors.New("rate limited")
	err := error(&ServiceError{Op: "chat", Err: cause})
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "generation service chat: rate limited", err.Error())
}
