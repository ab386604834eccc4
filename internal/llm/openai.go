package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

const defaultCompletionMaxTokens = 256

type OpenAIClient struct {
	client          *openai.Client
	model           string
	completionModel string
	maxTokens       int
	temperature     float32
}

type headerTransport struct {
	rt      http.RoundTripper
	headers http.Header
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone request to avoid mutating the original
	cl := req.Clone(req.Context())
	for k, vs := range t.headers {
		for _, v := range vs {
			cl.Header.Add(k, v)
		}
	}
	return t.rt.RoundTrip(cl)
}

func NewOpenAI(apiKey, baseURL, model, referrer, title string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	// Inject optional headers (useful for OpenRouter)
	if referrer != "" || title != "" {
		h := http.Header{}
		if referrer != "" {
			h.Set("HTTP-Referer", referrer)
		}
		if title != "" {
			h.Set("X-Title", title)
		}
		base := http.DefaultTransport
		config.HTTPClient = &http.Client{Transport: headerTransport{rt: base, headers: h}}
	}
	return &OpenAIClient{
		client:    openai.NewClientWithConfig(config),
		model:     model,
		maxTokens: defaultCompletionMaxTokens,
	}
}

// WithCompletionModel routes Complete through the legacy completions endpoint
// with the given model. Without it Complete uses chat completions.
func (c *OpenAIClient) WithCompletionModel(model string, maxTokens int) *OpenAIClient {
	c.completionModel = model
	if maxTokens > 0 {
		c.maxTokens = maxTokens
	}
	return c
}

// WithTemperature sets the sampling temperature used by Generate.
func (c *OpenAIClient) WithTemperature(t float32) *OpenAIClient {
	c.temperature = t
	return c
}

// temperature zero is dropped by the request's omitempty tag and the API then
// samples at 1, so zero is sent as the smallest positive float.
func wireTemperature(t float32) float32 {
	if t <= 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

func (c *OpenAIClient) Generate(ctx context.Context, messages []Message) (Response, error) {
	return c.chat(ctx, messages, c.temperature)
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string, opts CompletionOptions) (Response, error) {
	if c.completionModel == "" {
		return c.chat(ctx, []Message{{Role: RoleUser, Content: prompt}}, opts.Temperature)
	}

	resp, err := c.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       c.completionModel,
		Prompt:      prompt,
		MaxTokens:   c.maxTokens,
		Temperature: wireTemperature(opts.Temperature),
	})
	if err != nil {
		return Response{}, fmt.Errorf("failed to create completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, errors.New("completion returned no choices")
	}
	return Response{
		Content:          resp.Choices[0].Text,
		Model:            c.completionModel,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
}

func (c *OpenAIClient) chat(ctx context.Context, messages []Message, temperature float32) (Response, error) {
	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    oaMsgs,
		Temperature: wireTemperature(temperature),
	})
	if err != nil {
		return Response{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, errors.New("chat completion returned no choices")
	}

	return Response{
		Content:          resp.Choices[0].Message.Content,
		Model:            c.model,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
}
