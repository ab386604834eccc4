package llm

import (
	"fmt"
	"strings"

	"ai-teacher/internal/config"
)

const (
	ProviderOpenAI = "openai"
	ProviderYandex = "yandex"
)

// Factory creates generation service clients from configuration.
type Factory struct {
	OpenaiAPIKey        string
	OpenaiBaseURL       string
	OpenaiModel         string
	CompletionModel     string
	CompletionMaxTokens int
	ChatTemperature     float32
	OpenRouterReferrer  string
	OpenRouterTitle     string
	YandexOAuthToken    string
	YandexFolderID      string
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		OpenaiAPIKey:        cfg.OpenAIAPIKey,
		OpenaiBaseURL:       cfg.OpenAIBaseURL,
		OpenaiModel:         cfg.OpenAIModel,
		CompletionModel:     cfg.OpenAICompletionModel,
		CompletionMaxTokens: cfg.CompletionMaxTokens,
		ChatTemperature:     cfg.ChatTemperature,
		OpenRouterReferrer:  cfg.OpenRouterReferrer,
		OpenRouterTitle:     cfg.OpenRouterTitle,
		YandexOAuthToken:    cfg.YandexOAuthToken,
		YandexFolderID:      cfg.YandexFolderID,
	}
}

func (f *Factory) CreateModel(provider string) (Model, error) {
	switch strings.ToLower(provider) {
	case ProviderOpenAI:
		return NewOpenAI(f.OpenaiAPIKey, f.OpenaiBaseURL, f.OpenaiModel, f.OpenRouterReferrer, f.OpenRouterTitle).
			WithCompletionModel(f.CompletionModel, f.CompletionMaxTokens).
			WithTemperature(f.ChatTemperature), nil
	case ProviderYandex:
		return NewYandex(f.YandexOAuthToken, f.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
