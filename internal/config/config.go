package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v6"

	"ai-teacher/internal/lang"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type StoreBackend string

const (
	StoreCSV    StoreBackend = "csv"
	StoreSQLite StoreBackend = "sqlite"
)

type Config struct {
	// Telegram front end; the token is only required by cmd/bot.
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID"`
	MessageParseMode string `env:"MESSAGE_PARSE_MODE" envDefault:"HTML"`

	// LLM settings
	LLMProvider           LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey          string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL         string      `env:"OPENAI_BASE_URL"`
	OpenAIModel           string      `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	OpenAICompletionModel string      `env:"OPENAI_COMPLETION_MODEL" envDefault:"gpt-3.5-turbo-instruct"`
	CompletionMaxTokens   int         `env:"COMPLETION_MAX_TOKENS" envDefault:"256"`
	YandexOAuthToken      string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID        string      `env:"YANDEX_FOLDER_ID"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Sampling per request kind
	ChatTemperature          float32 `env:"CHAT_TEMPERATURE" envDefault:"0.7"`
	CorrectionTemperature    float32 `env:"CORRECTION_TEMPERATURE" envDefault:"0.7"`
	ClarificationTemperature float32 `env:"CLARIFICATION_TEMPERATURE" envDefault:"0.7"`
	VocabularyTemperature    float32 `env:"VOCABULARY_TEMPERATURE" envDefault:"0"`

	// Initial tutor settings
	LearnLanguage         string `env:"LEARN_LANGUAGE" envDefault:"Italian"`
	ClarificationLanguage string `env:"CLARIFICATION_LANGUAGE" envDefault:"Italian"`
	Tone                  string `env:"TONE" envDefault:"Formal"`
	Topics                string `env:"TOPICS"`

	// Prompts
	PromptsFilePath string `env:"PROMPTS_FILE_PATH"`

	// Vocabulary storage
	VocabStore           StoreBackend `env:"VOCAB_STORE" envDefault:"csv"`
	VocabFilePath        string       `env:"VOCAB_FILE_PATH" envDefault:"vocabulary.csv"`
	VocabPartitionByPair bool         `env:"VOCAB_PARTITION_BY_PAIR" envDefault:"false"`
	VocabDBPath          string       `env:"VOCAB_DB_PATH" envDefault:"data/vocabulary.db"`

	// Vocabulary digest; empty schedule disables it
	DigestSchedule string `env:"DIGEST_SCHEDULE"`
	DigestSize     int    `env:"DIGEST_SIZE" envDefault:"5"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

func New() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

// Load parses the environment and validates enumerated settings.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	switch cfg.LLMProvider {
	case ProviderOpenAI, ProviderYandex:
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
	switch cfg.VocabStore {
	case StoreCSV, StoreSQLite:
	default:
		return nil, fmt.Errorf("unknown vocabulary store: %s", cfg.VocabStore)
	}
	return cfg, nil
}

// Tutor returns the initial tutor settings.
func (c *Config) Tutor() (lang.Config, error) {
	return lang.ParseConfig(c.LearnLanguage, c.ClarificationLanguage, c.Tone, c.Topics)
}
