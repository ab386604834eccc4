// Package app wires configuration into a ready tutor.
package app

import (
	"fmt"

	"github.com/rs/zerolog"

	"ai-teacher/internal/config"
	"ai-teacher/internal/lang"
	"ai-teacher/internal/llm"
	"ai-teacher/internal/logging"
	"ai-teacher/internal/prompt"
	"ai-teacher/internal/session"
	"ai-teacher/internal/storage"
	"ai-teacher/internal/tutor"
)

type App struct {
	Tutor    *tutor.Tutor
	Store    storage.Store
	Settings lang.Config
}

// New builds the tutor for one run from cfg.
func New(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	settings, err := cfg.Tutor()
	if err != nil {
		return nil, fmt.Errorf("tutor settings: %w", err)
	}

	model, err := llm.NewFactory(cfg).CreateModel(string(cfg.LLMProvider))
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}
	return Build(cfg, settings, model, logger)
}

// Build wires the tutor around an existing model.
func Build(cfg *config.Config, settings lang.Config, model llm.Model, logger zerolog.Logger) (*App, error) {
	prompts, err := prompt.Load(cfg.PromptsFilePath)
	if err != nil {
		logger.Warn().Err(err).Msg("using built-in prompts")
		prompts = prompt.New()
	}

	store, err := OpenStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	sess := session.New(model, prompts, logging.Component(logger, "session"))
	t := tutor.New(sess, model, prompts, store, tutor.Temperatures{
		Correction:    cfg.CorrectionTemperature,
		Clarification: cfg.ClarificationTemperature,
		Vocabulary:    cfg.VocabularyTemperature,
	}, logging.Component(logger, "tutor"))

	return &App{Tutor: t, Store: store, Settings: settings}, nil
}

// OpenStore opens the configured vocabulary store.
func OpenStore(cfg *config.Config, logger zerolog.Logger) (storage.Store, error) {
	log := logging.Component(logger, "storage")
	switch cfg.VocabStore {
	case config.StoreSQLite:
		return storage.OpenSQLite(cfg.VocabDBPath, log)
	default:
		return storage.NewCSVStore(cfg.VocabFilePath, cfg.VocabPartitionByPair, log)
	}
}

func (a *App) Close() error {
	return a.Store.Close()
}
