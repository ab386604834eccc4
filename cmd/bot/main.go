package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ai-teacher/internal/app"
	"ai-teacher/internal/config"
	"ai-teacher/internal/logging"
	"ai-teacher/internal/scheduler"
	"ai-teacher/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	if cfg.TelegramBotToken == "" {
		logger.Fatal().Msg("TELEGRAM_BOT_TOKEN is required")
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build tutor")
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close vocabulary store")
		}
	}()

	bot, err := telegram.New(
		cfg.TelegramBotToken,
		a.Tutor,
		a.Settings,
		cfg.TelegramChatID,
		cfg.MessageParseMode,
		logging.Component(logger, "telegram"),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create bot")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DigestSchedule != "" {
		sched := scheduler.New(logging.Component(logger, "scheduler"))
		err := sched.Add("vocabulary digest", cfg.DigestSchedule, func(ctx context.Context) error {
			return bot.SendDigest(ctx, cfg.DigestSize)
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid DIGEST_SCHEDULE")
		}
		sched.Start()
		defer sched.Stop()
	}

	logger.Info().
		Str("provider", string(cfg.LLMProvider)).
		Str("pair", a.Settings.Pair().String()).
		Msg("tutor bot started")
	bot.Start(ctx)
}
