// Command tutor runs a tutoring session from the terminal.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ai-teacher/internal/app"
	"ai-teacher/internal/config"
	"ai-teacher/internal/lang"
	"ai-teacher/internal/logging"
)

var (
	learnFlag   string
	clarifyFlag string
	toneFlag    string
	topicsFlag  string

	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Practice a language with an AI teacher",
	Long: `Practice a language with an AI teacher.

Settings default to the LEARN_LANGUAGE, CLARIFICATION_LANGUAGE, TONE and
TOPICS environment variables and can be overridden per run with flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: failed to read .env: %v", err)
		}
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
		cfg = c
		logger = logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&learnFlag, "learn", "", "Language to learn (default: LEARN_LANGUAGE)")
	rootCmd.PersistentFlags().StringVar(&clarifyFlag, "clarify", "", "Language for clarifications and translations (default: CLARIFICATION_LANGUAGE)")
	rootCmd.PersistentFlags().StringVar(&toneFlag, "tone", "", "Formal or Informal (default: TONE)")
	rootCmd.PersistentFlags().StringVar(&topicsFlag, "topics", "", "Conversation topics (default: TOPICS)")

	rootCmd.AddCommand(askCmd, chatCmd, vocabCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// settings applies the command line overrides to the configured defaults.
func settings() (lang.Config, error) {
	learn, clarify, tone, topics := cfg.LearnLanguage, cfg.ClarificationLanguage, cfg.Tone, cfg.Topics
	if learnFlag != "" {
		learn = learnFlag
	}
	if clarifyFlag != "" {
		clarify = clarifyFlag
	}
	if toneFlag != "" {
		tone = toneFlag
	}
	if topicsFlag != "" {
		topics = topicsFlag
	}
	return lang.ParseConfig(learn, clarify, tone, topics)
}

func buildApp() (*app.App, error) {
	s, err := settings()
	if err != nil {
		return nil, err
	}
	cfg.LearnLanguage, cfg.ClarificationLanguage = string(s.Learn), string(s.Clarification)
	cfg.Tone, cfg.Topics = string(s.Tone), s.Topics
	return app.New(cfg, logger)
}
