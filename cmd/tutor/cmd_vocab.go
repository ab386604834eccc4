package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ai-teacher/internal/app"
	"ai-teacher/internal/vocab"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "List the saved vocabulary for the current language pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings()
		if err != nil {
			return err
		}
		store, err := app.OpenStore(cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(cmd.Context(), s.Pair())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No saved vocabulary for %s.\n", s.Pair())
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), vocab.Format(entries))
		return nil
	},
}
