package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ai-teacher/internal/tutor"
)

var (
	sayFlag      string
	questionFlag string
	wordsFlag    string
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Send a single submission and print the results",
	Long: `Send one submission to a fresh session and print every branch.

At least one of --say, --question or --words is required. A question without
--say refers to nothing, so the teacher answers it on its own.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if sayFlag == "" && questionFlag == "" && wordsFlag == "" {
			return fmt.Errorf("nothing to send: use --say, --question or --words")
		}
		a, err := buildApp()
		if err != nil {
			return err
		}
		defer a.Close()

		res := a.Tutor.Submit(cmd.Context(), tutor.Form{
			Config:        a.Settings,
			Conversation:  sayFlag,
			Clarification: questionFlag,
			Vocabulary:    wordsFlag,
		})
		printResult(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&sayFlag, "say", "", "Message to the teacher")
	askCmd.Flags().StringVar(&questionFlag, "question", "", "Question about the teacher's reply")
	askCmd.Flags().StringVar(&wordsFlag, "words", "", "Comma separated words to translate and save")
}

func printResult(w io.Writer, res tutor.Result) {
	for _, o := range res.Outcomes() {
		if o.Skipped {
			continue
		}
		fmt.Fprintf(w, "== %s ==\n%s\n\n", o.Branch.Title(), res.Display(o))
	}
}
