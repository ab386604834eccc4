package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ai-teacher/internal/lang"
	"ai-teacher/internal/tutor"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk with the teacher interactively",
	Long: `Talk with the teacher line by line.

  ?<question>  queue a question about the teacher's last reply
  +<words>     queue words to translate and save
  /send        send queued questions and words on their own
  /quit        end the session

Any other line is sent to the teacher together with whatever is queued.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		defer a.Close()

		r := &repl{tutor: a.Tutor, settings: a.Settings, out: cmd.OutOrStdout()}
		fmt.Fprintf(r.out, "Learning %s, clarifications in %s. /quit to exit.\n", a.Settings.Learn, a.Settings.Clarification)
		return r.run(cmd.Context(), cmd.InOrStdin())
	},
}

type submitter interface {
	Submit(ctx context.Context, form tutor.Form) tutor.Result
}

type repl struct {
	tutor    submitter
	settings lang.Config
	out      io.Writer

	clarification []string
	vocabulary    []string
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(r.out)
			return sc.Err()
		}
		if !r.handle(ctx, sc.Text()) {
			return nil
		}
	}
}

// handle processes one input line and reports whether to keep reading.
func (r *repl) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
	case line == "/quit":
		return false
	case line == "/send":
		r.submit(ctx, "")
	case strings.HasPrefix(line, "?"):
		if q := strings.TrimSpace(line[1:]); q != "" {
			r.clarification = append(r.clarification, q)
		}
	case strings.HasPrefix(line, "+"):
		if w := strings.TrimSpace(line[1:]); w != "" {
			r.vocabulary = append(r.vocabulary, w)
		}
	default:
		r.submit(ctx, line)
	}
	return true
}

func (r *repl) submit(ctx context.Context, conversation string) {
	form := tutor.Form{
		Config:        r.settings,
		Conversation:  conversation,
		Clarification: strings.Join(r.clarification, "\n"),
		Vocabulary:    strings.Join(r.vocabulary, ", "),
	}
	r.clarification, r.vocabulary = nil, nil
	if form.Conversation == "" && form.Clarification == "" && form.Vocabulary == "" {
		fmt.Fprintln(r.out, "Nothing queued.")
		return
	}
	printResult(r.out, r.tutor.Submit(ctx, form))
}
