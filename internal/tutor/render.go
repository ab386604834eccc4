package tutor

import (
	"fmt"

	"ai-teacher/internal/session"
)

// Title is the heading a front end shows above a branch output.
func (b Branch) Title() string {
	switch b {
	case BranchConversation:
		return "Conversation"
	case BranchCorrection:
		return "Corrections"
	case BranchClarification:
		return "Clarifications"
	case BranchVocabulary:
		return "Vocabulary"
	}
	return string(b)
}

// Display returns the text to show for o, or an error line when the branch
// failed. Skipped branches display nothing.
func (r Result) Display(o Outcome) string {
	switch {
	case o.Skipped:
		return ""
	case o.Err != nil:
		msg := "Error: " + o.Err.Error()
		if o.Text != "" {
			msg += "\n\n" + o.Text
		}
		return msg
	case o.Branch == BranchCorrection && !r.NeedsCorrection:
		return "No corrections needed."
	case o.Branch == BranchVocabulary:
		return fmt.Sprintf("%s\n%d new of %d saved to your vocabulary.", o.Text, r.Added, len(r.Entries))
	}
	return o.Text
}

// Started reports whether the conversation persona is already fixed.
func (t *Tutor) Started() bool {
	return t.session.State() == session.Active
}
