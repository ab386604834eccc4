package tutor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-teacher/internal/vocab"
)

func TestResultDisplay(t *testing.T) {
	r := Result{
		Conversation:    Outcome{Branch: BranchConversation, Text: "Hallo"},
		Correction:      Outcome{Branch: BranchCorrection, Text: "None"},
		Clarification:   Outcome{Branch: BranchClarification, Skipped: true},
		Vocabulary:      Outcome{Branch: BranchVocabulary, Err: errors.New("boom"), Text: "raw answer"},
		NeedsCorrection: false,
	}
	assert.Equal(t, "Hallo", r.Display(r.Conversation))
	assert.Equal(t, "No corrections needed.", r.Display(r.Correction))
	assert.Empty(t, r.Display(r.Clarification))
	assert.Equal(t, "Error: boom\n\nraw answer", r.Display(r.Vocabulary))

	r.Vocabulary = Outcome{Branch: BranchVocabulary, Text: "gehen - andare\n"}
	r.Entries = []vocab.Entry{{Term: "gehen"}, {Term: "sehen"}}
	r.Added = 1
	assert.Equal(t, "gehen - andare\n\n1 new of 2 saved to your vocabulary.", r.Display(r.Vocabulary))

	assert.Equal(t, "Corrections", BranchCorrection.Title())
}
