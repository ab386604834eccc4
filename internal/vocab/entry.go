package vocab

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Entry is one translated word with an example sentence in both languages.
type Entry struct {
	Term               string
	Translation        string
	Sentence           string
	TranslatedSentence string
}

// Fields returns the entry in table column order.
func (e Entry) Fields() []string {
	return []string{e.Term, e.Translation, e.Sentence, e.TranslatedSentence}
}

// Format renders entries as the listing shown to the user.
func Format(entries []Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s - %s\n", e.Term, e.Translation)
		fmt.Fprintf(&b, "    %s\n", e.Sentence)
		fmt.Fprintf(&b, "    %s\n", e.TranslatedSentence)
	}
	return b.String()
}

// Sample picks up to n distinct entries at random, keeping their stored order.
func Sample(entries []Entry, n int, r *rand.Rand) []Entry {
	if n <= 0 {
		return nil
	}
	if len(entries) <= n {
		return append([]Entry(nil), entries...)
	}
	idx := r.Perm(len(entries))[:n]
	picked := make([]bool, len(entries))
	for _, i := range idx {
		picked[i] = true
	}
	out := make([]Entry, 0, n)
	for i, e := range entries {
		if picked[i] {
			out = append(out, e)
		}
	}
	return out
}
