package storage

import (
	"context"
	"fmt"
	"strings"

	"ai-teacher/internal/lang"
	"ai-teacher/internal/vocab"
)

// Store persists vocabulary entries. Append is all-or-nothing and drops
// entries whose term is already stored; it returns how many rows were added.
// List returns entries in insertion order.
//
// Implementations assume a single writer process.
type Store interface {
	Append(ctx context.Context, pair lang.Pair, entries []vocab.Entry) (int, error)
	List(ctx context.Context, pair lang.Pair) ([]vocab.Entry, error)
	Close() error
}

// SchemaMismatchError is returned when an existing table has no column for
// the requested learn language.
type SchemaMismatchError struct {
	Path   string
	Header []string
	Want   []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("vocabulary table %s has columns [%s], want [%s]",
		e.Path, strings.Join(e.Header, ", "), strings.Join(e.Want, ", "))
}

// dedupe keeps the first entry for every term not in seen. seen is updated.
func dedupe(entries []vocab.Entry, seen map[string]bool) []vocab.Entry {
	var out []vocab.Entry
	for _, e := range entries {
		if seen[e.Term] {
			continue
		}
		seen[e.Term] = true
		out = append(out, e)
	}
	return out
}
