package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"ai-teacher/internal/lang"
	"ai-teacher/internal/vocab"
)

const (
	sentenceColumn           = "Sentence"
	translatedSentenceColumn = "Translated Sentence"
)

// Header returns the table header for a pair: the two language names followed
// by the sentence columns.
func Header(pair lang.Pair) []string {
	return []string{string(pair.Learn), string(pair.Clarification), sentenceColumn, translatedSentenceColumn}
}

// CSVStore keeps vocabulary in a comma separated table whose first two
// column headers are the language names.
//
// Unless partitioned, one file serves every language pair. Reusing it with a
// different clarification language keeps the old header and appends rows
// under it; a different learn language has no term column and is rejected with
// SchemaMismatchError.
type CSVStore struct {
	path      string
	partition bool
	log       zerolog.Logger
	mu        sync.Mutex
}

// NewCSVStore creates a store at path. With partition set every pair gets its
// own file named <base>_<learn>_<clarification><ext>.
func NewCSVStore(path string, partition bool, logger zerolog.Logger) (*CSVStore, error) {
	if path == "" {
		return nil, errors.New("empty vocabulary file path")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to ensure vocabulary dir: %w", err)
		}
	}
	return &CSVStore{path: path, partition: partition, log: logger}, nil
}

// Path returns the file that holds pair.
func (s *CSVStore) Path(pair lang.Pair) string {
	if !s.partition {
		return s.path
	}
	ext := filepath.Ext(s.path)
	base := strings.TrimSuffix(s.path, ext)
	return fmt.Sprintf("%s_%s_%s%s", base, strings.ToLower(string(pair.Learn)), strings.ToLower(string(pair.Clarification)), ext)
}

func (s *CSVStore) Append(_ context.Context, pair lang.Pair, entries []vocab.Entry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(pair)
	want := Header(pair)

	header, rows, err := readTable(path)
	if err != nil {
		return 0, err
	}

	if header == nil {
		fresh := dedupe(entries, map[string]bool{})
		if err := writeTable(path, want, fresh); err != nil {
			return 0, err
		}
		s.log.Info().Str("path", path).Int("added", len(fresh)).Msg("vocabulary table created")
		return len(fresh), nil
	}

	termCol := slices.Index(header, string(pair.Learn))
	if termCol < 0 {
		return 0, &SchemaMismatchError{Path: path, Header: header, Want: want}
	}
	if !slices.Equal(header, want) {
		s.log.Warn().Strs("header", header).Strs("want", want).Str("path", path).
			Msg("vocabulary table header differs from the current language pair")
	}

	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if termCol < len(r) {
			seen[r[termCol]] = true
		}
	}
	fresh := dedupe(entries, seen)
	if len(fresh) == 0 {
		return 0, nil
	}
	if err := appendRows(path, fresh); err != nil {
		return 0, err
	}
	s.log.Info().Str("path", path).Int("added", len(fresh)).Int("dropped", len(entries)-len(fresh)).Msg("vocabulary appended")
	return len(fresh), nil
}

// List returns the rows of pair's table in file order. A missing table is
// empty.
func (s *CSVStore) List(_ context.Context, pair lang.Pair) ([]vocab.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(pair)
	header, rows, err := readTable(path)
	if err != nil || header == nil {
		return nil, err
	}
	if slices.Index(header, string(pair.Learn)) != 0 {
		return nil, &SchemaMismatchError{Path: path, Header: header, Want: Header(pair)}
	}

	out := make([]vocab.Entry, 0, len(rows))
	for _, r := range rows {
		var f [4]string
		copy(f[:], r)
		out = append(out, vocab.Entry{Term: f[0], Translation: f[1], Sentence: f[2], TranslatedSentence: f[3]})
	}
	return out, nil
}

func (s *CSVStore) Close() error { return nil }

// readTable returns a nil header when the file is missing or empty.
func readTable(path string) ([]string, [][]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read vocabulary table: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, nil
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read vocabulary header: %w", err)
	}
	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read vocabulary rows: %w", err)
		}
		rows = append(rows, rec)
	}
	return header, rows, nil
}

func encodeRows(header []string, entries []vocab.Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if header != nil {
		if err := w.Write(header); err != nil {
			return nil, err
		}
	}
	for _, e := range entries {
		if err := w.Write(e.Fields()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTable(path string, header []string, entries []vocab.Entry) error {
	data, err := encodeRows(header, entries)
	if err != nil {
		return fmt.Errorf("encode vocabulary table: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write vocabulary table: %w", err)
	}
	return nil
}

// appendRows writes all rows with a single write, adding the missing line
// break when the file does not end with one.
func appendRows(path string, entries []vocab.Entry) error {
	data, err := encodeRows(nil, entries)
	if err != nil {
		return fmt.Errorf("encode vocabulary rows: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open vocabulary table: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	if st, err := f.Stat(); err == nil && st.Size() > 0 {
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, st.Size()-1); err == nil && last[0] != '\n' {
			data = append([]byte{'\n'}, data...)
		}
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("append vocabulary rows: %w", err)
	}
	return nil
}
