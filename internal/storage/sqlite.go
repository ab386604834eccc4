package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"ai-teacher/internal/lang"
	"ai-teacher/internal/vocab"
)

// SQLiteStore keys every row by its language pair, so one database serves any
// number of pairs without header drift.
type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// OpenSQLite opens (or creates) the database at path, ensuring that the parent
// directory exists, and initializes the schema.
func OpenSQLite(path string, logger zerolog.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open db at %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db at %s: %w", path, err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, log: logger}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS vocabulary (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			learn_language TEXT NOT NULL,
			clarification_language TEXT NOT NULL,
			term TEXT NOT NULL,
			translation TEXT NOT NULL,
			sentence TEXT NOT NULL,
			translated_sentence TEXT NOT NULL,
			created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now')),
			UNIQUE (learn_language, clarification_language, term)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to init vocabulary schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Append(ctx context.Context, pair lang.Pair, entries []vocab.Entry) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO vocabulary
			(learn_language, clarification_language, term, translation, sentence, translated_sentence)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, e := range entries {
		res, err := stmt.ExecContext(ctx, string(pair.Learn), string(pair.Clarification),
			e.Term, e.Translation, e.Sentence, e.TranslatedSentence)
		if err != nil {
			return 0, fmt.Errorf("insert %q: %w", e.Term, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		added += int(n)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	s.log.Info().Str("pair", pair.String()).Int("added", added).Int("dropped", len(entries)-added).Msg("vocabulary appended")
	return added, nil
}

func (s *SQLiteStore) List(ctx context.Context, pair lang.Pair) ([]vocab.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT term, translation, sentence, translated_sentence
		FROM vocabulary
		WHERE learn_language = ? AND clarification_language = ?
		ORDER BY id`, string(pair.Learn), string(pair.Clarification))
	if err != nil {
		return nil, fmt.Errorf("query vocabulary: %w", err)
	}
	defer rows.Close()

	var out []vocab.Entry
	for rows.Next() {
		var e vocab.Entry
		if err := rows.Scan(&e.Term, &e.Translation, &e.Sentence, &e.TranslatedSentence); err != nil {
			return nil, fmt.Errorf("scan vocabulary: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
