package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLite is a corpus stored in a SQLite database
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if needed) a corpus database
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS frequencies (
	word TEXT NOT NULL,
	lang TEXT NOT NULL,
	zipf REAL NOT NULL,
	PRIMARY KEY(word, lang)
);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init corpus schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Score returns the Zipf frequency of word in lang, or 0 if unknown
func (s *SQLite) Score(ctx context.Context, word, lang string) (float64, error) {
	var zipf float64
	err := s.db.QueryRowContext(ctx,
		`SELECT zipf FROM frequencies WHERE word = ? AND lang = ?`,
		strings.ToLower(word), lang,
	).Scan(&zipf)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("corpus lookup: %w", err)
	}
	return zipf, nil
}

// Upsert stores a single score
func (s *SQLite) Upsert(ctx context.Context, word, lang string, zipf float64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO frequencies(word, lang, zipf) VALUES(?, ?, ?)
		 ON CONFLICT(word, lang) DO UPDATE SET zipf = excluded.zipf`,
		strings.ToLower(word), lang, zipf,
	)
	return err
}

// Import loads a word<TAB>zipf list for lang in a single transaction and
// returns the number of rows written
func (s *SQLite) Import(ctx context.Context, r io.Reader, lang string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO frequencies(word, lang, zipf) VALUES(?, ?, ?)
		 ON CONFLICT(word, lang) DO UPDATE SET zipf = excluded.zipf`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	n := 0
	err = ReadTSV(r, func(e Entry) error {
		if _, err := stmt.ExecContext(ctx, e.Word, lang, e.Zipf); err != nil {
			return fmt.Errorf("insert %q: %w", e.Word, err)
		}
		n++
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

// Count returns the number of words stored for lang
func (s *SQLite) Count(ctx context.Context, lang string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM frequencies WHERE lang = ?`, lang).Scan(&n)
	return n, err
}
