// ABOUTME: SQLite Repository: connection, schema and transaction handling.
// ABOUTME: Handles XDG paths, SQLite initialization, and migrations.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harper/folio/internal/repository"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS categories_name ON categories(name);

CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    message TEXT,
    date INTEGER NOT NULL,
    date_nanos INTEGER NOT NULL DEFAULT 0,
    category TEXT NOT NULL,
    audio TEXT,
    image BLOB,
    lat REAL,
    long REAL
);

CREATE INDEX IF NOT EXISTS notes_category_title ON notes(category, title);
`

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var _ repository.Repository = (*Repo)(nil)

type Repo struct {
	db *sql.DB
	q  querier
	tx bool
}

func Open(path string) (*Repo, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps transactions from tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repo{db: db, q: db}, nil
}

func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "folio", "folio.db")
}

func (r *Repo) WithTx(ctx context.Context, fn func(tx repository.Repository) error) error {
	if r.tx {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(&Repo{db: r.db, q: tx, tx: true}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *Repo) Close() error {
	return r.db.Close()
}
