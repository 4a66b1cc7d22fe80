// ABOUTME: Badger-backed Repository using type-prefixed keys with JSON values.
// ABOUTME: Keys are category:<uuid> and note:<uuid>; transactions map to badger txns.

package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/harper/folio/internal/repository"
)

const (
	// CategoryPrefix is the key prefix for categories.
	CategoryPrefix = "category:"
	// NotePrefix is the key prefix for notes.
	NotePrefix = "note:"
)

var _ repository.Repository = (*Repo)(nil)

// Repo holds either the database or, inside WithTx, the open transaction.
type Repo struct {
	db  *badger.DB
	txn *badger.Txn
}

// Open opens (or creates) a badger directory.
func Open(dir string) (*Repo, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Repo{db: db}, nil
}

// OpenInMemory opens a badger instance that never touches disk.
func OpenInMemory() (*Repo, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Repo{db: db}, nil
}

// DefaultDir returns the badger directory under the XDG data home.
func DefaultDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "folio", "badger")
}

func (r *Repo) view(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.txn != nil {
		return fn(r.txn)
	}
	return r.db.View(fn)
}

func (r *Repo) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.txn != nil {
		return fn(r.txn)
	}
	return r.db.Update(fn)
}

func (r *Repo) WithTx(ctx context.Context, fn func(tx repository.Repository) error) error {
	if r.txn != nil {
		return fn(r)
	}
	if r.db.IsClosed() {
		return badger.ErrDBClosed
	}

	txn := r.db.NewTransaction(true)
	defer txn.Discard()

	if err := fn(&Repo{db: r.db, txn: txn}); err != nil {
		return err
	}
	if err := txn.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// each calls fn for every key under prefix. Only one iterator may be open per
// read-write transaction, so callers must not write from inside fn.
func each(txn *badger.Txn, prefix []byte, fn func(key, val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = true
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		key := item.KeyCopy(nil)
		err := item.Value(func(val []byte) error {
			return fn(key, val)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) Close() error {
	return r.db.Close()
}
