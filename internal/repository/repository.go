// ABOUTME: Persistence contract the note store is built on.
// ABOUTME: Backends implement Repository; queries and filters are shared types.

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/harper/folio/internal/models"
)

var ErrClosed = errors.New("repository is closed")

// Repository is a durable store of categories and notes. Empty results are
// not errors. Referential integrity between notes and categories is left to
// the caller.
type Repository interface {
	CreateCategory(ctx context.Context, c *models.Category) error
	// DeleteCategory removes every category record with the name and
	// reports how many were removed.
	DeleteCategory(ctx context.Context, name string) (int, error)
	// RenameCategory rewrites the category records and every note that
	// references oldName.
	RenameCategory(ctx context.Context, oldName, newName string) error
	// ListCategories returns categories sorted ascending by name. A
	// non-empty search keeps names containing it, ignoring case and accents.
	ListCategories(ctx context.Context, search string) ([]*models.Category, error)

	CreateNote(ctx context.Context, n *models.Note) error
	DeleteNote(ctx context.Context, id uuid.UUID) (int, error)
	DeleteNotesByCategory(ctx context.Context, name string) (int, error)
	// ListNotes returns notes matching q sorted by title, then date, then ID.
	ListNotes(ctx context.Context, q NoteQuery) ([]*models.Note, error)
	CountNotesByCategory(ctx context.Context) (map[string]int, error)

	// WithTx runs fn against a handle whose writes commit together, or not
	// at all when fn returns an error.
	WithTx(ctx context.Context, fn func(tx Repository) error) error
	Close() error
}

// NoteQuery is a conjunction; nil fields do not constrain.
type NoteQuery struct {
	ID       *uuid.UUID
	Category *string
	Filter   *NoteFilter
}

func ByID(id uuid.UUID) NoteQuery {
	return NoteQuery{ID: &id}
}

func InCategory(name string, filter *NoteFilter) NoteQuery {
	return NoteQuery{Category: &name, Filter: filter}
}

// Match reports whether n satisfies every constraint in q.
func (q NoteQuery) Match(n *models.Note) bool {
	if q.ID != nil && n.ID != *q.ID {
		return false
	}
	if q.Category != nil && n.CategoryName != *q.Category {
		return false
	}
	return q.Filter.Match(n)
}
