// ABOUTME: In-memory Repository backed by maps.
// ABOUTME: Used for ephemeral sessions and tests; transactions roll back from a snapshot.

package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/repository"
)

var _ repository.Repository = (*repo)(nil)

type repo struct {
	mu         sync.RWMutex
	txMu       sync.Mutex
	categories []string
	notes      map[uuid.UUID]*models.Note
	closed     bool
}

// NewRepository creates an empty in-memory repository.
func NewRepository() repository.Repository {
	return &repo{
		notes: make(map[uuid.UUID]*models.Note),
	}
}

func (r *repo) CreateCategory(ctx context.Context, c *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return repository.ErrClosed
	}

	r.categories = append(r.categories, c.Name)
	return nil
}

func (r *repo) DeleteCategory(ctx context.Context, name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, repository.ErrClosed
	}

	kept := r.categories[:0]
	removed := 0
	for _, c := range r.categories {
		if c == name {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	r.categories = kept
	return removed, nil
}

func (r *repo) RenameCategory(ctx context.Context, oldName, newName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return repository.ErrClosed
	}

	for i, c := range r.categories {
		if c == oldName {
			r.categories[i] = newName
		}
	}
	for _, n := range r.notes {
		if n.CategoryName == oldName {
			n.CategoryName = newName
		}
	}
	return nil
}

func (r *repo) ListCategories(ctx context.Context, search string) ([]*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil, repository.ErrClosed
	}

	cats := make([]*models.Category, 0, len(r.categories))
	for _, name := range r.categories {
		if search != "" && !repository.Contains(name, search) {
			continue
		}
		cats = append(cats, &models.Category{Name: name})
	}
	repository.SortCategories(cats)
	return cats, nil
}

func (r *repo) CreateNote(ctx context.Context, n *models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return repository.ErrClosed
	}

	r.notes[n.ID] = n.Clone()
	return nil
}

func (r *repo) DeleteNote(ctx context.Context, id uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, repository.ErrClosed
	}

	if _, ok := r.notes[id]; !ok {
		return 0, nil
	}
	delete(r.notes, id)
	return 1, nil
}

func (r *repo) DeleteNotesByCategory(ctx context.Context, name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, repository.ErrClosed
	}

	removed := 0
	for id, n := range r.notes {
		if n.CategoryName == name {
			delete(r.notes, id)
			removed++
		}
	}
	return removed, nil
}

func (r *repo) ListNotes(ctx context.Context, q repository.NoteQuery) ([]*models.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil, repository.ErrClosed
	}

	var notes []*models.Note
	for _, n := range r.notes {
		if q.Match(n) {
			notes = append(notes, n.Clone())
		}
	}
	repository.SortNotes(notes)
	return notes, nil
}

func (r *repo) CountNotesByCategory(ctx context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil, repository.ErrClosed
	}

	counts := make(map[string]int)
	for _, n := range r.notes {
		counts[n.CategoryName]++
	}
	return counts, nil
}

// WithTx snapshots the state and restores it if fn fails. Transactions are
// serialized against each other.
func (r *repo) WithTx(ctx context.Context, fn func(tx repository.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	cats, notes := r.snapshot()
	if err := fn(r); err != nil {
		r.restore(cats, notes)
		return err
	}
	return nil
}

func (r *repo) snapshot() ([]string, map[uuid.UUID]*models.Note) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cats := append([]string(nil), r.categories...)
	notes := make(map[uuid.UUID]*models.Note, len(r.notes))
	for id, n := range r.notes {
		notes[id] = n.Clone()
	}
	return cats, notes
}

func (r *repo) restore(cats []string, notes map[uuid.UUID]*models.Note) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories = cats
	r.notes = notes
}

func (r *repo) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	return nil
}
