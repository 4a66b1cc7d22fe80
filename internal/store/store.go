// ABOUTME: NoteStore keeps in-memory projections of categories and notes.
// ABOUTME: Every mutation goes to the repository first, then the projections follow.

package store

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/repository"
)

// Store is the single source of truth for categories and notes. Construct one
// per process and share it. All methods are safe for concurrent use; writers
// are serialized and readers see a consistent snapshot.
//
// Accessors return copies. Any load rebuilds the projections, so positions
// obtained before a load or mutation must not be reused after it.
type Store struct {
	mu   sync.RWMutex
	repo repository.Repository
	log  *log.Logger

	uniqueCategories bool
	cascadeRename    bool
	nonAtomic        bool

	categories     []string
	counts         []int
	categoryFilter string

	notes         []*models.Note
	notesCategory string
	notesLoaded   bool
	noteFilter    *repository.NoteFilter

	closed bool
}

type Option func(*Store)

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// WithUniqueCategories rejects category names that already exist.
func WithUniqueCategories() Option {
	return func(s *Store) {
		s.uniqueCategories = true
	}
}

// WithCascadeRename makes UpdateCategory remove the old category and its
// notes before adding the new name, instead of renaming in place.
func WithCascadeRename() Option {
	return func(s *Store) {
		s.cascadeRename = true
	}
}

// WithNonAtomicUpdates runs composite operations step by step without a
// transaction. A failure partway leaves the earlier steps applied.
func WithNonAtomicUpdates() Option {
	return func(s *Store) {
		s.nonAtomic = true
	}
}

func New(repo repository.Repository, opts ...Option) *Store {
	s := &Store{
		repo: repo,
		log: log.NewWithOptions(os.Stderr, log.Options{
			Level:  log.WarnLevel,
			Prefix: "store",
		}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close drops the projections. The repository stays open; its owner closes it.
func (s *Store) Close() error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	s.closed = true
	s.categories, s.counts, s.notes = nil, nil, nil
	return nil
}

func (s *Store) lock() error {
	if s == nil {
		return ErrNoInstance
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrNoInstance
	}
	return nil
}

func (s *Store) rlock() error {
	if s == nil {
		return ErrNoInstance
	}
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ErrNoInstance
	}
	return nil
}

// atomically runs fn in one repository transaction unless non-atomic updates
// were requested.
func (s *Store) atomically(ctx context.Context, fn func(tx repository.Repository) error) error {
	if s.nonAtomic {
		return fn(s.repo)
	}
	return s.repo.WithTx(ctx, fn)
}

// recount rebuilds the per-category note counts from the repository.
func (s *Store) recount(ctx context.Context) error {
	counts, err := s.countFor(ctx, s.categories)
	if err != nil {
		return err
	}
	s.counts = counts
	return nil
}

func (s *Store) countFor(ctx context.Context, names []string) ([]int, error) {
	byName, err := s.repo.CountNotesByCategory(ctx)
	if err != nil {
		return nil, persistence("count notes", err)
	}
	counts := make([]int, len(names))
	for i, name := range names {
		counts[i] = byName[name]
	}
	return counts, nil
}

// resync reloads the projections after a failed write so they match the
// repository again. Errors are logged; the caller already has one to return.
func (s *Store) resync(ctx context.Context) {
	cats, err := s.repo.ListCategories(ctx, s.categoryFilter)
	if err != nil {
		s.log.Error("resync categories", "err", err)
		return
	}
	s.categories = categoryNames(cats)
	if err := s.recount(ctx); err != nil {
		s.log.Error("resync counts", "err", err)
	}

	if !s.notesLoaded {
		return
	}
	if s.indexOf(s.notesCategory) < 0 {
		s.clearNotes()
		return
	}
	notes, err := s.repo.ListNotes(ctx, repository.InCategory(s.notesCategory, s.noteFilter))
	if err != nil {
		s.log.Error("resync notes", "category", s.notesCategory, "err", err)
		return
	}
	s.notes = notes
}

// fail resyncs when err came from the repository and returns err unchanged.
func (s *Store) fail(ctx context.Context, err error) error {
	if errors.Is(err, ErrPersistence) {
		s.resync(ctx)
	}
	return err
}
