// ABOUTME: Tests for backend failures surfacing as PersistenceError.
// ABOUTME: Uses a repository wrapper that fails chosen calls.

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/repository"
	"github.com/harper/folio/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// faultyRepo fails the calls whose error field is set.
type faultyRepo struct {
	repository.Repository
	createNote error
	count      error
}

func (f *faultyRepo) CreateNote(ctx context.Context, n *models.Note) error {
	if f.createNote != nil {
		return f.createNote
	}
	return f.Repository.CreateNote(ctx, n)
}

func (f *faultyRepo) CountNotesByCategory(ctx context.Context) (map[string]int, error) {
	if f.count != nil {
		return nil, f.count
	}
	return f.Repository.CountNotesByCategory(ctx)
}

func (f *faultyRepo) WithTx(ctx context.Context, fn func(tx repository.Repository) error) error {
	return f.Repository.WithTx(ctx, func(tx repository.Repository) error {
		return fn(&faultyRepo{Repository: tx, createNote: f.createNote, count: f.count})
	})
}

func TestAddNotePersistenceError(t *testing.T) {
	repo := &faultyRepo{Repository: memory.NewRepository()}
	s := seeded(t, repo, []string{"Home"})
	require.NoError(t, s.LoadNotes(ctx, 0, nil))

	repo.createNote = errDiskFull
	err := s.AddNote(ctx, models.NewNote("Home", "Groceries", ""))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, errDiskFull)
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "add note", pe.Op)

	assert.Zero(t, s.NoteCount())
	assert.Equal(t, 0, countOf(t, s, "Home"))
}

func TestLoadCategoriesPersistenceError(t *testing.T) {
	repo := &faultyRepo{Repository: memory.NewRepository(), count: errDiskFull}
	s := New(repo)
	require.NoError(t, repo.CreateCategory(ctx, models.NewCategory("Home")))

	err := s.LoadCategories(ctx, "")
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Zero(t, s.CategoryCount(), "failed load leaves the projection untouched")
}

func TestMoveFailureRollsBack(t *testing.T) {
	repo := &faultyRepo{Repository: memory.NewRepository()}
	s := seeded(t, repo, []string{"A", "B"})
	addNotes(t, s, "A", "Receipt")
	require.NoError(t, s.LoadNotes(ctx, 0, nil))

	repo.createNote = errDiskFull
	err := s.MoveNoteAt(ctx, 0, 1)

	assert.ErrorIs(t, err, errDiskFull)
	repo.createNote = nil
	assert.Equal(t, []string{"Receipt"}, titles(s.Notes()))
	assert.Equal(t, 1, countOf(t, s, "A"))
	assert.Equal(t, 0, countOf(t, s, "B"))
}

func TestNonAtomicMoveFailureResyncs(t *testing.T) {
	repo := &faultyRepo{Repository: memory.NewRepository()}
	s := seeded(t, repo, []string{"A", "B"}, WithNonAtomicUpdates())
	addNotes(t, s, "A", "Receipt")
	require.NoError(t, s.LoadNotes(ctx, 0, nil))

	repo.createNote = errDiskFull
	err := s.MoveNoteAt(ctx, 0, 1)

	assert.ErrorIs(t, err, ErrPersistence)
	repo.createNote = nil
	// The delete went through before the insert failed; the projections
	// reflect the repository, not the pre-call state.
	assert.Zero(t, s.NoteCount())
	assert.Equal(t, 0, countOf(t, s, "A"))
	assert.Equal(t, 0, countOf(t, s, "B"))
}

func TestUpdateNoteFailureKeepsOld(t *testing.T) {
	repo := &faultyRepo{Repository: memory.NewRepository()}
	s := seeded(t, repo, []string{"Home"})
	addNotes(t, s, "Home", "Groceries")
	require.NoError(t, s.LoadNotes(ctx, 0, nil))

	repo.createNote = errDiskFull
	err := s.UpdateNoteAt(ctx, 0, models.NewNote("Home", "Groceries v2", ""))

	assert.ErrorIs(t, err, ErrPersistence)
	repo.createNote = nil
	assert.Equal(t, []string{"Groceries"}, titles(s.Notes()))
}
