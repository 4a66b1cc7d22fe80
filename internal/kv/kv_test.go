// ABOUTME: Tests for the badger repository.
// ABOUTME: Runs the conformance suite on disk and in memory, plus persistence across reopen.

package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/repository"
	"github.com/harper/folio/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryConformanceInMemory(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repository.Repository {
		repo, err := OpenInMemory()
		require.NoError(t, err)
		return repo
	})
}

func TestRepositoryConformanceOnDisk(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repository.Repository {
		repo, err := Open(filepath.Join(t.TempDir(), "badger"))
		require.NoError(t, err)
		return repo
	})
}

func TestDataSurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")
	ctx := context.Background()

	repo, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, repo.CreateCategory(ctx, models.NewCategory("Home")))
	note := models.NewNote("Home", "Groceries", "milk")
	require.NoError(t, repo.CreateNote(ctx, note))
	require.NoError(t, repo.Close())

	repo, err = Open(dir)
	require.NoError(t, err)
	defer func() { _ = repo.Close() }()

	notes, err := repo.ListNotes(ctx, repository.InCategory("Home", nil))
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.True(t, note.Equal(notes[0]))
}

func TestNoteDataConversion(t *testing.T) {
	note := models.NewNote("Home", "Pin", "")
	note.Location = &models.Location{Latitude: 1.5, Longitude: -2.5}

	got, err := FromModel(note).ToModel()
	require.NoError(t, err)
	assert.True(t, note.Equal(got))

	_, err = (&NoteData{ID: "bogus"}).ToModel()
	assert.Error(t, err)
}

func TestDefaultDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	assert.Equal(t, filepath.Join(tmp, "folio", "badger"), DefaultDir())
}
