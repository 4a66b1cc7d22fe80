// ABOUTME: Conformance suite every Repository implementation must pass.
// ABOUTME: Backends call Run with a constructor for a fresh, empty repository.

package repotest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty repository. Run closes it.
type Factory func(t *testing.T) repository.Repository

var errRollback = errors.New("rollback")

func Run(t *testing.T, newRepo Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, r repository.Repository)
	}{
		{"CategoriesSortedWithDuplicates", testCategoriesSorted},
		{"CategorySearch", testCategorySearch},
		{"DeleteCategory", testDeleteCategory},
		{"NoteRoundTrip", testNoteRoundTrip},
		{"NoteDatesRoundTrip", testNoteDatesRoundTrip},
		{"ListNotesByCategory", testListNotesByCategory},
		{"ListNotesFiltered", testListNotesFiltered},
		{"DeleteNote", testDeleteNote},
		{"DeleteNotesByCategory", testDeleteNotesByCategory},
		{"RenameCategory", testRenameCategory},
		{"CountNotesByCategory", testCountNotesByCategory},
		{"TxCommit", testTxCommit},
		{"TxRollback", testTxRollback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRepo(t)
			defer func() { _ = r.Close() }()
			tt.fn(t, r)
		})
	}

	t.Run("Closed", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Close())
		_, err := r.ListCategories(context.Background(), "")
		assert.Error(t, err)
	})
}

func addCategories(t *testing.T, r repository.Repository, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, r.CreateCategory(context.Background(), models.NewCategory(name)))
	}
}

func addNote(t *testing.T, r repository.Repository, category, title string) *models.Note {
	t.Helper()
	n := models.NewNote(category, title, "")
	require.NoError(t, r.CreateNote(context.Background(), n))
	return n
}

func categoryNames(cats []*models.Category) []string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return names
}

func noteTitles(notes []*models.Note) []string {
	titles := make([]string, len(notes))
	for i, n := range notes {
		titles[i] = n.Title
	}
	return titles
}

func testCategoriesSorted(t *testing.T, r repository.Repository) {
	addCategories(t, r, "Work", "Home", "Work", "Errands")

	cats, err := r.ListCategories(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Errands", "Home", "Work", "Work"}, categoryNames(cats))
}

func testCategorySearch(t *testing.T, r repository.Repository) {
	addCategories(t, r, "Café", "Home", "Workshop")

	cats, err := r.ListCategories(context.Background(), "CAFE")
	require.NoError(t, err)
	assert.Equal(t, []string{"Café"}, categoryNames(cats))

	cats, err = r.ListCategories(context.Background(), "o")
	require.NoError(t, err)
	assert.Equal(t, []string{"Home", "Workshop"}, categoryNames(cats))

	cats, err = r.ListCategories(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func testDeleteCategory(t *testing.T, r repository.Repository) {
	addCategories(t, r, "Home", "Work", "Home")

	n, err := r.DeleteCategory(context.Background(), "Home")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = r.DeleteCategory(context.Background(), "Missing")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	cats, err := r.ListCategories(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Work"}, categoryNames(cats))
}

func testNoteRoundTrip(t *testing.T, r repository.Repository) {
	note := models.NewNote("Trips", "Niagara", "Falls were loud")
	note.Image = models.NewImage([]byte("\x89PNG\r\n\x1a\nfake"))
	note.AudioRef = "/var/mobile/rec-1.m4a"
	note.Location = &models.Location{Latitude: 43.0896, Longitude: -79.0849}
	require.NoError(t, r.CreateNote(context.Background(), note))

	got, err := r.ListNotes(context.Background(), repository.ByID(note.ID))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, note.Equal(got[0]), "expected %+v, got %+v", note, got[0])
	assert.Equal(t, "image/png", got[0].Image.MimeType)

	bare := models.NewNote("Trips", "Bare", "")
	require.NoError(t, r.CreateNote(context.Background(), bare))
	got, err = r.ListNotes(context.Background(), repository.ByID(bare.ID))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Image)
	assert.Nil(t, got[0].Location)
	assert.True(t, bare.Equal(got[0]))
}

func testNoteDatesRoundTrip(t *testing.T, r repository.Repository) {
	ctx := context.Background()
	dates := map[string]time.Time{
		"Pilgrims":  time.Date(1600, 1, 1, 0, 0, 0, 0, time.UTC),
		"Epoch":     time.Date(1969, 12, 31, 23, 59, 59, 500, time.UTC),
		"Centuries": time.Date(2500, 6, 15, 12, 30, 0, 123456789, time.UTC),
		"Last":      time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC),
	}
	for title, date := range dates {
		note := models.NewNote("History", title, "")
		note.Date = date
		require.NoError(t, r.CreateNote(ctx, note))

		got, err := r.ListNotes(ctx, repository.ByID(note.ID))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, date.Equal(got[0].Date), "%s: stored %v, loaded %v", title, date, got[0].Date)
	}

	got, err := r.ListNotes(ctx, repository.InCategory("History", &repository.NoteFilter{
		Since: time.Date(1969, 12, 31, 23, 59, 59, 500, time.UTC),
		Until: time.Date(2500, 6, 15, 12, 30, 0, 123456789, time.UTC),
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Epoch"}, noteTitles(got))
}

func testListNotesByCategory(t *testing.T, r repository.Repository) {
	addNote(t, r, "Home", "Laundry")
	addNote(t, r, "Home", "Groceries")
	addNote(t, r, "Work", "Standup")

	notes, err := r.ListNotes(context.Background(), repository.InCategory("Home", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"Groceries", "Laundry"}, noteTitles(notes))

	notes, err = r.ListNotes(context.Background(), repository.InCategory("Empty", nil))
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func testListNotesFiltered(t *testing.T, r repository.Repository) {
	old := models.NewNote("Home", "Old receipt", "")
	old.Date = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, r.CreateNote(context.Background(), old))

	withAudio := models.NewNote("Home", "Voice memo", "")
	withAudio.AudioRef = "memo.m4a"
	require.NoError(t, r.CreateNote(context.Background(), withAudio))

	notes, err := r.ListNotes(context.Background(), repository.InCategory("Home", &repository.NoteFilter{Search: "RECEIPT"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Old receipt"}, noteTitles(notes))

	notes, err = r.ListNotes(context.Background(), repository.InCategory("Home", &repository.NoteFilter{
		Since: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Voice memo"}, noteTitles(notes))

	notes, err = r.ListNotes(context.Background(), repository.InCategory("Home", &repository.NoteFilter{HasAudio: true}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Voice memo"}, noteTitles(notes))
}

func testDeleteNote(t *testing.T, r repository.Repository) {
	keep := addNote(t, r, "Home", "Keep")
	drop := addNote(t, r, "Home", "Keep")

	n, err := r.DeleteNote(context.Background(), drop.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = r.DeleteNote(context.Background(), drop.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	notes, err := r.ListNotes(context.Background(), repository.InCategory("Home", nil))
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, keep.ID, notes[0].ID)
}

func testDeleteNotesByCategory(t *testing.T, r repository.Repository) {
	addNote(t, r, "Home", "A")
	addNote(t, r, "Home", "B")
	addNote(t, r, "Work", "C")

	n, err := r.DeleteNotesByCategory(context.Background(), "Home")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	notes, err := r.ListNotes(context.Background(), repository.NoteQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, noteTitles(notes))
}

func testRenameCategory(t *testing.T, r repository.Repository) {
	addCategories(t, r, "Home", "Work")
	addNote(t, r, "Home", "A")
	addNote(t, r, "Work", "B")

	require.NoError(t, r.RenameCategory(context.Background(), "Home", "House"))

	cats, err := r.ListCategories(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"House", "Work"}, categoryNames(cats))

	notes, err := r.ListNotes(context.Background(), repository.InCategory("House", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, noteTitles(notes))
	assert.Equal(t, "House", notes[0].CategoryName)
}

func testCountNotesByCategory(t *testing.T, r repository.Repository) {
	addNote(t, r, "Home", "A")
	addNote(t, r, "Home", "B")
	addNote(t, r, "Work", "C")

	counts, err := r.CountNotesByCategory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Home": 2, "Work": 1}, counts)
}

func testTxCommit(t *testing.T, r repository.Repository) {
	err := r.WithTx(context.Background(), func(tx repository.Repository) error {
		if err := tx.CreateCategory(context.Background(), models.NewCategory("Home")); err != nil {
			return err
		}
		return tx.CreateNote(context.Background(), models.NewNote("Home", "Inside", ""))
	})
	require.NoError(t, err)

	counts, err := r.CountNotesByCategory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, counts["Home"])
}

func testTxRollback(t *testing.T, r repository.Repository) {
	kept := addNote(t, r, "Home", "Kept")

	err := r.WithTx(context.Background(), func(tx repository.Repository) error {
		if _, err := tx.DeleteNote(context.Background(), kept.ID); err != nil {
			return err
		}
		if err := tx.CreateCategory(context.Background(), models.NewCategory("Ghost")); err != nil {
			return err
		}
		return errRollback
	})
	require.ErrorIs(t, err, errRollback)

	notes, err := r.ListNotes(context.Background(), repository.NoteQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kept"}, noteTitles(notes))

	cats, err := r.ListCategories(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, cats)
}
