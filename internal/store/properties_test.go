// ABOUTME: Property-based tests for store invariants using rapid.
// ABOUTME: Checks ordering, counts, batch deletes and field round-trips.

package store

import (
	"sort"
	"testing"
	"time"

	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/repository/memory"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var nameGen = rapid.StringMatching(`[A-Za-z][A-Za-z0-9 ]{0,11}[A-Za-z0-9]`)

func TestPropertyCategoriesSorted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		names := rapid.SliceOfN(nameGen, 0, 12).Draw(t, "names")

		s := New(memory.NewRepository())
		for _, n := range names {
			require.NoError(t, s.AddCategory(ctx, n))
		}
		require.NoError(t, s.LoadCategories(ctx, ""))

		require.Equal(t, len(names), s.CategoryCount())
		got := make([]string, s.CategoryCount())
		for i := range got {
			name, err := s.Category(i)
			require.NoError(t, err)
			got[i] = name
		}
		require.True(t, sort.StringsAreSorted(got), "categories %v", got)
	})
}

func TestPropertyCountsMatchRepository(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cats := rapid.SliceOfNDistinct(nameGen, 1, 5, func(s string) string { return s }).Draw(t, "categories")
		picks := rapid.SliceOfN(rapid.IntRange(0, len(cats)-1), 0, 20).Draw(t, "picks")

		repo := memory.NewRepository()
		s := New(repo)
		for _, c := range cats {
			require.NoError(t, s.AddCategory(ctx, c))
		}
		want := make(map[string]int)
		for i, p := range picks {
			require.NoError(t, s.AddNote(ctx, models.NewNote(cats[p], rapid.StringMatching(`[a-z]{1,6}`).Draw(t, "title"), "")))
			want[cats[p]]++
			if i%3 == 2 {
				require.NoError(t, s.LoadCategories(ctx, ""))
			}
		}

		for _, c := range s.Categories() {
			require.Equal(t, want[c.Name], c.NoteCount, "category %q", c.Name)
		}
	})
}

func TestPropertyDeleteNotesAtRemovesExactlyThose(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(1, 15).Draw(t, "size")
		indices := rapid.SliceOfN(rapid.IntRange(0, size-1), 0, size*2).Draw(t, "indices")

		s := New(memory.NewRepository())
		require.NoError(t, s.AddCategory(ctx, "Home"))
		require.NoError(t, s.LoadCategories(ctx, ""))
		for i := 0; i < size; i++ {
			require.NoError(t, s.AddNote(ctx, models.NewNote("Home", rapid.StringMatching(`[a-z]{1,4}`).Draw(t, "title"), "")))
		}
		require.NoError(t, s.LoadNotes(ctx, 0, nil))
		before := s.Notes()

		doomed := make(map[int]bool)
		for _, i := range indices {
			doomed[i] = true
		}
		var want []string
		for i, n := range before {
			if !doomed[i] {
				want = append(want, n.ID.String())
			}
		}

		require.NoError(t, s.DeleteNotesAt(ctx, indices))

		var got []string
		for _, n := range s.Notes() {
			got = append(got, n.ID.String())
		}
		require.Equal(t, want, got)
		count, err := s.NoteCountForCategory(0)
		require.NoError(t, err)
		require.Equal(t, len(want), count)
	})
}

var (
	minDate = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	maxDate = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
)

func TestPropertyNoteRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		note := models.NewNote("Home",
			rapid.StringMatching(`[^\s\p{C}]\PC{0,39}`).Draw(t, "title"),
			rapid.String().Draw(t, "message"))
		note.Date = time.Unix(
			rapid.Int64Range(minDate.Unix(), maxDate.Unix()).Draw(t, "seconds"),
			rapid.Int64Range(0, 999999999).Draw(t, "nanos"),
		).UTC()
		if rapid.Bool().Draw(t, "audio") {
			note.AudioRef = rapid.StringMatching(`/[a-z]{1,8}\.m4a`).Draw(t, "audioRef")
		}
		if rapid.Bool().Draw(t, "location") {
			note.Location = &models.Location{
				Latitude:  rapid.Float64Range(-90, 90).Draw(t, "lat"),
				Longitude: rapid.Float64Range(-180, 180).Draw(t, "long"),
			}
		}
		if rapid.Bool().Draw(t, "image") {
			note.Image = models.NewImage(rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(t, "image"))
		}

		s := New(memory.NewRepository())
		require.NoError(t, s.AddCategory(ctx, "Home"))
		require.NoError(t, s.LoadCategories(ctx, ""))
		require.NoError(t, s.AddNote(ctx, note))
		require.NoError(t, s.LoadNotes(ctx, 0, nil))

		got, err := s.Note(0)
		require.NoError(t, err)
		require.True(t, note.Equal(got), "want %+v, got %+v", note, got)
	})
}
