// ABOUTME: Tests for note filters and text folding.
// ABOUTME: Covers accent-insensitive search and date bounds.

package repository

import (
	"testing"
	"time"

	"github.com/harper/folio/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestContainsIgnoresCaseAndAccents(t *testing.T) {
	assert.True(t, Contains("Café Notes", "cafe"))
	assert.True(t, Contains("RÉSUMÉ", "résumé"))
	assert.True(t, Contains("Straße", "STRASSE"))
	assert.False(t, Contains("Work", "home"))
}

func TestNilFilterMatchesAll(t *testing.T) {
	var f *NoteFilter
	assert.True(t, f.Match(models.NewNote("Home", "x", "")))
}

func TestFilterMatch(t *testing.T) {
	day := time.Date(2020, 6, 21, 12, 0, 0, 0, time.UTC)
	note := models.NewNote("Home", "Groceries", "buy Crème fraîche")
	note.Date = day

	tests := []struct {
		name   string
		filter NoteFilter
		want   bool
	}{
		{"title", NoteFilter{Search: "groc"}, true},
		{"message", NoteFilter{Search: "creme"}, true},
		{"miss", NoteFilter{Search: "bank"}, false},
		{"since inclusive", NoteFilter{Since: day}, true},
		{"until exclusive", NoteFilter{Until: day}, false},
		{"until after", NoteFilter{Until: day.Add(time.Hour)}, true},
		{"needs image", NoteFilter{HasImage: true}, false},
		{"needs audio", NoteFilter{HasAudio: true}, false},
		{"needs location", NoteFilter{HasLocation: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(note))
		})
	}
}

func TestQueryMatch(t *testing.T) {
	note := models.NewNote("Home", "Groceries", "")

	assert.True(t, ByID(note.ID).Match(note))
	assert.True(t, InCategory("Home", nil).Match(note))
	assert.False(t, InCategory("Work", nil).Match(note))
}

func TestSortNotesTieBreaks(t *testing.T) {
	a := models.NewNote("Home", "Same", "")
	b := models.NewNote("Home", "Same", "")
	b.Date = a.Date.Add(time.Second)
	c := models.NewNote("Home", "Alpha", "")

	notes := []*models.Note{b, a, c}
	SortNotes(notes)

	assert.Equal(t, []*models.Note{c, a, b}, notes)
}
