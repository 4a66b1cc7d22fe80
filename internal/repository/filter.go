// ABOUTME: Note filter predicate and accent-insensitive text matching.
// ABOUTME: Shared by every backend so search behaves identically.

package repository

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/harper/folio/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NoteFilter narrows a note listing. The zero value matches everything.
type NoteFilter struct {
	Search      string    // substring of title or message
	Since       time.Time // inclusive
	Until       time.Time // exclusive
	HasImage    bool
	HasAudio    bool
	HasLocation bool
}

func (f *NoteFilter) Match(n *models.Note) bool {
	if f == nil {
		return true
	}
	if f.Search != "" && !Contains(n.Title, f.Search) && !Contains(n.Message, f.Search) {
		return false
	}
	if !f.Since.IsZero() && n.Date.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && !n.Date.Before(f.Until) {
		return false
	}
	if f.HasImage && !n.HasImage() {
		return false
	}
	if f.HasAudio && n.AudioRef == "" {
		return false
	}
	if f.HasLocation && n.Location == nil {
		return false
	}
	return true
}

// Fold normalizes s for comparison: case-folded with combining marks removed.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// Contains is a case- and accent-insensitive substring test.
func Contains(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

func SortCategories(cats []*models.Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].Name < cats[j].Name
	})
}

func SortNotes(notes []*models.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.ID.String() < b.ID.String()
	})
}
