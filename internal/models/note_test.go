// ABOUTME: Tests for Note model constructor and helpers.
// ABOUTME: Validates UUID generation, validation, cloning and equality.

package models

import (
	"testing"
	"time"
)

func TestNewNote(t *testing.T) {
	note := NewNote("Home", "Groceries", "milk, eggs")

	if note.ID.String() == "" {
		t.Error("expected UUID to be generated")
	}
	if note.Title != "Groceries" {
		t.Errorf("expected title %q, got %q", "Groceries", note.Title)
	}
	if note.CategoryName != "Home" {
		t.Errorf("expected category %q, got %q", "Home", note.CategoryName)
	}
	if note.Date.IsZero() {
		t.Error("expected Date to be set")
	}
	if note.Date.Location() != time.UTC {
		t.Errorf("expected UTC date, got %v", note.Date.Location())
	}
}

func TestNoteValidate(t *testing.T) {
	if err := NewNote("Home", "  ", "").Validate(); err != ErrEmptyTitle {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
	if err := NewNote("Home", "ok", "").Validate(); err != nil {
		t.Errorf("expected valid note, got %v", err)
	}
}

func TestNoteValidateDateRange(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want error
	}{
		{"far past", time.Date(1600, 1, 1, 0, 0, 0, 0, time.UTC), nil},
		{"far future", time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC), nil},
		{"year zero", time.Date(0, 12, 31, 0, 0, 0, 0, time.UTC), ErrInvalidDate},
		{"year 10000", time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC), ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := NewNote("Home", "Dated", "")
			note.Date = tt.date
			if err := note.Validate(); err != tt.want {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNoteCloneIsDeep(t *testing.T) {
	note := NewNote("Home", "Pic", "")
	note.Image = NewImage([]byte{1, 2, 3})
	note.Location = &Location{Latitude: 43.6, Longitude: -79.4}

	c := note.Clone()
	c.Image.Data[0] = 9
	c.Location.Latitude = 0

	if note.Image.Data[0] != 1 {
		t.Error("expected image bytes to be copied")
	}
	if note.Location.Latitude != 43.6 {
		t.Error("expected location to be copied")
	}
}

func TestNoteEqual(t *testing.T) {
	a := NewNote("Home", "Groceries", "milk")
	a.AudioRef = "/tmp/a.m4a"
	a.Location = &Location{Latitude: 1, Longitude: 2}
	b := a.Clone()

	if !a.Equal(b) {
		t.Error("expected clone to be equal")
	}

	b.Location = nil
	if a.Equal(b) {
		t.Error("expected notes with different locations to differ")
	}

	b = a.Clone()
	b.Date = a.Date.In(time.FixedZone("x", 3600))
	if !a.Equal(b) {
		t.Error("expected same instant in another zone to be equal")
	}

	b = a.Clone()
	a.Image = &Image{Data: []byte{}}
	if !a.Equal(b) {
		t.Error("expected an image without data to equal no image")
	}
}
