// ABOUTME: Note model representing a single user entry inside a category.
// ABOUTME: Carries optional message, image, audio reference and location.

package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle  = errors.New("note title cannot be empty")
	ErrInvalidDate = errors.New("note date must fall between years 1 and 9999")
)

// Location is a latitude/longitude pair. A note has both or neither.
type Location struct {
	Latitude  float64
	Longitude float64
}

type Note struct {
	ID           uuid.UUID
	Title        string
	Message      string
	Date         time.Time
	CategoryName string
	Image        *Image
	AudioRef     string
	Location     *Location
}

func NewNote(categoryName, title, message string) *Note {
	return &Note{
		ID:           uuid.New(),
		Title:        title,
		Message:      message,
		Date:         Now(),
		CategoryName: categoryName,
	}
}

// Now returns the current time in the form notes persist it: UTC, no monotonic reading.
func Now() time.Time {
	return time.Now().UTC().Round(0)
}

func (n *Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrEmptyTitle
	}
	// RFC 3339 archives and JSON records cannot carry years outside this range.
	if y := n.Date.Year(); y < 1 || y > 9999 {
		return ErrInvalidDate
	}
	return nil
}

func (n *Note) HasImage() bool {
	return n.Image != nil && len(n.Image.Data) > 0
}

// Clone returns a deep copy so callers cannot reach into store-owned state.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	c := *n
	if n.Image != nil {
		img := *n.Image
		img.Data = append([]byte(nil), n.Image.Data...)
		c.Image = &img
	}
	if n.Location != nil {
		loc := *n.Location
		c.Location = &loc
	}
	return &c
}

func (n *Note) Equal(o *Note) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.ID != o.ID || n.Title != o.Title || n.Message != o.Message ||
		n.CategoryName != o.CategoryName || n.AudioRef != o.AudioRef || !n.Date.Equal(o.Date) {
		return false
	}
	if !n.Image.Equal(o.Image) {
		return false
	}
	switch {
	case n.Location == nil && o.Location == nil:
		return true
	case n.Location == nil || o.Location == nil:
		return false
	default:
		return *n.Location == *o.Location
	}
}
