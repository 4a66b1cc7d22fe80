// ABOUTME: Tests for Category model.
// ABOUTME: Validates name trimming.

package models

import "testing"

func TestNewCategoryTrims(t *testing.T) {
	c := NewCategory("  Work  ")

	if c.Name != "Work" {
		t.Errorf("expected trimmed name 'Work', got %q", c.Name)
	}
	if c.NoteCount != 0 {
		t.Errorf("expected zero count, got %d", c.NoteCount)
	}
}
