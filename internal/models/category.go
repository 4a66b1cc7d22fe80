// ABOUTME: Category model grouping notes under a name.
// ABOUTME: NoteCount is derived on load and never persisted.

package models

import "strings"

type Category struct {
	Name      string
	NoteCount int
}

func NewCategory(name string) *Category {
	return &Category{
		Name: strings.TrimSpace(name),
	}
}
