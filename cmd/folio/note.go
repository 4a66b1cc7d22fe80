// ABOUTME: Note command group and helpers shared by the note subcommands.
// ABOUTME: Notes are addressed by category name plus a list position or ID prefix.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/repository"
	"github.com/spf13/cobra"
)

var errAmbiguousNote = errors.New("note reference is ambiguous")

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
	Long:  `List, add, show, edit, remove, or move notes within a category.`,
}

// loadCategoryNotes loads the notes of the named category into the store.
func loadCategoryNotes(ctx context.Context, category string, filter *repository.NoteFilter) error {
	idx, err := noteStore.CategoryIndex(category)
	if err != nil {
		return err
	}
	if err := noteStore.LoadNotes(ctx, idx, filter); err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}
	return nil
}

// resolveNote maps a list position or ID prefix to a position in the loaded
// notes.
func resolveNote(ref string) (int, error) {
	notes := noteStore.Notes()
	if i, err := strconv.Atoi(ref); err == nil {
		if i < 0 || i >= len(notes) {
			return 0, fmt.Errorf("no note at position %d (have %d)", i, len(notes))
		}
		return i, nil
	}

	match := -1
	for i, n := range notes {
		if strings.HasPrefix(n.ID.String(), strings.ToLower(ref)) {
			if match >= 0 {
				return 0, fmt.Errorf("%w: %q", errAmbiguousNote, ref)
			}
			match = i
		}
	}
	if match < 0 {
		return 0, fmt.Errorf("no note matches %q", ref)
	}
	return match, nil
}

// resolveNotes resolves every ref, dropping refs that name a note already
// resolved.
func resolveNotes(refs []string) ([]int, error) {
	seen := make(map[int]bool, len(refs))
	indices := make([]int, 0, len(refs))
	for _, ref := range refs {
		idx, err := resolveNote(ref)
		if err != nil {
			return nil, err
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		indices = append(indices, idx)
	}
	return indices, nil
}

func readImage(path string) (*models.Image, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	img := models.NewImage(data)
	if _, _, err := img.Probe(); err != nil {
		logger.Warn("image does not decode, storing raw bytes", "path", path, "err", err)
	}
	return img, nil
}

// parseDate accepts a date or an RFC 3339 timestamp.
func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", v, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

func init() {
	rootCmd.AddCommand(noteCmd)
}
