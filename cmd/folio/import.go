// ABOUTME: Import command for restoring categories and notes from an archive.
// ABOUTME: Missing categories are created; notes already present by ID are skipped.

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/store"
	"github.com/harper/folio/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type importStats struct {
	Categories int
	Notes      int
	Skipped    int
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import categories and notes",
	Long:  `Import a YAML or JSON archive written by 'folio export'.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		format, _ := cmd.Flags().GetString("format")
		if !cmd.Flags().Changed("format") {
			format = formatFor(path, format)
		}

		data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
		if err != nil {
			return fmt.Errorf("failed to read archive: %w", err)
		}
		archive, err := decodeArchive(data, format)
		if err != nil {
			return err
		}

		stats, err := applyArchive(cmd.Context(), noteStore, archive)
		if err != nil {
			return err
		}

		fmt.Println(ui.Success(fmt.Sprintf("Imported %d categories and %d notes (%d already present)",
			stats.Categories, stats.Notes, stats.Skipped)))
		return nil
	},
}

func decodeArchive(data []byte, format string) (*Archive, error) {
	var archive Archive
	var err error
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, &archive)
	case "json":
		err = json.Unmarshal(data, &archive)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse archive: %w", err)
	}
	return &archive, nil
}

func applyArchive(ctx context.Context, st *store.Store, archive *Archive) (importStats, error) {
	var stats importStats
	if err := st.LoadCategories(ctx, ""); err != nil {
		return stats, fmt.Errorf("failed to load categories: %w", err)
	}

	for _, ac := range archive.Categories {
		if _, err := st.CategoryIndex(ac.Name); errors.Is(err, store.ErrInvalidCategory) {
			if err := st.AddCategory(ctx, ac.Name); err != nil {
				return stats, fmt.Errorf("failed to add category %q: %w", ac.Name, err)
			}
			stats.Categories++
		}

		for _, an := range ac.Notes {
			note, err := restoreNote(ac.Name, an)
			if err != nil {
				return stats, err
			}
			if _, err := st.FindNote(ctx, note.ID); err == nil {
				stats.Skipped++
				continue
			}
			if err := st.AddNote(ctx, note); err != nil {
				return stats, fmt.Errorf("failed to import %q: %w", an.Title, err)
			}
			stats.Notes++
		}
	}
	return stats, nil
}

func restoreNote(category string, an ArchiveNote) (*models.Note, error) {
	note := models.NewNote(category, an.Title, an.Message)
	if id, err := uuid.Parse(an.ID); err == nil {
		note.ID = id
	}
	if !an.Date.IsZero() {
		note.Date = an.Date
	}
	note.AudioRef = an.AudioRef
	if an.Latitude != nil && an.Longitude != nil {
		note.Location = &models.Location{Latitude: *an.Latitude, Longitude: *an.Longitude}
	}
	if an.Image != "" {
		data, err := base64.StdEncoding.DecodeString(an.Image)
		if err != nil {
			return nil, fmt.Errorf("invalid image in %q: %w", an.Title, err)
		}
		note.Image = models.NewImage(data)
	}
	return note, nil
}

func init() {
	importCmd.Flags().StringP("format", "F", "yaml", "archive format: yaml or json")
	rootCmd.AddCommand(importCmd)
}
