// ABOUTME: Export command for backing up categories and notes.
// ABOUTME: Writes a YAML or JSON archive; images are base64 encoded.

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/store"
	"github.com/harper/folio/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const archiveVersion = "1.0"

type Archive struct {
	ExportedAt time.Time         `json:"exported_at" yaml:"exported_at"`
	Version    string            `json:"version" yaml:"version"`
	Categories []ArchiveCategory `json:"categories" yaml:"categories"`
}

type ArchiveCategory struct {
	Name  string        `json:"name" yaml:"name"`
	Notes []ArchiveNote `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type ArchiveNote struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Message   string    `json:"message,omitempty" yaml:"message,omitempty"`
	Date      time.Time `json:"date" yaml:"date"`
	AudioRef  string    `json:"audio_ref,omitempty" yaml:"audio_ref,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Image     string    `json:"image,omitempty" yaml:"image,omitempty"` // base64 encoded
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export categories and notes",
	Long:  `Export every category and its notes to a YAML or JSON archive.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		if !cmd.Flags().Changed("format") {
			format = formatFor(outputPath, format)
		}

		archive, err := buildArchive(cmd.Context(), noteStore)
		if err != nil {
			return err
		}
		data, err := encodeArchive(archive, format)
		if err != nil {
			return err
		}

		if outputPath == "" || outputPath == "-" {
			fmt.Print(string(data))
			return nil
		}
		if err := os.WriteFile(outputPath, data, 0600); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Exported %d categories to %s", len(archive.Categories), outputPath)))
		return nil
	},
}

// buildArchive walks every category through the store. Categories sharing a
// name are written once.
func buildArchive(ctx context.Context, st *store.Store) (*Archive, error) {
	if err := st.LoadCategories(ctx, ""); err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	archive := &Archive{ExportedAt: models.Now(), Version: archiveVersion}
	seen := make(map[string]bool)
	for i, c := range st.Categories() {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true

		if err := st.LoadNotes(ctx, i, nil); err != nil {
			return nil, fmt.Errorf("failed to load notes of %q: %w", c.Name, err)
		}
		ac := ArchiveCategory{Name: c.Name}
		for _, n := range st.Notes() {
			ac.Notes = append(ac.Notes, archiveNote(n))
		}
		archive.Categories = append(archive.Categories, ac)
	}
	return archive, nil
}

func archiveNote(n *models.Note) ArchiveNote {
	an := ArchiveNote{
		ID:       n.ID.String(),
		Title:    n.Title,
		Message:  n.Message,
		Date:     n.Date,
		AudioRef: n.AudioRef,
	}
	if loc := n.Location; loc != nil {
		lat, long := loc.Latitude, loc.Longitude
		an.Latitude, an.Longitude = &lat, &long
	}
	if n.HasImage() {
		an.Image = base64.StdEncoding.EncodeToString(n.Image.Data)
	}
	return an
}

func encodeArchive(a *Archive, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(a)
	case "json":
		data, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// formatFor picks the archive format from a file extension.
func formatFor(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return fallback
	}
}

func init() {
	exportCmd.Flags().StringP("format", "F", "yaml", "archive format: yaml or json")
	exportCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
