// ABOUTME: Note edit command for replacing a note's fields.
// ABOUTME: Without field flags the message opens in $EDITOR.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/ui"
	"github.com/spf13/cobra"
)

var noteEditCmd = &cobra.Command{
	Use:   "edit <category> <position|id-prefix>",
	Short: "Edit a note",
	Long:  `Replace a note's fields. The note keeps its ID and date. Moving to another category is allowed with --category.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		if err := loadCategoryNotes(cmd.Context(), args[0], nil); err != nil {
			return err
		}
		idx, err := resolveNote(args[1])
		if err != nil {
			return err
		}
		old, err := noteStore.Note(idx)
		if err != nil {
			return err
		}
		edited := old.Clone()

		if !anyChanged(cmd, editFlags...) {
			message, err := openEditor(old.Message)
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
			edited.Message = strings.TrimRight(message, "\n")
		}
		if flags.Changed("title") {
			edited.Title, _ = flags.GetString("title")
		}
		if flags.Changed("message") {
			edited.Message, _ = flags.GetString("message")
		}
		if flags.Changed("file") {
			path, _ := flags.GetString("file")
			data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			edited.Message = string(data)
		}
		if flags.Changed("category") {
			edited.CategoryName, _ = flags.GetString("category")
		}
		if flags.Changed("audio") {
			edited.AudioRef, _ = flags.GetString("audio")
		}
		if drop, _ := flags.GetBool("clear-image"); drop {
			edited.Image = nil
		}
		if flags.Changed("image") {
			path, _ := flags.GetString("image")
			if edited.Image, err = readImage(path); err != nil {
				return err
			}
		}
		if drop, _ := flags.GetBool("clear-location"); drop {
			edited.Location = nil
		}
		if flags.Changed("lat") || flags.Changed("long") {
			loc := models.Location{}
			if edited.Location != nil {
				loc = *edited.Location
			}
			if flags.Changed("lat") {
				loc.Latitude, _ = flags.GetFloat64("lat")
			}
			if flags.Changed("long") {
				loc.Longitude, _ = flags.GetFloat64("long")
			}
			edited.Location = &loc
		}

		if err := noteStore.UpdateNoteAt(cmd.Context(), idx, edited); err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Updated note %s", edited.ID.String()[:6])))
		return nil
	},
}

var editFlags = []string{
	"title", "message", "file", "category", "audio",
	"image", "clear-image", "lat", "long", "clear-location",
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func init() {
	noteEditCmd.Flags().String("title", "", "new title")
	noteEditCmd.Flags().StringP("message", "m", "", "new message")
	noteEditCmd.Flags().String("file", "", "read new message from file")
	noteEditCmd.Flags().String("category", "", "file under another category")
	noteEditCmd.Flags().String("audio", "", "new audio reference; empty clears it")
	noteEditCmd.Flags().String("image", "", "replace the image with this file")
	noteEditCmd.Flags().Bool("clear-image", false, "remove the image")
	noteEditCmd.Flags().Float64("lat", 0, "new latitude")
	noteEditCmd.Flags().Float64("long", 0, "new longitude")
	noteEditCmd.Flags().Bool("clear-location", false, "remove the location")
	noteCmd.AddCommand(noteEditCmd)
}
