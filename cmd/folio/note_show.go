// ABOUTME: Note show command for displaying a single note.
// ABOUTME: Renders the message with glamour and can write the image to a file.

package main

import (
	"fmt"
	"os"

	"github.com/harper/folio/internal/ui"
	"github.com/spf13/cobra"
)

var noteShowCmd = &cobra.Command{
	Use:   "show <category> <position|id-prefix>",
	Short: "Show a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		imageOut, _ := cmd.Flags().GetString("image-out")

		if err := loadCategoryNotes(cmd.Context(), args[0], nil); err != nil {
			return err
		}
		idx, err := resolveNote(args[1])
		if err != nil {
			return err
		}
		note, err := noteStore.Note(idx)
		if err != nil {
			return err
		}

		fmt.Print(ui.FormatNoteHeader(note))
		if raw {
			fmt.Println(note.Message)
		} else {
			rendered, _ := ui.FormatNoteContent(note.Message)
			fmt.Print(rendered)
		}

		if imageOut != "" {
			if !note.HasImage() {
				return fmt.Errorf("note %s has no image", note.ID.String()[:6])
			}
			if err := os.WriteFile(imageOut, note.Image.Data, 0644); err != nil { //nolint:gosec // User-chosen output file
				return fmt.Errorf("failed to write image: %w", err)
			}
			fmt.Println(ui.Success(fmt.Sprintf("Wrote image to %s", imageOut)))
		}
		return nil
	},
}

func init() {
	noteShowCmd.Flags().Bool("raw", false, "print the message without markdown rendering")
	noteShowCmd.Flags().String("image-out", "", "write the note's image to this file")
	noteCmd.AddCommand(noteShowCmd)
}
