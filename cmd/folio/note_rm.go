// ABOUTME: Note rm command for deleting notes.
// ABOUTME: Includes confirmation prompt before deletion.

package main

import (
	"fmt"

	"github.com/harper/folio/internal/ui"
	"github.com/spf13/cobra"
)

var noteRmCmd = &cobra.Command{
	Use:   "rm <category> <position|id-prefix>...",
	Short: "Remove notes",
	Long:  `Delete one or more notes from a category. Positions refer to 'note list' output and may be given in any order.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if err := loadCategoryNotes(cmd.Context(), args[0], nil); err != nil {
			return err
		}
		indices, err := resolveNotes(args[1:])
		if err != nil {
			return err
		}

		if !force {
			prompt := fmt.Sprintf("Delete %d notes?", len(indices))
			if len(indices) == 1 {
				note, _ := noteStore.Note(indices[0])
				prompt = fmt.Sprintf("Delete note %q (%s)?", note.Title, note.ID.String()[:6])
			}
			if !confirm(prompt) {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := noteStore.DeleteNotesAt(cmd.Context(), indices); err != nil {
			return fmt.Errorf("failed to delete notes: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Deleted %d notes", len(indices))))
		return nil
	},
}

func init() {
	noteRmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	noteCmd.AddCommand(noteRmCmd)
}
