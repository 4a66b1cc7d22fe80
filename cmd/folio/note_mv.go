// ABOUTME: Note mv command for moving notes between categories.
// ABOUTME: Every other field of a moved note is kept.

package main

import (
	"fmt"

	"github.com/harper/folio/internal/ui"
	"github.com/spf13/cobra"
)

var noteMvCmd = &cobra.Command{
	Use:   "mv <category> <position|id-prefix>... --to <category>",
	Short: "Move notes to another category",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, _ := cmd.Flags().GetString("to")

		if err := loadCategoryNotes(cmd.Context(), args[0], nil); err != nil {
			return err
		}
		indices, err := resolveNotes(args[1:])
		if err != nil {
			return err
		}
		target, err := noteStore.CategoryIndex(to)
		if err != nil {
			return err
		}

		if err := noteStore.MoveNotesAt(cmd.Context(), indices, target); err != nil {
			return fmt.Errorf("failed to move notes: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Moved %d notes to %q", len(indices), to)))
		return nil
	},
}

func init() {
	noteMvCmd.Flags().String("to", "", "target category")
	_ = noteMvCmd.MarkFlagRequired("to")
	noteCmd.AddCommand(noteMvCmd)
}
