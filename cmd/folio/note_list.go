// ABOUTME: Note list command for displaying the notes of a category.
// ABOUTME: Supports text search, date range and attachment filters.

package main

import (
	"fmt"

	"github.com/harper/folio/internal/repository"
	"github.com/harper/folio/internal/ui"
	"github.com/spf13/cobra"
)

var noteListCmd = &cobra.Command{
	Use:   "list <category>",
	Short: "List notes in a category",
	Long:  `List the notes filed under a category, sorted by title. Search ignores case and accents.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		search, _ := flags.GetString("search")
		since, _ := flags.GetString("since")
		until, _ := flags.GetString("until")
		hasImage, _ := flags.GetBool("image")
		hasAudio, _ := flags.GetBool("audio")
		hasLocation, _ := flags.GetBool("location")

		filter := &repository.NoteFilter{
			Search:      search,
			HasImage:    hasImage,
			HasAudio:    hasAudio,
			HasLocation: hasLocation,
		}
		var err error
		if filter.Since, err = parseDate(since); err != nil {
			return fmt.Errorf("invalid --since: %w", err)
		}
		if filter.Until, err = parseDate(until); err != nil {
			return fmt.Errorf("invalid --until: %w", err)
		}

		if err := loadCategoryNotes(cmd.Context(), args[0], filter); err != nil {
			return err
		}

		notes := noteStore.Notes()
		if len(notes) == 0 {
			fmt.Print(ui.Empty("notes found"))
			return nil
		}
		for i, note := range notes {
			fmt.Print(ui.FormatNoteListItem(i, note))
		}
		return nil
	},
}

func init() {
	noteListCmd.Flags().StringP("search", "s", "", "text to find in title or message")
	noteListCmd.Flags().String("since", "", "only notes dated on or after (YYYY-MM-DD or RFC 3339)")
	noteListCmd.Flags().String("until", "", "only notes dated before (YYYY-MM-DD or RFC 3339)")
	noteListCmd.Flags().Bool("image", false, "only notes with an image")
	noteListCmd.Flags().Bool("audio", false, "only notes with an audio reference")
	noteListCmd.Flags().Bool("location", false, "only notes with a location")
	noteCmd.AddCommand(noteListCmd)
}
