// ABOUTME: Note add command for creating notes in a category.
// ABOUTME: Message comes from --message, --file, or $EDITOR.

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/ui"
	"github.com/spf13/cobra"
)

var noteAddCmd = &cobra.Command{
	Use:   "add <category> <title>",
	Short: "Add a note to a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		messageFlag, _ := flags.GetString("message")
		fileFlag, _ := flags.GetString("file")
		editFlag, _ := flags.GetBool("edit")
		imageFlag, _ := flags.GetString("image")
		audioFlag, _ := flags.GetString("audio")

		note := models.NewNote(args[0], args[1], "")
		note.AudioRef = audioFlag

		switch {
		case messageFlag != "":
			note.Message = messageFlag
		case fileFlag != "":
			data, err := os.ReadFile(fileFlag) //nolint:gosec // User-specified file path is expected CLI behavior
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			note.Message = string(data)
		case editFlag:
			message, err := openEditor("")
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
			note.Message = message
		}

		if imageFlag != "" {
			img, err := readImage(imageFlag)
			if err != nil {
				return err
			}
			note.Image = img
		}
		if flags.Changed("lat") != flags.Changed("long") {
			return fmt.Errorf("--lat and --long must be given together")
		}
		if flags.Changed("lat") {
			lat, _ := flags.GetFloat64("lat")
			long, _ := flags.GetFloat64("long")
			note.Location = &models.Location{Latitude: lat, Longitude: long}
		}

		if err := noteStore.AddNote(cmd.Context(), note); err != nil {
			return fmt.Errorf("failed to add note: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Added note %s to %q", note.ID.String()[:6], note.CategoryName)))
		return nil
	},
}

func openEditor(initial string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	tmpFile, err := os.CreateTemp("", "folio-*.md")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(tmpFile.Name()) // Best-effort cleanup
	}()

	if initial != "" {
		if _, err := tmpFile.WriteString(initial); err != nil {
			_ = tmpFile.Close()
			return "", fmt.Errorf("failed to write initial content: %w", err)
		}
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	cmd := exec.Command(editor, tmpFile.Name()) //nolint:gosec // Launching $EDITOR is expected CLI behavior
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func init() {
	noteAddCmd.Flags().StringP("message", "m", "", "note message (inline)")
	noteAddCmd.Flags().String("file", "", "read message from file")
	noteAddCmd.Flags().BoolP("edit", "e", false, "write the message in $EDITOR")
	noteAddCmd.Flags().String("image", "", "attach an image file")
	noteAddCmd.Flags().String("audio", "", "audio file reference")
	noteAddCmd.Flags().Float64("lat", 0, "latitude")
	noteAddCmd.Flags().Float64("long", 0, "longitude")
	noteCmd.AddCommand(noteAddCmd)
}
