// ABOUTME: Category command for managing categories.
// ABOUTME: Provides list, add, rm, and rename subcommands.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/harper/folio/internal/ui"
	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage categories",
	Long:    `List, add, remove, or rename categories.`,
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with note counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, _ := cmd.Flags().GetString("filter")

		if err := noteStore.LoadCategories(cmd.Context(), filter); err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}

		cats := noteStore.Categories()
		if len(cats) == 0 {
			fmt.Print(ui.Empty("categories found"))
			return nil
		}
		fmt.Print(ui.FormatCategoryList(cats))
		return nil
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := noteStore.AddCategory(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to add category: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Added category %q", strings.TrimSpace(args[0]))))
		return nil
	},
}

var categoryRmCmd = &cobra.Command{
	Use:   "rm <name>...",
	Short: "Remove categories and their notes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		indices := make([]int, len(args))
		total := 0
		for i, name := range args {
			idx, err := noteStore.CategoryIndex(name)
			if err != nil {
				return err
			}
			indices[i] = idx
			count, _ := noteStore.NoteCountForCategory(idx)
			total += count
		}

		if !force && !confirm(fmt.Sprintf("Delete %d categories and %d notes?", len(args), total)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := noteStore.RemoveCategories(cmd.Context(), indices); err != nil {
			return fmt.Errorf("failed to remove categories: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Removed %s", strings.Join(args, ", "))))
		return nil
	},
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <name> <new-name>",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := noteStore.CategoryIndex(args[0])
		if err != nil {
			return err
		}

		if err := noteStore.UpdateCategory(cmd.Context(), idx, args[1]); err != nil {
			return fmt.Errorf("failed to rename category: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Renamed %q to %q", args[0], strings.TrimSpace(args[1]))))
		return nil
	},
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func init() {
	categoryListCmd.Flags().StringP("filter", "s", "", "only categories containing this text")
	categoryRmCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryRmCmd)
	categoryCmd.AddCommand(categoryRenameCmd)
	rootCmd.AddCommand(categoryCmd)
}
