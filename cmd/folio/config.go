// ABOUTME: Config command for inspecting and initializing folio settings.
// ABOUTME: Runs without opening a storage backend.

package main

import (
	"fmt"

	"github.com/harper/folio/internal/config"
	"github.com/harper/folio/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Show or initialize configuration",
	Annotations: map[string]string{noStore: "true"},
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Print the effective configuration",
	Annotations: map[string]string{noStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("# %s\n", config.ConfigPath())
		fmt.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a config file with the current settings",
	Annotations: map[string]string{noStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if config.ConfigExists() && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", config.ConfigPath())
		}

		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wrote %s", config.ConfigPath())))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing config")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
