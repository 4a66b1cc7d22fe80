// ABOUTME: Root command wiring: configuration, logging, backend and store setup.
// ABOUTME: Every subcommand shares the store opened here.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harper/folio/internal/config"
	"github.com/harper/folio/internal/db"
	"github.com/harper/folio/internal/kv"
	"github.com/harper/folio/internal/repository"
	"github.com/harper/folio/internal/repository/memory"
	"github.com/harper/folio/internal/store"
	"github.com/harper/folio/internal/ui"
	"github.com/spf13/cobra"
)

// noStore marks commands that run without opening a backend.
const noStore = "no-store"

var (
	cfg       *config.Config
	logger    *log.Logger
	repo      repository.Repository
	noteStore *store.Store
)

var rootCmd = &cobra.Command{
	Use:           "folio",
	Short:         "Notes filed under categories",
	Long:          `folio keeps notes (title, message, date, image, audio reference, location) filed under named categories.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}
		logger = newLogger(cfg)

		if cmd.Annotations[noStore] != "" {
			return nil
		}

		repo, err = openRepository(cfg)
		if err != nil {
			return err
		}
		noteStore = store.New(repo, storeOptions(cfg)...)
		logger.Debug("opened store", "backend", cfg.Backend)

		if err := noteStore.LoadCategories(cmd.Context(), ""); err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

func Execute() error {
	rootCmd.Version = fmt.Sprintf("%s (%s, %s)", version, commit, date)
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		_ = closeStore()
	}
	return err
}

// loadConfig reads the config file and lets flags override it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		c.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("data-dir") {
		c.DataDir, _ = flags.GetString("data-dir")
	}
	if flags.Changed("log-level") {
		c.LogLevel, _ = flags.GetString("log-level")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func newLogger(c *config.Config) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           c.Level(),
		Prefix:          "folio",
		ReportTimestamp: c.Level() == log.DebugLevel,
	})
}

func openRepository(c *config.Config) (repository.Repository, error) {
	switch c.Backend {
	case config.BackendMemory:
		return memory.NewRepository(), nil
	case config.BackendBadger:
		dir := c.BadgerDir()
		if dir == "" {
			dir = kv.DefaultDir()
		}
		r, err := kv.Open(dir)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		path := c.SQLitePath()
		if path == "" {
			path = db.DefaultPath()
		}
		r, err := db.Open(path)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}

func storeOptions(c *config.Config) []store.Option {
	opts := []store.Option{store.WithLogger(logger.WithPrefix("store"))}
	if c.UniqueCategories {
		opts = append(opts, store.WithUniqueCategories())
	}
	if c.CascadeRename {
		opts = append(opts, store.WithCascadeRename())
	}
	if c.NonAtomicUpdates {
		opts = append(opts, store.WithNonAtomicUpdates())
	}
	return opts
}

func closeStore() error {
	if noteStore != nil {
		_ = noteStore.Close()
		noteStore = nil
	}
	if repo != nil {
		err := repo.Close()
		repo = nil
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("backend", "", "storage backend: sqlite, badger or memory")
	rootCmd.PersistentFlags().String("data-dir", "", "directory for the database files")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
}
