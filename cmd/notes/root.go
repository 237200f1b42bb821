package main

import (
	"context"

	"github.com/spf13/cobra"

	"notekeeper/internal/app"
	"notekeeper/internal/config"
	"notekeeper/internal/logging"
)

// cli carries the global flags and the core built for the running command.
type cli struct {
	verbose bool
	driver  string
	dbPath  string

	core *app.App
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "notes",
		Short: "Keep notes in a local store",
		Long: `notes creates, lists, edits and deletes notes kept in a local SQLite file
(or Postgres, when STORE_DRIVER=postgres). Searching ignores case and accents.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.core == nil {
				return nil
			}
			return c.core.Close()
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVar(&c.driver, "driver", "", "Store driver: sqlite, postgres or memory (default from STORE_DRIVER)")
	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "SQLite file path (default from SQLITE_PATH)")

	root.AddCommand(
		newListCmd(c),
		newAddCmd(c),
		newEditCmd(c),
		newShowCmd(c),
		newRmCmd(c),
		newDupCmd(c),
		newQuickCmd(c),
		newExportCmd(c),
	)
	return root
}

func (c *cli) open(cmd *cobra.Command) error {
	cfg := config.Load()
	if c.driver != "" {
		cfg.Store.Driver = c.driver
	}
	if c.dbPath != "" {
		cfg.Store.SQLitePath = c.dbPath
	}

	level := "warn"
	if c.verbose {
		level = "debug"
	}
	logger := logging.New(cmd.ErrOrStderr(), level, logging.Location(cfg.TimeZone))

	core, err := app.New(ctxOf(cmd), cfg, logger, nil)
	if err != nil {
		return err
	}
	c.core = core
	return nil
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
