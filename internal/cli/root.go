// Package cli implements the notes command line. Every command opens the
// store, runs one operation and closes it again.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"example.com/notes-store/internal/config"
	"example.com/notes-store/internal/db"
	"example.com/notes-store/internal/logging"
	"example.com/notes-store/internal/notes"
)

type app struct {
	cfg config.Config
}

// NewRootCommand builds the notes command tree, seeded from the environment.
func NewRootCommand() *cobra.Command {
	a := &app{cfg: config.Load()}
	return a.rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "notes",
		Short:        "Keep short notes in a local SQLite file",
		SilenceUsage: true,
		// --driver may differ from NOTES_DB_DRIVER, so size the pool
		// once flags are parsed.
		PersistentPreRunE: func(*cobra.Command, []string) error {
			a.cfg.ResolvePool()
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.DBPath, "db", a.cfg.DBPath, "SQLite file (default ~/Documents/notes.sqlite)")
	flags.StringVar(&a.cfg.DBDriver, "driver", a.cfg.DBDriver, "database driver: sqlite or postgres")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level: debug, info, warn or error")

	root.AddCommand(
		a.createCmd(),
		a.listCmd(),
		a.saveCmd(),
		a.deleteCmd(),
		a.serveCmd(),
	)
	return root
}

func (a *app) logger(cmd *cobra.Command) *slog.Logger {
	return logging.New(cmd.ErrOrStderr(), logging.ParseLevel(a.cfg.LogLevel), a.cfg.LogFormat)
}

func (a *app) store(log *slog.Logger) *notes.Repository {
	opts := a.cfg.DBOptions()
	return notes.NewRepository(func(ctx context.Context) (*db.DB, error) {
		return db.Open(ctx, opts)
	}, notes.WithLogger(log))
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid note id %q", s)
	}
	return id, nil
}
