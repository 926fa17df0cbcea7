package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"example.com/notes-store/internal/notes"
	"example.com/notes-store/internal/stringsx"
)

const previewWidth = 60

func (a *app) createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a note with placeholder content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo := a.store(a.logger(cmd))
			defer repo.Close()

			id, err := repo.Create(cmd.Context())
			if err != nil {
				return fmt.Errorf("creating note: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo := a.store(a.logger(cmd))
			defer repo.Close()

			items, err := repo.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing notes: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No notes yet.")
				return nil
			}
			for _, n := range items {
				fmt.Fprintf(out, "%d\t%s\n", n.ID, stringsx.Preview(n.Content, previewWidth))
			}
			fmt.Fprintf(out, "Total: %d notes\n", len(items))
			return nil
		},
	}
}

func (a *app) saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save [id] [content...]",
		Short: "Replace the content of a note",
		Long:  `Replace the content of a note. Remaining arguments are joined with spaces.`,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			repo := a.store(a.logger(cmd))
			defer repo.Close()

			n := notes.Note{ID: id, Content: strings.Join(args[1:], " ")}
			if err := repo.Save(cmd.Context(), n); err != nil {
				return fmt.Errorf("saving note %d: %w", id, err)
			}
			return nil
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			repo := a.store(a.logger(cmd))
			defer repo.Close()

			if err := repo.Delete(cmd.Context(), notes.Note{ID: id}); err != nil {
				return fmt.Errorf("deleting note %d: %w", id, err)
			}
			return nil
		},
	}
}

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the notes HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := a.logger(cmd)
			repo := a.store(log)
			defer repo.Close()

			if err := repo.Connect(cmd.Context()); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return notes.NewHandlers(repo, log).Serve(ctx, a.cfg.HTTPAddr)
		},
	}
	cmd.Flags().StringVar(&a.cfg.HTTPAddr, "addr", a.cfg.HTTPAddr, "listen address")
	return cmd
}
