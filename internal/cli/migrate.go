package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/sundayezeilo/websitio/internal/db/migrations"
)

func migrateCommand(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect database migrations",
	}

	run := func(apply bool) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := withTimeout(cmd.Context())
			defer cancel()

			// Opening with apply=true runs goose up before returning.
			be, err := open(ctx, apply)
			if err != nil {
				return err
			}
			defer be.Close()
			if be.Pool == nil {
				return errNoDatabase
			}
			return printMigrationStatus(ctx, cmd.OutOrStdout(), be.Pool)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE:  run(true),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show which migrations have been applied",
		RunE:  run(false),
	})
	return cmd
}

func printMigrationStatus(ctx context.Context, w io.Writer, pool *pgxpool.Pool) error {
	statuses, err := migrations.Status(ctx, pool)
	if err != nil {
		return fmt.Errorf("migration status: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tFILE\tAPPLIED_AT")
	for _, st := range statuses {
		applied := "pending"
		if st.Applied {
			applied = formatTime(st.AppliedAt)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", st.Version, st.Path, applied)
	}
	return tw.Flush()
}
