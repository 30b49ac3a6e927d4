package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sundayezeilo/websitio/internal/siteconfig"
)

func auditCommand(open opener) *cobra.Command {
	var failOnProblem bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Check that every client's canonical slug routes back to it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			be, err := open(ctx, false)
			if err != nil {
				return err
			}
			defer be.Close()

			audits, err := be.Service.AuditSlugs(ctx)
			if err != nil {
				return fmt.Errorf("audit slugs: %w", err)
			}
			if len(audits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No clients found.")
				return nil
			}

			problems := 0
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSLUG\tSTATUS")
			for _, a := range audits {
				status := "ok"
				if !a.OK {
					status = a.Problem
					problems++
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", a.ID, a.Name, dash(a.Slug), status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if failOnProblem && problems > 0 {
				return fmt.Errorf("%d of %d clients have unroutable slugs", problems, len(audits))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failOnProblem, "strict", false, "Exit non-zero when any slug is unroutable")
	return cmd
}

func duplicatesCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicates",
		Short: "List configs that share a business name",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			be, err := open(ctx, false)
			if err != nil {
				return err
			}
			defer be.Close()

			groups, err := be.Service.FindDuplicates(ctx)
			if err != nil {
				return fmt.Errorf("find duplicates: %w", err)
			}
			return printGroups(cmd.OutOrStdout(), groups)
		},
	}
}

func cleanupCommand(open opener) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete every duplicate config except the newest of each name",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			be, err := open(ctx, false)
			if err != nil {
				return err
			}
			defer be.Close()

			report, err := be.Service.CleanupDuplicates(ctx, dryRun)
			if err != nil {
				return fmt.Errorf("cleanup duplicates: %w", err)
			}

			out := cmd.OutOrStdout()
			if err := printGroups(out, report.Groups); err != nil {
				return err
			}
			if report.DryRun {
				fmt.Fprintln(out, "Dry run: nothing deleted.")
				return nil
			}

			fmt.Fprintf(out, "Deleted %d configs.\n", len(report.Deleted))
			for _, f := range report.Failed {
				fmt.Fprintf(out, "failed to delete %d: %s\n", f.ID, f.Err)
			}
			if len(report.Failed) > 0 {
				return fmt.Errorf("%d deletions failed", len(report.Failed))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be deleted without deleting")
	return cmd
}

func printGroups(w io.Writer, groups []siteconfig.DuplicateGroup) error {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No duplicates found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tID\tCREATED_AT\tACTION")
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\t%d\t%s\tkeep\n", g.Name, g.Keep.ID, formatTime(g.Keep.CreatedAt))
		for _, cfg := range g.Remove {
			fmt.Fprintf(tw, "%s\t%d\t%s\tremove\n", g.Name, cfg.ID, formatTime(cfg.CreatedAt))
		}
	}
	return tw.Flush()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// withTimeout is used by commands that talk to the database outside a request.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 2*time.Minute)
}
