package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	catalogapp "github.com/archerandash/storefront/internal/application/catalog"
	"github.com/archerandash/storefront/internal/infrastructure/persistence"
)

func migrationService(e *env) *catalogapp.MigrationService {
	return catalogapp.NewMigrationService(persistence.NewGormProductRepository(e.db), e.log)
}

func newMigrateCategoriesCmd(setup setupFunc) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate-categories",
		Short: "Move legacy product categories into the categories list",
		RunE: run(setup, func(ctx context.Context, cmd *cobra.Command, e *env) error {
			svc := migrationService(e)
			out := cmd.OutOrStdout()

			if dryRun {
				status, err := svc.CategoryStatus(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s still on the legacy category field\n",
					humanize.Comma(status.NeedsMigration), plural(status.NeedsMigration, "product", "products"))
				return nil
			}

			report, err := svc.MigrateCategories(ctx)
			if err != nil {
				return err
			}
			printResults(out, report.Results)
			fmt.Fprintf(out, "Migrated %s of %s %s\n",
				humanize.Comma(int64(report.Migrated)),
				humanize.Comma(int64(len(report.Results))),
				plural(int64(len(report.Results)), "product", "products"))
			return nil
		}),
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only count the products that need migrating")
	return cmd
}

func newBackfillSlugsCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "backfill-slugs",
		Short: "Generate slugs for products that have none",
		RunE: run(setup, func(ctx context.Context, cmd *cobra.Command, e *env) error {
			report, err := migrationService(e).BackfillSlugs(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printResults(out, report.Details)
			fmt.Fprintf(out, "%s: %s found, %s updated, %s failed\n",
				report.Message,
				humanize.Comma(int64(report.Summary.TotalFound)),
				humanize.Comma(int64(report.Summary.Updated)),
				humanize.Comma(int64(report.Summary.Errors)))
			return nil
		}),
	}
}

func printResults(out io.Writer, results []catalogapp.MigrationResult) {
	for _, r := range results {
		line := fmt.Sprintf("  %-8s %s  %s", r.Status, r.ID, r.Title)
		if r.Slug != "" {
			line += " -> " + r.Slug
		}
		if r.Reason != "" {
			line += " (" + r.Reason + ")"
		}
		fmt.Fprintln(out, line)
	}
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
