// Copyright (c) 2026 Carlex. All rights reserved.
// Author: minh.dao.autos@gmail.com

package commands

import (
	"github.com/spf13/cobra"

	"github.com/minhdao/carlex/internal/catalog"
	"github.com/minhdao/carlex/internal/job"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Strip scraper artifacts from engine variant names",
	Long: `Rewrites engine variant names that still carry scraper junk:
"undefined"/"null"/"NaN" tokens and trailing "Specs" page-title suffixes.
Casing and accents are preserved. The pass is idempotent.`,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	ctx, cancel := jobContext()
	defer cancel()

	rt, cleanup, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	cleanupJob := job.NewCleanupJob(
		catalog.NewPostgresRepository(rt.pool),
		rt.storeLimiter(),
		rt.logger,
		rt.batchSize(),
	)

	summary, err := cleanupJob.Run(ctx)
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}
