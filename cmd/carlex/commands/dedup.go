// Copyright (c) 2026 Carlex. All rights reserved.
// Author: minh.dao.autos@gmail.com

package commands

import (
	"github.com/spf13/cobra"

	"github.com/minhdao/carlex/internal/appearance"
	"github.com/minhdao/carlex/internal/catalog"
	"github.com/minhdao/carlex/internal/job"
)

var dedupCmd = &cobra.Command{
	Use:   "dedup",
	Short: "Merge duplicate generations, then duplicate appearances",
	Long: `Finds generations that share a model and internal code and merges each
group into its earliest member: dependent rows are re-pointed first, the
duplicates are deleted after, all inside one transaction per group. A
second pass removes resolved appearances that describe the same sighting.`,
	RunE: runDedup,
}

func init() {
	rootCmd.AddCommand(dedupCmd)
}

func runDedup(cmd *cobra.Command, args []string) error {
	ctx, cancel := jobContext()
	defer cancel()

	rt, cleanup, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	dedupJob := job.NewDedupJob(
		catalog.NewPostgresRepository(rt.pool),
		appearance.NewPostgresRepository(rt.pool),
		rt.storeLimiter(),
		rt.logger,
		rt.batchSize(),
	)

	summary, err := dedupJob.Run(ctx)
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}
