// Copyright (c) 2026 Carlex. All rights reserved.
// Author: minh.dao.autos@gmail.com

package commands

import (
	"github.com/spf13/cobra"

	"github.com/minhdao/carlex/internal/appearance"
	"github.com/minhdao/carlex/internal/catalog"
	"github.com/minhdao/carlex/internal/job"
	"github.com/minhdao/carlex/internal/resolve"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Link unresolved appearances to catalog generations",
	Long: `Builds a candidate index from the current catalog and resolves every
unlinked appearance against it, tier by tier (exact chassis code, then
brand+model, then fuzzy overlap). Fuzzy links are flagged for review in
the summary. Resumes from the last checkpoint if a previous run was
interrupted.`,
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx, cancel := jobContext()
	defer cancel()

	rt, cleanup, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	resolveJob := job.NewResolveJob(
		catalog.NewPostgresRepository(rt.pool),
		appearance.NewPostgresRepository(rt.pool),
		resolve.NewResolver(resolve.DefaultAliasTable(), resolve.DefaultGrammarTable()),
		job.NewRedisCheckpointStore(rt.redis, rt.checkpointTTL()),
		rt.storeLimiter(),
		rt.logger,
		rt.batchSize(),
	)

	summary, err := resolveJob.Run(ctx)
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}
