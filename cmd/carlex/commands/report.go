// Copyright (c) 2026 Carlex. All rights reserved.
// Author: minh.dao.autos@gmail.com

package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/minhdao/carlex/internal/appearance"
	"github.com/minhdao/carlex/internal/catalog"
	"github.com/minhdao/carlex/internal/job"
	"github.com/minhdao/carlex/internal/resolve"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show resolution coverage and pending duplicate groups",
	Long: `Prints a census of the appearance table (rows linked per confidence
tier, rows still unresolved) and the duplicate generation groups the next
dedup run would merge. Read-only.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, cancel := jobContext()
	defer cancel()

	rt, cleanup, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	header := color.New(color.FgCyan, color.Bold)
	good := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)

	report, err := job.BuildReport(ctx, appearance.NewPostgresRepository(rt.pool))
	if err != nil {
		return err
	}

	header.Printf("appearance resolution (%d rows)\n", report.Total)

	// Tiers print in confidence order, not map order.
	tiers := []resolve.Confidence{
		resolve.ConfidenceExactCode,
		resolve.ConfidenceBrandModel,
		resolve.ConfidenceFuzzy,
	}
	for _, tier := range tiers {
		count := report.ByConfidence[string(tier)]
		line := fmt.Sprintf("  %-12s %d", tier, count)
		if tier == resolve.ConfidenceFuzzy && count > 0 {
			warn.Println(line + "  (review recommended)")
			continue
		}
		good.Println(line)
	}
	warn.Printf("  %-12s %d\n", "unresolved", report.Unresolved)

	catalogRepo := catalog.NewPostgresRepository(rt.pool)
	generations, err := catalogRepo.ListGenerations(ctx)
	if err != nil {
		return err
	}

	groups := catalog.FindDuplicateGenerations(generations)
	header.Printf("\nduplicate generation groups: %d\n", len(groups))
	for _, group := range groups {
		warn.Printf("  model %d code %q: keep %d, merge %d duplicate(s)\n",
			group.ModelID, group.InternalCode, group.Original.ID, len(group.Duplicates))
	}

	return nil
}
