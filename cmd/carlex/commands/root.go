// Copyright (c) 2026 Carlex. All rights reserved.
// Author: minh.dao.autos@gmail.com

// Package commands defines the carlex CLI surface. Subcommands live one
// per file; shared wiring lives in helpers.go.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "carlex",
	Short: "Carlex catalog maintenance - resolution, dedup, and cleanup jobs",
	Long: `Carlex maintains the vehicle catalog behind the encyclopedia: it links
scraped movie/game appearances to catalog generations, merges duplicate
generations and appearances, strips scraper artifacts from names, and
reports on resolution coverage.

Jobs are batch-sequential and resumable: progress is checkpointed in
Redis after every batch, so an interrupted run picks up where it left
off.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
