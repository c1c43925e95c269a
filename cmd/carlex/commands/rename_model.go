// Copyright (c) 2026 Carlex. All rights reserved.
// Author: minh.dao.autos@gmail.com

package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/minhdao/carlex/internal/catalog"
)

var (
	renameModelID int64
	renameBrandID int64
	renameNewName string
)

var renameModelCmd = &cobra.Command{
	Use:   "rename-model",
	Short: "Rename a model, merging into an existing model on name collision",
	Long: `Renames a model in place. When another model of the same brand already
carries the target name, the renamed model is redundant: its generations
are re-pointed to the existing model and the redundant row is deleted.`,
	RunE: runRenameModel,
}

func init() {
	renameModelCmd.Flags().Int64Var(&renameModelID, "model", 0, "model id to rename (required)")
	renameModelCmd.Flags().Int64Var(&renameBrandID, "brand", 0, "brand id the model belongs to (required)")
	renameModelCmd.Flags().StringVar(&renameNewName, "name", "", "new display name (required)")
	renameModelCmd.MarkFlagRequired("model")
	renameModelCmd.MarkFlagRequired("brand")
	renameModelCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(renameModelCmd)
}

func runRenameModel(cmd *cobra.Command, args []string) error {
	ctx, cancel := jobContext()
	defer cancel()

	rt, cleanup, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	service := catalog.NewService(catalog.NewPostgresRepository(rt.pool), rt.logger)

	merged, err := service.RenameModel(ctx, renameModelID, renameBrandID, renameNewName)
	if err != nil {
		return err
	}

	if merged {
		color.New(color.FgYellow).Printf("model %d merged into existing %q\n", renameModelID, renameNewName)
		return nil
	}
	fmt.Printf("model %d renamed to %q\n", renameModelID, renameNewName)
	return nil
}
