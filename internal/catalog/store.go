package catalog

import "context"

type Repository interface {
	// Snapshot reads
	ListRows(context context.Context) ([]Row, error)
	ListGenerations(context context.Context) ([]Generation, error)
	ListEngineVariants(context context.Context, afterID int64, limit int) ([]EngineVariant, error)
	FindModelByName(context context.Context, brandID int64, name string) (*Model, error)

	// Seed writes
	UpsertBrand(context context.Context, name, slug string) (int64, error)
	UpsertModel(context context.Context, brandID int64, name, slug string) (int64, error)
	CreateGeneration(context context.Context, generation *Generation) error

	// Cleanup writes
	UpdateEngineVariantName(context context.Context, id int64, name string) error
	RenameModel(context context.Context, modelID int64, name, slug string) error

	// Merge operations. Both re-point every dependent row before deleting
	// the redundant entity, inside a single transaction.
	MergeGenerations(context context.Context, originalID int64, duplicateIDs []int64) (map[string]int64, error)
	MergeModels(context context.Context, keepID, dropID int64) (int64, error)
}
