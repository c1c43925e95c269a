package catalog

import (
	"context"
	"log/slog"

	"github.com/minhdao/carlex/internal/platform/validate"
	"github.com/minhdao/carlex/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// RenameModel renames a model, merging it into an existing model when the
// target name is already taken under the same brand.
//
// # Merge-by-rename
//
// Cleanup runs routinely map a scraped name ("Three Series") onto a name
// that already exists as a different row ("3 Series"). In that case the
// model being renamed is redundant: its child generations are re-pointed
// to the existing row and the redundant model is deleted. Otherwise it is
// a plain rename. The returned flag reports whether a merge happened.
func (service *Service) RenameModel(context context.Context, modelID, brandID int64, newName string) (bool, error) {
	v := &validate.Validator{}
	if err := v.Required("name", newName).MaxLen("name", newName, 128).Err(); err != nil {
		return false, err
	}

	existing, err := service.repo.FindModelByName(context, brandID, newName)
	if err != nil {
		return false, err
	}

	if existing != nil && existing.ID != modelID {
		moved, err := service.repo.MergeModels(context, existing.ID, modelID)
		if err != nil {
			return false, err
		}
		service.logger.Info("model_merged_by_rename",
			slog.Int64("kept_model_id", existing.ID),
			slog.Int64("dropped_model_id", modelID),
			slog.Int64("generations_moved", moved),
		)
		return true, nil
	}

	if err := service.repo.RenameModel(context, modelID, newName, slug.From(newName)); err != nil {
		return false, err
	}

	service.logger.Info("model_renamed",
		slog.Int64("model_id", modelID),
		slog.String("new_name", newName),
	)
	return false, nil
}
