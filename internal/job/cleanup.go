package job

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/minhdao/carlex/internal/catalog"
	"github.com/minhdao/carlex/internal/platform/constants"
	"github.com/minhdao/carlex/pkg/normalize"
	"github.com/minhdao/carlex/pkg/slice"
)

// VariantCleaner is the slice of the catalog store the cleanup job needs.
type VariantCleaner interface {
	ListEngineVariants(ctx context.Context, afterID int64, limit int) ([]catalog.EngineVariant, error)
	UpdateEngineVariantName(ctx context.Context, id int64, name string) error
}

// CleanupJob strips scraping artifacts ("undefined", "null", trailing
// "Specs") out of engine variant names. Display casing and accents are
// kept; only the artifact tokens go.
type CleanupJob struct {
	catalog   VariantCleaner
	limiter   *rate.Limiter
	logger    *slog.Logger
	batchSize int
}

func NewCleanupJob(
	catalogStore VariantCleaner,
	limiter *rate.Limiter,
	logger *slog.Logger,
	batchSize int,
) *CleanupJob {
	return &CleanupJob{
		catalog:   catalogStore,
		limiter:   limiter,
		logger:    logger.With(slog.String("job", constants.JobCleanup)),
		batchSize: batchSize,
	}
}

// Run executes one cleanup pass and returns its summary. The pass is
// idempotent: cleaning a clean name is a no-op, and names are only written
// when they actually change.
func (job *CleanupJob) Run(ctx context.Context) (*Summary, error) {
	summary := newSummary(constants.JobCleanup)

	job.logger.Info("cleanup_run_started", slog.String("run_id", summary.RunID))

	var afterID int64
	for {
		if err := job.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		batch, err := job.catalog.ListEngineVariants(ctx, afterID, job.batchSize)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		dirty := slice.Filter(batch, func(v catalog.EngineVariant) bool {
			return normalize.HasArtifacts(v.Name)
		})
		for _, variant := range dirty {
			cleaned := normalize.Clean(variant.Name)
			if cleaned == variant.Name {
				continue
			}

			if err := job.catalog.UpdateEngineVariantName(ctx, variant.ID, cleaned); err != nil {
				summary.Errored++
				job.logger.Error("variant_cleanup_failed",
					slog.Int64("variant_id", variant.ID),
					slog.String("error", err.Error()),
				)
				continue
			}

			summary.Cleaned++
			job.logger.Debug("variant_cleaned",
				slog.Int64("variant_id", variant.ID),
				slog.String("before", variant.Name),
				slog.String("after", cleaned),
			)
		}

		afterID = batch[len(batch)-1].ID
		if len(batch) < job.batchSize {
			break
		}
	}

	job.logger.Info("cleanup_run_finished",
		slog.String("run_id", summary.RunID),
		slog.Int64("cleaned", summary.Cleaned),
		slog.Int64("errored", summary.Errored),
	)

	return summary.finish(), nil
}
