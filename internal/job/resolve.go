package job

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/minhdao/carlex/internal/appearance"
	"github.com/minhdao/carlex/internal/catalog"
	"github.com/minhdao/carlex/internal/platform/apperr"
	"github.com/minhdao/carlex/internal/platform/constants"
	"github.com/minhdao/carlex/internal/resolve"
)

// CatalogReader supplies the catalog snapshot the resolver indexes.
type CatalogReader interface {
	ListRows(ctx context.Context) ([]catalog.Row, error)
}

// AppearanceStore is the slice of the appearance store the resolve job
// needs: paging unlinked rows and writing links.
type AppearanceStore interface {
	ListUnresolved(ctx context.Context, afterID string, limit int) ([]appearance.Appearance, error)
	Link(ctx context.Context, id string, generationID int64, confidence string) error
}

// ResolveJob links unresolved appearances to catalog generations.
//
// The candidate index is built once from a catalog snapshot and never
// refreshed during the run: a mention is resolved against the catalog as
// it stood when the job started. Appearances are paged by keyset cursor,
// the cursor is checkpointed after every batch, and store round trips are
// paced by the limiter. A store failure aborts the run and leaves the
// checkpoint in place for the next attempt.
type ResolveJob struct {
	catalog     CatalogReader
	store       AppearanceStore
	resolver    *resolve.Resolver
	checkpoints Checkpointer
	limiter     *rate.Limiter
	logger      *slog.Logger
	batchSize   int
}

func NewResolveJob(
	catalogStore CatalogReader,
	store AppearanceStore,
	resolver *resolve.Resolver,
	checkpoints Checkpointer,
	limiter *rate.Limiter,
	logger *slog.Logger,
	batchSize int,
) *ResolveJob {
	return &ResolveJob{
		catalog:     catalogStore,
		store:       store,
		resolver:    resolver,
		checkpoints: checkpoints,
		limiter:     limiter,
		logger:      logger.With(slog.String("job", constants.JobResolve)),
		batchSize:   batchSize,
	}
}

// Run executes one resolution pass and returns its summary.
//
// Linking policy: exact_code and brand_model matches are trusted outright;
// fuzzy matches are linked too but counted separately so reports can queue
// them for review. Mentions without a make are skipped, not failed — dirty
// rows are expected input, and one bad row must never sink a batch. Write
// failures follow the same rule: a row-local failure is counted as errored
// and the run continues; only an unavailable store aborts the run.
func (job *ResolveJob) Run(ctx context.Context) (*Summary, error) {
	summary := newSummary(constants.JobResolve)

	rows, err := job.catalog.ListRows(ctx)
	if err != nil {
		return nil, err
	}
	index := resolve.BuildIndex(rows)

	cursor, err := job.checkpoints.Load(ctx, constants.JobResolve)
	if err != nil {
		return nil, err
	}

	job.logger.Info("resolve_run_started",
		slog.String("run_id", summary.RunID),
		slog.Int("index_size", index.Len()),
		slog.Bool("resumed", cursor != ""),
	)

	for {
		if err := job.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		batch, err := job.store.ListUnresolved(ctx, cursor, job.batchSize)
		if err != nil {
			// Abort without clearing the checkpoint; the next run resumes
			// from the last completed batch.
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		for _, a := range batch {
			mention := resolve.Mention{
				ID:          a.ID,
				Brand:       a.VehicleMake,
				Model:       a.VehicleModel,
				ChassisCode: a.ChassisCode,
			}

			match, err := job.resolver.Resolve(mention, index)
			if err != nil {
				summary.Skipped++
				job.logger.Debug("mention_skipped",
					slog.String("appearance_id", a.ID),
					slog.String("reason", err.Error()),
				)
				continue
			}

			if !match.Found() {
				summary.sampleUnresolved(UnresolvedSample{
					AppearanceID: a.ID,
					VehicleMake:  a.VehicleMake,
					VehicleModel: a.VehicleModel,
					ChassisCode:  a.ChassisCode,
				})
				continue
			}

			if err := job.store.Link(ctx, a.ID, match.GenerationID, string(match.Confidence)); err != nil {
				// An unreachable store means every later write fails too;
				// abort with the checkpoint intact. Any other failure is
				// row-local: count it and keep going.
				if apperr.CodeOf(err) == apperr.CodeUnavailable {
					return nil, err
				}
				summary.Errored++
				job.logger.Error("appearance_link_failed",
					slog.String("appearance_id", a.ID),
					slog.String("error", err.Error()),
				)
				continue
			}
			summary.Resolved++
			if match.Confidence == resolve.ConfidenceFuzzy {
				summary.ReviewTier++
			}
		}

		cursor = batch[len(batch)-1].ID
		if err := job.checkpoints.Save(ctx, constants.JobResolve, cursor); err != nil {
			return nil, err
		}

		if len(batch) < job.batchSize {
			break
		}
	}

	if err := job.checkpoints.Clear(ctx, constants.JobResolve); err != nil {
		return nil, err
	}

	job.logger.Info("resolve_run_finished",
		slog.String("run_id", summary.RunID),
		slog.Int64("resolved", summary.Resolved),
		slog.Int64("review_tier", summary.ReviewTier),
		slog.Int64("unresolved", summary.Unresolved),
		slog.Int64("skipped", summary.Skipped),
		slog.Int64("errored", summary.Errored),
	)

	return summary.finish(), nil
}
