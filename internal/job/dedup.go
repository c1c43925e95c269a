package job

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/minhdao/carlex/internal/appearance"
	"github.com/minhdao/carlex/internal/catalog"
	"github.com/minhdao/carlex/internal/platform/constants"
	"github.com/minhdao/carlex/pkg/slice"
)

// GenerationMerger is the slice of the catalog store the dedup job needs.
type GenerationMerger interface {
	ListGenerations(ctx context.Context) ([]catalog.Generation, error)
	MergeGenerations(ctx context.Context, originalID int64, duplicateIDs []int64) (map[string]int64, error)
}

// AppearancePruner is the slice of the appearance store the dedup job
// needs: paging resolved rows and deleting duplicates.
type AppearancePruner interface {
	ListResolved(ctx context.Context, afterID string, limit int) ([]appearance.Appearance, error)
	Delete(ctx context.Context, ids []string) (int64, error)
}

// DedupJob collapses duplicate catalog generations, then duplicate
// resolved appearances.
//
// Generations run first: merging generations re-points appearances, which
// is exactly what creates appearance duplicates, so the appearance pass
// must see the post-merge state. Each duplicate group merges in its own
// transaction; a failed group is counted and logged but the run continues,
// because groups are independent of each other.
type DedupJob struct {
	catalog     GenerationMerger
	appearances AppearancePruner
	limiter     *rate.Limiter
	logger      *slog.Logger
	batchSize   int
}

func NewDedupJob(
	catalogStore GenerationMerger,
	appearances AppearancePruner,
	limiter *rate.Limiter,
	logger *slog.Logger,
	batchSize int,
) *DedupJob {
	return &DedupJob{
		catalog:     catalogStore,
		appearances: appearances,
		limiter:     limiter,
		logger:      logger.With(slog.String("job", constants.JobDedup)),
		batchSize:   batchSize,
	}
}

// Run executes one dedup pass and returns its summary.
func (job *DedupJob) Run(ctx context.Context) (*Summary, error) {
	summary := newSummary(constants.JobDedup)

	job.logger.Info("dedup_run_started", slog.String("run_id", summary.RunID))

	if err := job.mergeGenerations(ctx, summary); err != nil {
		return nil, err
	}
	if err := job.pruneAppearances(ctx, summary); err != nil {
		return nil, err
	}

	job.logger.Info("dedup_run_finished",
		slog.String("run_id", summary.RunID),
		slog.Int64("merged_groups", summary.Merged),
		slog.Int64("rows_repointed", summary.Repointed),
		slog.Int64("rows_deleted", summary.Deleted),
		slog.Int64("errored_groups", summary.Errored),
	)

	return summary.finish(), nil
}

func (job *DedupJob) mergeGenerations(ctx context.Context, summary *Summary) error {
	generations, err := job.catalog.ListGenerations(ctx)
	if err != nil {
		return err
	}

	groups := catalog.FindDuplicateGenerations(generations)
	for _, group := range groups {
		if err := job.limiter.Wait(ctx); err != nil {
			return err
		}

		duplicateIDs := slice.Map(group.Duplicates, func(d catalog.Generation) int64 { return d.ID })

		counts, err := job.catalog.MergeGenerations(ctx, group.Original.ID, duplicateIDs)
		if err != nil {
			// The transaction rolled back; nothing was lost. Count it and
			// move on so one bad group doesn't block the rest.
			summary.Errored++
			job.logger.Error("generation_merge_failed",
				slog.Int64("original_id", group.Original.ID),
				slog.String("internal_code", group.InternalCode),
				slog.String("error", err.Error()),
			)
			continue
		}

		summary.Merged++
		summary.Deleted += int64(len(duplicateIDs))
		for _, n := range counts {
			summary.Repointed += n
		}

		report := catalog.MergeReport{
			OriginalID:    group.Original.ID,
			MergedIDs:     duplicateIDs,
			RowsRepointed: counts,
		}
		job.logger.Info("generations_merged",
			slog.String("internal_code", group.InternalCode),
			slog.Any("merge", report),
		)
	}

	return nil
}

func (job *DedupJob) pruneAppearances(ctx context.Context, summary *Summary) error {
	// Duplicate appearance groups can straddle batch boundaries, so the
	// whole resolved set is collected before grouping. Resolved rows are a
	// fraction of the table and carry only short strings; if this outgrows
	// memory the grouping key should move into SQL.
	var resolved []appearance.Appearance
	cursor := ""
	for {
		if err := job.limiter.Wait(ctx); err != nil {
			return err
		}

		batch, err := job.appearances.ListResolved(ctx, cursor, job.batchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			break
		}

		resolved = append(resolved, batch...)
		cursor = batch[len(batch)-1].ID

		if len(batch) < job.batchSize {
			break
		}
	}

	for _, group := range appearance.FindDuplicateAppearances(resolved) {
		if err := job.limiter.Wait(ctx); err != nil {
			return err
		}

		deleted, err := job.appearances.Delete(ctx, group.DuplicateIDs())
		if err != nil {
			summary.Errored++
			job.logger.Error("appearance_dedup_failed",
				slog.String("group", group.Describe()),
				slog.String("error", err.Error()),
			)
			continue
		}

		summary.Merged++
		summary.Deleted += deleted
		job.logger.Info("appearances_deduplicated", slog.String("group", group.Describe()))
	}

	return nil
}
