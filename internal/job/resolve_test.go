package job

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/minhdao/carlex/internal/appearance"
	"github.com/minhdao/carlex/internal/catalog"
	"github.com/minhdao/carlex/internal/platform/apperr"
	"github.com/minhdao/carlex/internal/platform/constants"
	"github.com/minhdao/carlex/internal/resolve"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCatalogRows() []catalog.Row {
	return []catalog.Row{
		{GenerationID: 1, InternalCode: "E46", ModelID: 10, ModelName: "3 Series", BrandID: 100, BrandName: "BMW"},
		{GenerationID: 2, InternalCode: "W204", ModelID: 20, ModelName: "C-Class", BrandID: 200, BrandName: "Mercedes-Benz"},
		{GenerationID: 3, InternalCode: "LP610", ModelID: 30, ModelName: "Huracán", BrandID: 300, BrandName: "Lamborghini"},
	}
}

func unresolvedRow(id, make, model, code string) appearance.Appearance {
	return appearance.Appearance{
		ID:           id,
		VehicleMake:  make,
		VehicleModel: model,
		ChassisCode:  code,
		MovieTitle:   "Ronin",
		MediaType:    "movie",
	}
}

func newResolveJobForTest(store *memAppearances, checkpoints Checkpointer, batchSize int) *ResolveJob {
	return NewResolveJob(
		&memCatalog{rows: testCatalogRows()},
		store,
		resolve.NewResolver(resolve.DefaultAliasTable(), resolve.DefaultGrammarTable()),
		checkpoints,
		rate.NewLimiter(rate.Inf, 1),
		discardLogger(),
		batchSize,
	)
}

func TestResolveJobRun(t *testing.T) {
	store := newMemAppearances(
		unresolvedRow("a1", "BMW", "3 Series", "E46"),        // exact_code
		unresolvedRow("a2", "Lamborghini", "Huracan", ""),    // brand_model
		unresolvedRow("a3", "Mercedez", "C-Class", ""),       // fuzzy, review tier
		unresolvedRow("a4", "Koenigsegg", "Agera", ""),       // unresolved
		unresolvedRow("a5", "", "Mystery", ""),               // skipped, no make
	)
	checkpoints := newMemCheckpoints()

	summary, err := newResolveJobForTest(store, checkpoints, 2).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.Resolved)
	assert.Equal(t, int64(1), summary.ReviewTier)
	assert.Equal(t, int64(1), summary.Unresolved)
	assert.Equal(t, int64(1), summary.Skipped)
	assert.Equal(t, constants.JobResolve, summary.Job)
	assert.NotEmpty(t, summary.RunID)

	require.Len(t, summary.UnresolvedSamples, 1)
	assert.Equal(t, "a4", summary.UnresolvedSamples[0].AppearanceID)

	require.True(t, store.rows["a1"].Resolved())
	assert.Equal(t, int64(1), *store.rows["a1"].GenerationID)
	assert.Equal(t, string(resolve.ConfidenceExactCode), *store.rows["a1"].MatchConfidence)
	assert.Equal(t, string(resolve.ConfidenceBrandModel), *store.rows["a2"].MatchConfidence)
	assert.Equal(t, string(resolve.ConfidenceFuzzy), *store.rows["a3"].MatchConfidence)
	assert.False(t, store.rows["a4"].Resolved())

	assert.Greater(t, checkpoints.saves, 1, "cursor is checkpointed per batch")
	assert.Equal(t, 1, checkpoints.cleared, "checkpoint is cleared on completion")
	assert.Empty(t, checkpoints.cursors)
}

func TestResolveJobResumesFromCheckpoint(t *testing.T) {
	store := newMemAppearances(
		unresolvedRow("a1", "BMW", "3 Series", "E46"),
		unresolvedRow("a2", "BMW", "3 Series", "E46"),
	)
	checkpoints := newMemCheckpoints()
	checkpoints.cursors[constants.JobResolve] = "a1"

	summary, err := newResolveJobForTest(store, checkpoints, 50).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), summary.Resolved, "rows at or before the cursor are not revisited")
	assert.False(t, store.rows["a1"].Resolved())
	assert.True(t, store.rows["a2"].Resolved())
}

func TestResolveJobAbortsWhenStoreUnavailableKeepingCheckpoint(t *testing.T) {
	store := newMemAppearances(
		unresolvedRow("a1", "BMW", "3 Series", "E46"),
		unresolvedRow("a2", "BMW", "3 Series", "E46"),
		unresolvedRow("a3", "BMW", "3 Series", "E46"),
	)
	store.linkErrID = "a3"
	store.linkErr = apperr.Unavailable("Store unreachable during link_appearance", errors.New("connection reset"))

	checkpoints := newMemCheckpoints()

	_, err := newResolveJobForTest(store, checkpoints, 2).Run(context.Background())
	require.Error(t, err)

	assert.Zero(t, checkpoints.cleared, "a failed run keeps its checkpoint")
	assert.Equal(t, "a2", checkpoints.cursors[constants.JobResolve],
		"checkpoint points at the last completed batch")
}

func TestResolveJobCountsRowLocalLinkFailures(t *testing.T) {
	store := newMemAppearances(
		unresolvedRow("a1", "BMW", "3 Series", "E46"),
		unresolvedRow("a2", "BMW", "3 Series", "E46"),
		unresolvedRow("a3", "BMW", "3 Series", "E46"),
	)
	store.linkErrID = "a2"
	store.linkErr = apperr.Conflict("Duplicate row rejected during link_appearance", errors.New("23505"))

	checkpoints := newMemCheckpoints()

	summary, err := newResolveJobForTest(store, checkpoints, 50).Run(context.Background())
	require.NoError(t, err, "a row-local write failure never aborts the run")

	assert.Equal(t, int64(1), summary.Errored)
	assert.Equal(t, int64(2), summary.Resolved)
	assert.True(t, store.rows["a1"].Resolved())
	assert.False(t, store.rows["a2"].Resolved())
	assert.True(t, store.rows["a3"].Resolved(), "rows after the failed one are still processed")
	assert.Equal(t, 1, checkpoints.cleared, "the run completes and clears its checkpoint")
}

func TestResolveJobEmptyBacklog(t *testing.T) {
	store := newMemAppearances()
	checkpoints := newMemCheckpoints()

	summary, err := newResolveJobForTest(store, checkpoints, 50).Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, summary.Resolved)
	assert.Zero(t, summary.Unresolved)
	assert.Equal(t, 1, checkpoints.cleared)
}
