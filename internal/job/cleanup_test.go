package job

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/minhdao/carlex/internal/catalog"
)

func newCleanupJobForTest(catalogStore *memCatalog) *CleanupJob {
	return NewCleanupJob(catalogStore, rate.NewLimiter(rate.Inf, 1), discardLogger(), 2)
}

func TestCleanupJobRewritesDirtyNames(t *testing.T) {
	catalogStore := &memCatalog{
		variants: []catalog.EngineVariant{
			{ID: 1, Name: "3.2 V6 24V"},            // clean, untouched
			{ID: 2, Name: "320d null"},             // artifact token
			{ID: 3, Name: "M3 CSL Specs"},          // page-title suffix
			{ID: 4, Name: "undefined 2.0 TFSI"},    // leading artifact
			{ID: 5, Name: "Carrera 4S"},            // clean, untouched
		},
	}

	summary, err := newCleanupJobForTest(catalogStore).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.Cleaned)
	assert.Equal(t, map[int64]string{
		2: "320d",
		3: "M3 CSL",
		4: "2.0 TFSI",
	}, catalogStore.updatedName)
}

func TestCleanupJobKeepsCasingAndAccents(t *testing.T) {
	catalogStore := &memCatalog{
		variants: []catalog.EngineVariant{
			{ID: 1, Name: "Quadrifoglio Verde null"},
		},
	}

	_, err := newCleanupJobForTest(catalogStore).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Quadrifoglio Verde", catalogStore.updatedName[1])
}

func TestCleanupJobCountsFailedRows(t *testing.T) {
	catalogStore := &memCatalog{
		variants: []catalog.EngineVariant{
			{ID: 1, Name: "320d null"},
			{ID: 2, Name: "330i Specs"},
		},
	}
	catalogStore.updateErr = errors.New("connection reset")

	summary, err := newCleanupJobForTest(catalogStore).Run(context.Background())
	require.NoError(t, err, "a failed row never aborts the run")

	assert.Equal(t, int64(1), summary.Errored)
	assert.Equal(t, int64(1), summary.Cleaned)
	assert.Equal(t, "330i", catalogStore.updatedName[2])
}

func TestCleanupJobIsIdempotent(t *testing.T) {
	catalogStore := &memCatalog{
		variants: []catalog.EngineVariant{
			{ID: 1, Name: "320d"},
			{ID: 2, Name: "2.0 TFSI"},
		},
	}

	summary, err := newCleanupJobForTest(catalogStore).Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, summary.Cleaned)
	assert.Empty(t, catalogStore.updatedName)
}
