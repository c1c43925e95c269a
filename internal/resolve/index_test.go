package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhdao/carlex/internal/catalog"
)

func testRows() []catalog.Row {
	return []catalog.Row{
		{GenerationID: 1, GenerationName: "E46", InternalCode: "E46", ModelID: 10, ModelName: "3 Series", BrandID: 100, BrandName: "BMW"},
		{GenerationID: 2, GenerationName: "E90", InternalCode: "E90", ModelID: 10, ModelName: "3 Series", BrandID: 100, BrandName: "BMW"},
		{GenerationID: 3, GenerationName: "W204", InternalCode: "W204", ModelID: 20, ModelName: "C-Class", BrandID: 200, BrandName: "Mercedes-Benz"},
		{GenerationID: 4, GenerationName: "Huracán", InternalCode: "LP610", ModelID: 30, ModelName: "Huracán", BrandID: 300, BrandName: "Lamborghini"},
		{GenerationID: 5, GenerationName: "ND", InternalCode: "", ModelID: 40, ModelName: "MX-5", BrandID: 400, BrandName: "Mazda"},
	}
}

func TestBuildIndexLookups(t *testing.T) {
	index := BuildIndex(testRows())
	require.Equal(t, 5, index.Len())

	t.Run("code lookup is case folded", func(t *testing.T) {
		got := index.lookupCode("bmw", "e46")
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), index.entries[got[0]].row.GenerationID)
	})

	t.Run("model lookup returns all generations in catalog order", func(t *testing.T) {
		got := index.lookupModel("bmw", "3 series")
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), index.entries[got[0]].row.GenerationID)
		assert.Equal(t, int64(2), index.entries[got[1]].row.GenerationID)
	})

	t.Run("model is also keyed by first token", func(t *testing.T) {
		got := index.lookupModel("bmw", "3")
		require.Len(t, got, 2)
	})

	t.Run("accents fold into the model key", func(t *testing.T) {
		got := index.lookupModel("lamborghini", "huracan")
		require.Len(t, got, 1)
		assert.Equal(t, int64(4), index.entries[got[0]].row.GenerationID)
	})

	t.Run("rows without a code are absent from the code index", func(t *testing.T) {
		assert.Empty(t, index.lookupCode("mazda", ""))
	})

	t.Run("unknown keys return no candidates", func(t *testing.T) {
		assert.Empty(t, index.lookupCode("bmw", "w204"))
		assert.Empty(t, index.lookupModel("mazda", "rx-7"))
	})
}

func TestBuildIndexEmptySnapshot(t *testing.T) {
	index := BuildIndex(nil)

	assert.Equal(t, 0, index.Len())
	assert.Empty(t, index.lookupCode("bmw", "e46"))
}
