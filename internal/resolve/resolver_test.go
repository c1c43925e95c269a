package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhdao/carlex/internal/catalog"
	"github.com/minhdao/carlex/internal/platform/apperr"
)

func newTestResolver() *Resolver {
	return NewResolver(DefaultAliasTable(), DefaultGrammarTable())
}

func TestResolverTiers(t *testing.T) {
	resolver := newTestResolver()
	index := BuildIndex(testRows())

	tests := []struct {
		name           string
		mention        Mention
		wantGeneration int64
		wantConfidence Confidence
	}{
		{
			name:           "chassis code field gives exact_code",
			mention:        Mention{Brand: "BMW", Model: "3 Series", ChassisCode: "E46"},
			wantGeneration: 1,
			wantConfidence: ConfidenceExactCode,
		},
		{
			name:           "code embedded in model text gives exact_code",
			mention:        Mention{Brand: "BMW", Model: "M3 E46 Coupe"},
			wantGeneration: 1,
			wantConfidence: ConfidenceExactCode,
		},
		{
			name:           "brand alias folds onto catalog spelling",
			mention:        Mention{Brand: "Mercedes", ChassisCode: "W204"},
			wantGeneration: 3,
			wantConfidence: ConfidenceExactCode,
		},
		{
			name:           "exact code beats a model match on another row",
			mention:        Mention{Brand: "BMW", Model: "3 Series", ChassisCode: "E90"},
			wantGeneration: 2,
			wantConfidence: ConfidenceExactCode,
		},
		{
			name:           "accentless spelling gives brand_model",
			mention:        Mention{Brand: "Lamborghini", Model: "Huracan"},
			wantGeneration: 4,
			wantConfidence: ConfidenceBrandModel,
		},
		{
			name:           "model alias class gives brand_model",
			mention:        Mention{Brand: "Mazda", Model: "Miata"},
			wantGeneration: 5,
			wantConfidence: ConfidenceBrandModel,
		},
		{
			name:           "first model token widens the match",
			mention:        Mention{Brand: "BMW", Model: "3 Touring"},
			wantGeneration: 1,
			wantConfidence: ConfidenceBrandModel,
		},
		{
			name:           "misspelled brand falls through to fuzzy",
			mention:        Mention{Brand: "Mercedez", Model: "C-Class"},
			wantGeneration: 3,
			wantConfidence: ConfidenceFuzzy,
		},
		{
			name:           "partial code overlaps fuzzily",
			mention:        Mention{Brand: "Mercedes", ChassisCode: "204"},
			wantGeneration: 3,
			wantConfidence: ConfidenceFuzzy,
		},
		{
			name:           "unknown brand resolves to none without error",
			mention:        Mention{Brand: "Koenigsegg", Model: "Agera"},
			wantGeneration: 0,
			wantConfidence: ConfidenceNone,
		},
		{
			name:           "known brand with unknown model resolves to none",
			mention:        Mention{Brand: "BMW", Model: "Isetta"},
			wantGeneration: 0,
			wantConfidence: ConfidenceNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := resolver.Resolve(tt.mention, index)

			require.NoError(t, err)
			assert.Equal(t, tt.wantConfidence, match.Confidence)
			assert.Equal(t, tt.wantGeneration, match.GenerationID)
			assert.Equal(t, tt.wantGeneration != 0, match.Found())
		})
	}
}

func TestResolverMissingBrand(t *testing.T) {
	resolver := newTestResolver()
	index := BuildIndex(testRows())

	match, err := resolver.Resolve(Mention{Model: "3 Series"}, index)

	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
	assert.Equal(t, ConfidenceNone, match.Confidence)
}

func TestResolverTieBreaksByCatalogOrder(t *testing.T) {
	resolver := newTestResolver()
	// Two rows share the same brand and internal code; the earlier catalog
	// row must win every time.
	index := BuildIndex([]catalog.Row{
		{GenerationID: 7, InternalCode: "E46", ModelID: 10, ModelName: "3 Series", BrandName: "BMW"},
		{GenerationID: 8, InternalCode: "E46", ModelID: 11, ModelName: "3 Series Compact", BrandName: "BMW"},
	})

	for i := 0; i < 10; i++ {
		match, err := resolver.Resolve(Mention{Brand: "BMW", ChassisCode: "E46"}, index)
		require.NoError(t, err)
		assert.Equal(t, int64(7), match.GenerationID)
	}
}

func TestResolverIsDeterministic(t *testing.T) {
	resolver := newTestResolver()
	index := BuildIndex(testRows())
	mention := Mention{Brand: "Mercedes Benz", Model: "C63 AMG", ChassisCode: "W204"}

	first, err := resolver.Resolve(mention, index)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := resolver.Resolve(mention, index)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolverEmptySnapshot(t *testing.T) {
	resolver := newTestResolver()

	match, err := resolver.Resolve(Mention{Brand: "BMW", ChassisCode: "E46"}, BuildIndex(nil))

	require.NoError(t, err)
	assert.Equal(t, ConfidenceNone, match.Confidence)
	assert.False(t, match.Found())
}
