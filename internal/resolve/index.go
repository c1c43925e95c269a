package resolve

import (
	"strings"

	"github.com/minhdao/carlex/internal/catalog"
	"github.com/minhdao/carlex/pkg/normalize"
)

// entry is one catalog row with its normalized matching keys precomputed,
// so the fuzzy tier's linear scan doesn't re-normalize per mention.
type entry struct {
	row      catalog.Row
	brandKey string
	modelKey string
	codeKey  string
}

// Index holds the candidate lookup structures for one catalog snapshot.
//
// # Snapshot semantics
//
// The index is built in one pass and never observes later catalog
// mutations. Callers must rebuild it after any merge or delete pass; a
// stale index can hand out a generation id that no longer exists. Candidate
// lists preserve catalog iteration order, which is what makes tie-breaking
// deterministic.
type Index struct {
	entries      []entry
	byBrandCode  map[string][]int
	byBrandModel map[string][]int
}

// indexKey joins a brand key with a secondary key. Both parts are already
// normalized (no NUL-adjacent characters survive normalization), so a
// plain separator is collision-safe in practice.
func indexKey(brandKey, secondary string) string {
	return brandKey + "|" + secondary
}

// BuildIndex builds the candidate index over a catalog snapshot in a
// single pass: O(catalog) to build, O(1) average per lookup afterwards.
// This replaces the linear scan per mention that made naive resolution
// O(catalog × mentions).
//
// Each row is keyed by (brand, internal code) and by (brand, model name);
// the model key is added both in full and as its first token, so
// "3 Series Touring" mentions can land on a "3 Series" catalog row.
func BuildIndex(rows []catalog.Row) *Index {
	index := &Index{
		entries:      make([]entry, 0, len(rows)),
		byBrandCode:  make(map[string][]int),
		byBrandModel: make(map[string][]int),
	}

	for _, row := range rows {
		e := entry{
			row:      row,
			brandKey: normalize.Name(row.BrandName),
			modelKey: normalize.Name(row.ModelName),
			codeKey:  strings.ToLower(strings.TrimSpace(row.InternalCode)),
		}
		position := len(index.entries)
		index.entries = append(index.entries, e)

		if e.brandKey == "" {
			continue
		}

		if e.codeKey != "" {
			key := indexKey(e.brandKey, e.codeKey)
			index.byBrandCode[key] = append(index.byBrandCode[key], position)
		}

		if e.modelKey != "" {
			key := indexKey(e.brandKey, e.modelKey)
			index.byBrandModel[key] = append(index.byBrandModel[key], position)

			if token := firstToken(e.modelKey); token != e.modelKey {
				tokenKey := indexKey(e.brandKey, token)
				index.byBrandModel[tokenKey] = append(index.byBrandModel[tokenKey], position)
			}
		}
	}

	return index
}

// Len returns the number of indexed catalog rows.
func (ix *Index) Len() int { return len(ix.entries) }

// lookupCode returns candidates for (brand key, code key) in catalog order.
func (ix *Index) lookupCode(brandKey, codeKey string) []int {
	return ix.byBrandCode[indexKey(brandKey, codeKey)]
}

// lookupModel returns candidates for (brand key, model key) in catalog order.
func (ix *Index) lookupModel(brandKey, modelKey string) []int {
	return ix.byBrandModel[indexKey(brandKey, modelKey)]
}
