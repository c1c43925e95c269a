package catalog

import (
	"sort"
	"strings"
)

// DuplicateGroup is a set of generations sharing (model_id, internal_code).
// Original is the survivor; Duplicates are merged into it and deleted.
type DuplicateGroup struct {
	ModelID      int64
	InternalCode string
	Original     Generation
	Duplicates   []Generation
}

// MergeReport records one completed merge for audit logging.
type MergeReport struct {
	OriginalID    int64            `json:"original_id"`
	MergedIDs     []int64          `json:"merged_ids"`
	RowsRepointed map[string]int64 `json:"rows_repointed"`
}

// FindDuplicateGenerations groups generations by (model_id, internal_code)
// and returns every group with more than one member.
//
// Generations without an internal code never group: two uncoded
// generations of the same model are routinely legitimate (pre-facelift /
// facelift split), so only the high-precision code key is trusted.
//
// The survivor is the earliest-created generation; identical timestamps
// (bulk imports commit whole batches in one transaction) fall back to the
// lowest id, so the choice is always deterministic. Groups are returned in
// (model_id, internal_code) order for stable reports.
func FindDuplicateGenerations(generations []Generation) []DuplicateGroup {
	type key struct {
		modelID int64
		code    string
	}

	byKey := make(map[key][]Generation)
	for _, g := range generations {
		if g.InternalCode == nil {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(*g.InternalCode))
		if code == "" {
			continue
		}
		k := key{modelID: g.ModelID, code: code}
		byKey[k] = append(byKey[k], g)
	}

	groups := make([]DuplicateGroup, 0)
	for k, members := range byKey {
		if len(members) < 2 {
			continue
		}

		sort.SliceStable(members, func(i, j int) bool {
			if !members[i].CreatedAt.Equal(members[j].CreatedAt) {
				return members[i].CreatedAt.Before(members[j].CreatedAt)
			}
			return members[i].ID < members[j].ID
		})

		groups = append(groups, DuplicateGroup{
			ModelID:      k.modelID,
			InternalCode: k.code,
			Original:     members[0],
			Duplicates:   members[1:],
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].ModelID != groups[j].ModelID {
			return groups[i].ModelID < groups[j].ModelID
		}
		return groups[i].InternalCode < groups[j].InternalCode
	})

	return groups
}
