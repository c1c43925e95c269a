package appearance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/minhdao/carlex/pkg/slice"
)

// DuplicateGroup is a set of resolved appearances that describe the same
// sighting: same generation, same title, same media type. Original is the
// earliest row; Duplicates are the rest in id order.
type DuplicateGroup struct {
	GenerationID int64
	MovieTitle   string
	MediaType    string
	Original     Appearance
	Duplicates   []Appearance
}

// DuplicateIDs returns the ids slated for deletion.
func (g DuplicateGroup) DuplicateIDs() []string {
	return slice.Map(g.Duplicates, func(d Appearance) string { return d.ID })
}

// foldTitle canonicalizes a media title for grouping: lowercase with
// collapsed whitespace, nothing more. Titles are not scraped vehicle text,
// so the matcher-grade normalizer does not apply here — words like "Null"
// or "Undefined" are legitimate in a title and must keep two titles apart.
func foldTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

// FindDuplicateAppearances groups resolved appearances that share a
// generation, a case/whitespace-folded title, and a media type. Unresolved
// rows never group (their generation is unknown, so equality is
// undecidable).
//
// Within a group the earliest row survives; UUIDv7 ids make the plain id
// comparison a creation-time comparison. Groups come back sorted by
// (generation id, title, media type), so a re-run over the same data
// reports identical work.
func FindDuplicateAppearances(appearances []Appearance) []DuplicateGroup {
	type groupKey struct {
		generationID int64
		title        string
		mediaType    string
	}

	byKey := make(map[groupKey][]Appearance)
	for _, a := range appearances {
		if !a.Resolved() {
			continue
		}
		key := groupKey{
			generationID: *a.GenerationID,
			title:        foldTitle(a.MovieTitle),
			mediaType:    strings.ToLower(strings.TrimSpace(a.MediaType)),
		}
		byKey[key] = append(byKey[key], a)
	}

	groups := make([]DuplicateGroup, 0)
	for key, members := range byKey {
		if len(members) < 2 {
			continue
		}

		sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })

		groups = append(groups, DuplicateGroup{
			GenerationID: key.generationID,
			MovieTitle:   key.title,
			MediaType:    key.mediaType,
			Original:     members[0],
			Duplicates:   members[1:],
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.GenerationID != b.GenerationID {
			return a.GenerationID < b.GenerationID
		}
		if a.MovieTitle != b.MovieTitle {
			return a.MovieTitle < b.MovieTitle
		}
		return a.MediaType < b.MediaType
	})

	return groups
}

// Describe renders a one-line summary for logs and reports.
func (g DuplicateGroup) Describe() string {
	return fmt.Sprintf("generation %d in %q (%s): keep %s, drop %d",
		g.GenerationID, g.MovieTitle, g.MediaType, g.Original.ID, len(g.Duplicates))
}
