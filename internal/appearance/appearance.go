// Package appearance manages scraped vehicle sightings in movies and
// games: the raw mention strings, their link to a catalog generation once
// resolved, and duplicate detection over resolved rows.
package appearance

import "time"

// Appearance is one scraped sighting of a vehicle in a piece of media.
// The scraped make/model/chassis strings are kept verbatim even after
// resolution so a rebuilt catalog can re-resolve from the source data.
type Appearance struct {
	// ID is a UUIDv7, so lexicographic order is creation order.
	ID string
	// GenerationID is nil until the resolve job links the row.
	GenerationID    *int64
	VehicleMake     string
	VehicleModel    string
	ChassisCode     string
	MovieTitle      string
	MediaType       string
	// MatchConfidence records the tier that produced the link, nil while
	// unresolved.
	MatchConfidence *string
	CreatedAt       time.Time
}

// Resolved reports whether the appearance is linked to a generation.
func (a Appearance) Resolved() bool { return a.GenerationID != nil }
