package schema

// RefSafetyRatingTable represents the 'media.safety_rating' table
type RefSafetyRatingTable struct {
	Table        string
	ID           string
	GenerationID string
	Program      string
	TestYear     string
	Stars        string
	CreatedAt    string
}

// RefSafetyRating is the schema definition for media.safety_rating
// (Euro NCAP and similar programs, imported by external scrapers).
var RefSafetyRating = RefSafetyRatingTable{
	Table:        "media.safety_rating",
	ID:           "id",
	GenerationID: "generation_id",
	Program:      "program",
	TestYear:     "test_year",
	Stars:        "stars",
	CreatedAt:    "created_at",
}

func (t RefSafetyRatingTable) Columns() []string {
	return []string{t.ID, t.GenerationID, t.Program, t.TestYear, t.Stars, t.CreatedAt}
}
