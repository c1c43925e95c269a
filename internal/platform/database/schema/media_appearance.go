package schema

// RefAppearanceTable represents the 'media.vehicle_appearance' table
type RefAppearanceTable struct {
	Table           string
	ID              string
	GenerationID    string
	VehicleMake     string
	VehicleModel    string
	ChassisCode     string
	MovieTitle      string
	MediaType       string
	MatchConfidence string
	CreatedAt       string
}

// RefAppearance is the schema definition for media.vehicle_appearance.
// generation_id stays NULL until the resolve job links the row; the raw
// scraped make/model/chassis strings are kept verbatim for re-resolution.
var RefAppearance = RefAppearanceTable{
	Table:           "media.vehicle_appearance",
	ID:              "id",
	GenerationID:    "generation_id",
	VehicleMake:     "vehicle_make",
	VehicleModel:    "vehicle_model",
	ChassisCode:     "chassis_code",
	MovieTitle:      "movie_title",
	MediaType:       "media_type",
	MatchConfidence: "match_confidence",
	CreatedAt:       "created_at",
}

func (t RefAppearanceTable) Columns() []string {
	return []string{
		t.ID, t.GenerationID, t.VehicleMake, t.VehicleModel, t.ChassisCode,
		t.MovieTitle, t.MediaType, t.MatchConfidence, t.CreatedAt,
	}
}
