package schema

// RefGenerationTable represents the 'catalog.generation' table
type RefGenerationTable struct {
	Table           string
	ID              string
	ModelID         string
	Name            string
	InternalCode    string
	ProductionStart string
	ProductionEnd   string
	CreatedAt       string
}

// RefGeneration is the schema definition for catalog.generation
//
// Note: there is deliberately no unique constraint on
// (model_id, internal_code) — duplicate generations are expected input
// from imports and are repaired by the dedup job.
var RefGeneration = RefGenerationTable{
	Table:           "catalog.generation",
	ID:              "id",
	ModelID:         "model_id",
	Name:            "name",
	InternalCode:    "internal_code",
	ProductionStart: "production_start",
	ProductionEnd:   "production_end",
	CreatedAt:       "created_at",
}

func (t RefGenerationTable) Columns() []string {
	return []string{t.ID, t.ModelID, t.Name, t.InternalCode, t.ProductionStart, t.ProductionEnd, t.CreatedAt}
}
