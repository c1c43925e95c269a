package schema

// RefEngineVariantTable represents the 'catalog.engine_variant' table
type RefEngineVariantTable struct {
	Table        string
	ID           string
	GenerationID string
	Name         string
	CreatedAt    string
}

// RefEngineVariant is the schema definition for catalog.engine_variant
var RefEngineVariant = RefEngineVariantTable{
	Table:        "catalog.engine_variant",
	ID:           "id",
	GenerationID: "generation_id",
	Name:         "name",
	CreatedAt:    "created_at",
}

func (t RefEngineVariantTable) Columns() []string {
	return []string{t.ID, t.GenerationID, t.Name, t.CreatedAt}
}
