package schema

// RefModelTable represents the 'catalog.model' table
type RefModelTable struct {
	Table     string
	ID        string
	BrandID   string
	Name      string
	Slug      string
	CreatedAt string
}

// RefModel is the schema definition for catalog.model
var RefModel = RefModelTable{
	Table:     "catalog.model",
	ID:        "id",
	BrandID:   "brand_id",
	Name:      "name",
	Slug:      "slug",
	CreatedAt: "created_at",
}

func (t RefModelTable) Columns() []string {
	return []string{t.ID, t.BrandID, t.Name, t.Slug, t.CreatedAt}
}
