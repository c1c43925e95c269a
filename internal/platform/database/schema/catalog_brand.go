package schema

// RefBrandTable represents the 'catalog.brand' table
type RefBrandTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	CreatedAt string
}

// RefBrand is the schema definition for catalog.brand
var RefBrand = RefBrandTable{
	Table:     "catalog.brand",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	CreatedAt: "created_at",
}

func (t RefBrandTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.CreatedAt}
}
