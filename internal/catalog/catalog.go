package catalog

import "time"

// Brand is a manufacturer row. Brands are seed data and immutable after
// creation.
type Brand struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// Model is a vehicle model owned by exactly one brand. Models are created
// by imports and renamed or merged by cleanup runs.
type Model struct {
	ID        int64     `json:"id"`
	BrandID   int64     `json:"brand_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// Generation is one production generation of a model.
//
// InternalCode is the chassis/generation code (e.g. "E46", "W140") when
// known. At most one generation should exist per (ModelID, InternalCode);
// violations are duplicate generations that the dedup job merges.
type Generation struct {
	ID              int64     `json:"id"`
	ModelID         int64     `json:"model_id"`
	Name            string    `json:"name"`
	InternalCode    *string   `json:"internal_code"`
	ProductionStart *int      `json:"production_start"`
	ProductionEnd   *int      `json:"production_end"`
	CreatedAt       time.Time `json:"-"`
}

// EngineVariant is a single engine/trim row under a generation. Its name is
// free text from scrapers and must not retain scraper artifacts.
type EngineVariant struct {
	ID           int64     `json:"id"`
	GenerationID int64     `json:"generation_id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"-"`
}

// Row is a generation joined with its model and brand, flattened for the
// resolver's candidate index. Rows are listed in generation-id order so
// index iteration (and therefore tie-breaking) is stable across runs.
type Row struct {
	GenerationID   int64
	GenerationName string
	InternalCode   string
	ModelID        int64
	ModelName      string
	BrandID        int64
	BrandName      string
}
