package schema

// Dependent names a table/column pair that references a catalog entity by
// foreign key and must be re-pointed before that entity can be deleted.
type Dependent struct {
	Table  string
	Column string
}

// GenerationDependents is the registry of tables holding a generation_id
// foreign key. The merger iterates this list instead of hardcoding table
// names, so adding a dependent table is a one-line change here rather than
// a silent hole in the merge.
var GenerationDependents = []Dependent{
	{Table: RefEngineVariant.Table, Column: RefEngineVariant.GenerationID},
	{Table: RefAppearance.Table, Column: RefAppearance.GenerationID},
	{Table: RefSafetyRating.Table, Column: RefSafetyRating.GenerationID},
}

// ModelDependents is the registry of tables holding a model_id foreign key,
// used when a rename collides with an existing model and the two are merged.
var ModelDependents = []Dependent{
	{Table: RefGeneration.Table, Column: RefGeneration.ModelID},
}
