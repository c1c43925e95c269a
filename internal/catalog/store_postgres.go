package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhdao/carlex/internal/platform/database/schema"
	"github.com/minhdao/carlex/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListRows returns the flattened generation × model × brand snapshot used
// to build the candidate index. Ordered by generation id so downstream
// tie-breaking is stable across runs.
func (repository *PostgresRepository) ListRows(context context.Context) ([]Row, error) {
	query := fmt.Sprintf(`
		SELECT g.%s, g.%s, COALESCE(g.%s, ''),
		       m.%s, m.%s,
		       b.%s, b.%s
		FROM %s g
		JOIN %s m ON g.%s = m.%s
		JOIN %s b ON m.%s = b.%s
		ORDER BY g.%s ASC
	`,
		schema.RefGeneration.ID, schema.RefGeneration.Name, schema.RefGeneration.InternalCode,
		schema.RefModel.ID, schema.RefModel.Name,
		schema.RefBrand.ID, schema.RefBrand.Name,
		schema.RefGeneration.Table,
		schema.RefModel.Table, schema.RefGeneration.ModelID, schema.RefModel.ID,
		schema.RefBrand.Table, schema.RefModel.BrandID, schema.RefBrand.ID,
		schema.RefGeneration.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_catalog_rows")
	}
	defer rows.Close()

	result := make([]Row, 0)
	for rows.Next() {
		r := Row{}
		if err := rows.Scan(
			&r.GenerationID, &r.GenerationName, &r.InternalCode,
			&r.ModelID, &r.ModelName,
			&r.BrandID, &r.BrandName,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_catalog_row")
		}
		result = append(result, r)
	}

	return result, rows.Err()
}

// ListGenerations returns every generation ordered by id, for the dedup
// grouping pass.
func (repository *PostgresRepository) ListGenerations(context context.Context) ([]Generation, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC
	`,
		schema.RefGeneration.ID, schema.RefGeneration.ModelID, schema.RefGeneration.Name,
		schema.RefGeneration.InternalCode, schema.RefGeneration.ProductionStart,
		schema.RefGeneration.ProductionEnd, schema.RefGeneration.CreatedAt,
		schema.RefGeneration.Table, schema.RefGeneration.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_generations")
	}
	defer rows.Close()

	result := make([]Generation, 0)
	for rows.Next() {
		g := Generation{}
		if err := rows.Scan(
			&g.ID, &g.ModelID, &g.Name, &g.InternalCode,
			&g.ProductionStart, &g.ProductionEnd, &g.CreatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_generation")
		}
		result = append(result, g)
	}

	return result, rows.Err()
}

// ListEngineVariants pages engine variants by ascending id, for the
// cleanup job's keyset pagination.
func (repository *PostgresRepository) ListEngineVariants(context context.Context, afterID int64, limit int) ([]EngineVariant, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s > $1
		ORDER BY %s ASC
		LIMIT $2
	`,
		schema.RefEngineVariant.ID, schema.RefEngineVariant.GenerationID,
		schema.RefEngineVariant.Name, schema.RefEngineVariant.CreatedAt,
		schema.RefEngineVariant.Table,
		schema.RefEngineVariant.ID, schema.RefEngineVariant.ID,
	)

	rows, err := repository.db.Query(context, query, afterID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "list_engine_variants")
	}
	defer rows.Close()

	result := make([]EngineVariant, 0, limit)
	for rows.Next() {
		v := EngineVariant{}
		if err := rows.Scan(&v.ID, &v.GenerationID, &v.Name, &v.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_engine_variant")
		}
		result = append(result, v)
	}

	return result, rows.Err()
}

// FindModelByName returns the model with the given display name under a
// brand, or nil when none exists.
func (repository *PostgresRepository) FindModelByName(context context.Context, brandID int64, name string) (*Model, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.RefModel.ID, schema.RefModel.BrandID, schema.RefModel.Name,
		schema.RefModel.Slug, schema.RefModel.CreatedAt,
		schema.RefModel.Table,
		schema.RefModel.BrandID, schema.RefModel.Name,
	)

	m := &Model{}
	err := repository.db.QueryRow(context, query, brandID, name).Scan(
		&m.ID, &m.BrandID, &m.Name, &m.Slug, &m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_model_by_name")
	}

	return m, nil
}

// UpsertBrand inserts a brand or refreshes its display name, keyed by slug.
func (repository *PostgresRepository) UpsertBrand(context context.Context, name, slug string) (int64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s
	`,
		schema.RefBrand.Table, schema.RefBrand.Name, schema.RefBrand.Slug,
		schema.RefBrand.Slug, schema.RefBrand.Name, schema.RefBrand.Name,
		schema.RefBrand.ID,
	)

	var id int64
	if err := repository.db.QueryRow(context, query, name, slug).Scan(&id); err != nil {
		return 0, dberr.Wrap(err, "upsert_brand")
	}
	return id, nil
}

// UpsertModel inserts a model or refreshes its display name, keyed by
// (brand_id, slug).
func (repository *PostgresRepository) UpsertModel(context context.Context, brandID int64, name, slug string) (int64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s
	`,
		schema.RefModel.Table, schema.RefModel.BrandID, schema.RefModel.Name, schema.RefModel.Slug,
		schema.RefModel.BrandID, schema.RefModel.Slug,
		schema.RefModel.Name, schema.RefModel.Name,
		schema.RefModel.ID,
	)

	var id int64
	if err := repository.db.QueryRow(context, query, brandID, name, slug).Scan(&id); err != nil {
		return 0, dberr.Wrap(err, "upsert_model")
	}
	return id, nil
}

// CreateGeneration inserts a generation row and backfills its id.
func (repository *PostgresRepository) CreateGeneration(context context.Context, generation *Generation) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s
	`,
		schema.RefGeneration.Table,
		schema.RefGeneration.ModelID, schema.RefGeneration.Name, schema.RefGeneration.InternalCode,
		schema.RefGeneration.ProductionStart, schema.RefGeneration.ProductionEnd,
		schema.RefGeneration.ID, schema.RefGeneration.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		generation.ModelID,
		generation.Name,
		generation.InternalCode,
		generation.ProductionStart,
		generation.ProductionEnd,
	).Scan(&generation.ID, &generation.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_generation")
	}

	return nil
}

// UpdateEngineVariantName rewrites a variant's display name (cleanup job).
func (repository *PostgresRepository) UpdateEngineVariantName(context context.Context, id int64, name string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		schema.RefEngineVariant.Table, schema.RefEngineVariant.Name, schema.RefEngineVariant.ID)

	tag, err := repository.db.Exec(context, query, name, id)
	if err != nil {
		return dberr.Wrap(err, "update_engine_variant_name")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// RenameModel updates a model's display name and slug in place. Callers
// must check for a name collision first and use [MergeModels] instead when
// the target name already exists under the same brand.
func (repository *PostgresRepository) RenameModel(context context.Context, modelID int64, name, slug string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3`,
		schema.RefModel.Table, schema.RefModel.Name, schema.RefModel.Slug, schema.RefModel.ID)

	tag, err := repository.db.Exec(context, query, name, slug, modelID)
	if err != nil {
		return dberr.Wrap(err, "rename_model")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// MergeGenerations re-points every dependent row from the duplicate
// generations to the surviving original, then deletes the duplicates.
//
// The whole merge runs in one transaction: if any re-pointing fails, the
// duplicates are NOT deleted and the transaction rolls back, so a failed
// merge can simply be retried on the next pass. The returned map holds the
// number of re-pointed rows per dependent table for the merge report.
func (repository *PostgresRepository) MergeGenerations(context context.Context, originalID int64, duplicateIDs []int64) (map[string]int64, error) {
	if len(duplicateIDs) == 0 {
		return map[string]int64{}, nil
	}

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_merge_generations")
	}
	// Reclaims the transaction if any step below fails or panics.
	defer transaction.Rollback(context)

	counts := make(map[string]int64, len(schema.GenerationDependents))
	for _, dependent := range schema.GenerationDependents {
		query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = ANY($2)`,
			dependent.Table, dependent.Column, dependent.Column)

		tag, err := transaction.Exec(context, query, originalID, duplicateIDs)
		if err != nil {
			return nil, dberr.Wrap(err, "repoint_"+dependent.Table)
		}
		counts[dependent.Table] = tag.RowsAffected()
	}

	// All dependents re-pointed; the delete is now safe. A foreign-key
	// violation here means the dependent registry is missing a table and
	// must fail loudly rather than orphan rows.
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1)`,
		schema.RefGeneration.Table, schema.RefGeneration.ID)
	if _, err := transaction.Exec(context, deleteQuery, duplicateIDs); err != nil {
		return nil, dberr.Wrap(err, "delete_duplicate_generations")
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_merge_generations")
	}

	return counts, nil
}

// MergeModels re-points all child generations from dropID to keepID and
// deletes the dropped model, in one transaction. It returns the number of
// generations moved.
func (repository *PostgresRepository) MergeModels(context context.Context, keepID, dropID int64) (int64, error) {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return 0, dberr.Wrap(err, "begin_merge_models")
	}
	defer transaction.Rollback(context)

	var moved int64
	for _, dependent := range schema.ModelDependents {
		query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
			dependent.Table, dependent.Column, dependent.Column)

		tag, err := transaction.Exec(context, query, keepID, dropID)
		if err != nil {
			return 0, dberr.Wrap(err, "repoint_"+dependent.Table)
		}
		moved += tag.RowsAffected()
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.RefModel.Table, schema.RefModel.ID)
	if _, err := transaction.Exec(context, deleteQuery, dropID); err != nil {
		return 0, dberr.Wrap(err, "delete_merged_model")
	}

	if err := transaction.Commit(context); err != nil {
		return 0, dberr.Wrap(err, "commit_merge_models")
	}

	return moved, nil
}
