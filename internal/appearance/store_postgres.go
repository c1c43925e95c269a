package appearance

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhdao/carlex/internal/platform/database/schema"
	"github.com/minhdao/carlex/internal/platform/dberr"
	"github.com/minhdao/carlex/pkg/uuidv7"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// listAppearancesQuery builds the keyset page query. The cursor predicate
// is only rendered when a cursor exists: the id column is a uuid, and the
// empty-string first-page cursor has no uuid it could cast to, so it must
// never reach the server as a parameter.
func listAppearancesQuery(resolved, hasCursor bool) string {
	operator := "IS NULL"
	if resolved {
		operator = "IS NOT NULL"
	}

	where := fmt.Sprintf("%s %s", schema.RefAppearance.GenerationID, operator)
	limitPlaceholder := "$1"
	if hasCursor {
		where += fmt.Sprintf(" AND %s > $1", schema.RefAppearance.ID)
		limitPlaceholder = "$2"
	}

	return fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s
		ORDER BY %s ASC
		LIMIT %s
	`,
		schema.RefAppearance.ID, schema.RefAppearance.GenerationID,
		schema.RefAppearance.VehicleMake, schema.RefAppearance.VehicleModel,
		schema.RefAppearance.ChassisCode, schema.RefAppearance.MovieTitle,
		schema.RefAppearance.MediaType, schema.RefAppearance.MatchConfidence,
		schema.RefAppearance.CreatedAt,
		schema.RefAppearance.Table,
		where,
		schema.RefAppearance.ID,
		limitPlaceholder,
	)
}

func (repository *PostgresRepository) listByResolution(context context.Context, resolved bool, afterID string, limit int) ([]Appearance, error) {
	query := listAppearancesQuery(resolved, afterID != "")

	args := make([]any, 0, 2)
	if afterID != "" {
		args = append(args, afterID)
	}
	args = append(args, limit)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_appearances")
	}
	defer rows.Close()

	result := make([]Appearance, 0, limit)
	for rows.Next() {
		a := Appearance{}
		if err := rows.Scan(
			&a.ID, &a.GenerationID,
			&a.VehicleMake, &a.VehicleModel, &a.ChassisCode,
			&a.MovieTitle, &a.MediaType, &a.MatchConfidence, &a.CreatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_appearance")
		}
		result = append(result, a)
	}

	return result, rows.Err()
}

// ListUnresolved pages unlinked appearances by ascending id. Pass the
// empty string as afterID for the first page; UUIDv7 ids sort after it.
func (repository *PostgresRepository) ListUnresolved(context context.Context, afterID string, limit int) ([]Appearance, error) {
	return repository.listByResolution(context, false, afterID, limit)
}

// ListResolved pages linked appearances by ascending id.
func (repository *PostgresRepository) ListResolved(context context.Context, afterID string, limit int) ([]Appearance, error) {
	return repository.listByResolution(context, true, afterID, limit)
}

// Link attaches an appearance to a generation. Linking is idempotent: a
// re-run overwrites the previous link and confidence.
func (repository *PostgresRepository) Link(context context.Context, id string, generationID int64, confidence string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3`,
		schema.RefAppearance.Table,
		schema.RefAppearance.GenerationID, schema.RefAppearance.MatchConfidence,
		schema.RefAppearance.ID,
	)

	tag, err := repository.db.Exec(context, query, generationID, confidence, id)
	if err != nil {
		return dberr.Wrap(err, "link_appearance")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// Create inserts an appearance, assigning a UUIDv7 id when none is set.
func (repository *PostgresRepository) Create(context context.Context, appearance *Appearance) error {
	if appearance.ID == "" {
		appearance.ID = uuidv7.New()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`,
		schema.RefAppearance.Table,
		schema.RefAppearance.ID, schema.RefAppearance.VehicleMake,
		schema.RefAppearance.VehicleModel, schema.RefAppearance.ChassisCode,
		schema.RefAppearance.MovieTitle, schema.RefAppearance.MediaType,
		schema.RefAppearance.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		appearance.ID,
		appearance.VehicleMake,
		appearance.VehicleModel,
		appearance.ChassisCode,
		appearance.MovieTitle,
		appearance.MediaType,
	).Scan(&appearance.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_appearance")
	}

	return nil
}

// Delete removes the given appearances in one statement.
func (repository *PostgresRepository) Delete(context context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1)`,
		schema.RefAppearance.Table, schema.RefAppearance.ID)

	tag, err := repository.db.Exec(context, query, ids)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_appearances")
	}

	return tag.RowsAffected(), nil
}

// CountUnresolved returns the number of appearances with no generation.
func (repository *PostgresRepository) CountUnresolved(context context.Context) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s IS NULL`,
		schema.RefAppearance.Table, schema.RefAppearance.GenerationID)

	var count int64
	if err := repository.db.QueryRow(context, query).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_unresolved_appearances")
	}

	return count, nil
}

// countByConfidenceQuery groups linked rows by tier. The confidence column
// is nullable and rows linked outside the resolve job may carry NULL, so
// it is folded to '' rather than scanned into a plain string.
func countByConfidenceQuery() string {
	return fmt.Sprintf(`
		SELECT COALESCE(%s, ''), COUNT(*)
		FROM %s
		WHERE %s IS NOT NULL
		GROUP BY COALESCE(%s, '')
	`,
		schema.RefAppearance.MatchConfidence,
		schema.RefAppearance.Table,
		schema.RefAppearance.GenerationID,
		schema.RefAppearance.MatchConfidence,
	)
}

// CountByConfidence returns resolved-row counts grouped by match tier.
// Rows linked with no recorded tier count under the empty key.
func (repository *PostgresRepository) CountByConfidence(context context.Context) (map[string]int64, error) {
	query := countByConfidenceQuery()

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "count_appearances_by_confidence")
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var tier string
		var count int64
		if err := rows.Scan(&tier, &count); err != nil {
			return nil, dberr.Wrap(err, "scan_confidence_count")
		}
		counts[tier] = count
	}

	return counts, rows.Err()
}
