package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ta4ilka/route-atlas/internal/validators"
)

const (
	createUser = `INSERT INTO users (username, password_hash, roles, admin_role_requested)
    VALUES ($1, $2, string_to_array($3, ','), $4)
    RETURNING user_id, created_at;`

	findUserByUsername = `SELECT user_id, username, password_hash, array_to_string(roles, ','), admin_role_requested, created_at
    FROM users
    WHERE username = $1;`

	getUserByID = `SELECT user_id, username, password_hash, array_to_string(roles, ','), admin_role_requested, created_at
    FROM users
    WHERE user_id = $1;`

	updateUserRoles = `UPDATE users
    SET roles = string_to_array($2, ','), admin_role_requested = $3
    WHERE user_id = $1;`

	listAdminRoleRequests = `SELECT user_id, username, password_hash, array_to_string(roles, ','), admin_role_requested, created_at
    FROM users
    WHERE admin_role_requested = true;`

	saveCoordinates = `INSERT INTO coordinates (x, y)
    VALUES ($1, $2)
    RETURNING id;`

	updateCoordinates = `UPDATE coordinates SET x = $2, y = $3 WHERE id = $1;`

	saveLocation = `INSERT INTO locations (x, y, location_name)
    VALUES ($1, $2, $3)
    RETURNING location_id;`

	getLocation = `SELECT location_id, x, y, location_name
    FROM locations
    WHERE location_id = $1;`

	createRoute = `INSERT INTO routes (
			name,
			coordinates_id,
			creation_date,
			from_location_id,
			to_location_id,
			distance,
			rating,
			created_by_id,
			allow_admin_editing
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;`

	updateRoute = `UPDATE routes SET
			name                = $2,
			from_location_id    = $3,
			to_location_id      = $4,
			distance            = $5,
			rating              = $6,
			allow_admin_editing = $7
		WHERE id = $1;`

	deleteRoute = `DELETE FROM routes WHERE id = $1;`

	// routeNameTaken is the scoped uniqueness pre-check: it looks only at
	// the candidate name instead of scanning the whole table. The unique
	// index on lower(name) remains the backstop for racing writers.
	routeNameTaken = `SELECT id FROM routes WHERE lower(name) = lower($1) LIMIT 1;`

	recordAudit = `INSERT INTO route_audits (route_id, operation, performed_at, performed_by_id, description)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id;`

	listAuditByRoute = `SELECT a.id, a.route_id, a.operation, a.performed_at, a.performed_by_id, u.username, a.description
    FROM route_audits a
    JOIN users u ON u.user_id = a.performed_by_id
    WHERE a.route_id = $1
    ORDER BY a.performed_at, a.id;`

	createImportHistory = `INSERT INTO import_history (performed_at, status, performed_by, records_imported)
    VALUES ($1, $2, $3, 0)
    RETURNING id;`

	setImportFileURL = `UPDATE import_history SET file_url = $2 WHERE id = $1;`

	finalizeImportHistory = `UPDATE import_history
    SET status = $2, records_imported = $3, error_message = $4,
        file_url = CASE WHEN $2 = 'FAILURE' THEN NULL ELSE file_url END
    WHERE id = $1;`

	getImportHistory = `SELECT id, performed_at, status, performed_by, records_imported, file_url, error_message
    FROM import_history
    WHERE id = $1;`
)

// routeColumns lists the columns selected for every route query, joined
// across the embedded coordinates, both locations, and the owning user.
var routeColumns = []string{
	"r.id", "r.name",
	"c.id", "c.x", "c.y",
	"r.creation_date",
	"lf.location_id", "lf.x", "lf.y", "lf.location_name",
	"lt.location_id", "lt.x", "lt.y", "lt.location_name",
	"r.distance", "r.rating",
	"u.user_id", "u.username", "array_to_string(u.roles, ',')",
	"r.allow_admin_editing",
}

// routeSelect returns the base squirrel builder shared by all route queries.
func routeSelect() sq.SelectBuilder {
	return sq.Select(routeColumns...).
		From("routes r").
		Join("coordinates c ON c.id = r.coordinates_id").
		Join("locations lf ON lf.location_id = r.from_location_id").
		LeftJoin("locations lt ON lt.location_id = r.to_location_id").
		Join("users u ON u.user_id = r.created_by_id").
		PlaceholderFormat(sq.Dollar)
}

// buildGetRouteQuery selects a single route by identifier.
func buildGetRouteQuery(id int64) (string, []any, error) {
	query, args, err := routeSelect().Where(sq.Eq{"r.id": id}).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildListRoutesQuery selects every route ordered by identifier.
func buildListRoutesQuery() (string, []any, error) {
	query, args, err := routeSelect().OrderBy("r.id").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildSearchByNameQuery selects routes whose name contains the given
// substring, case-insensitively.
func buildSearchByNameQuery(substring string) (string, []any, error) {
	query, args, err := routeSelect().
		Where(sq.ILike{"r.name": "%" + substring + "%"}).
		OrderBy("r.id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildRatingLessThanQuery selects routes with rating strictly below the
// given threshold.
func buildRatingLessThanQuery(rating int64) (string, []any, error) {
	query, args, err := routeSelect().
		Where(sq.Lt{"r.rating": rating}).
		OrderBy("r.id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildRatingAndOwnerQuery selects routes with the exact rating owned by the
// given user. Used by the owner-scoped bulk delete.
func buildRatingAndOwnerQuery(rating, ownerID int64) (string, []any, error) {
	query, args, err := routeSelect().
		Where(sq.Eq{"r.rating": rating, "r.created_by_id": ownerID}).
		OrderBy("r.id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildFindBetweenQuery selects routes connecting the two named locations
// (case-insensitive exact match on both endpoint names; destination must be
// present) sorted ascending by the validated sort key.
func buildFindBetweenQuery(fromName, toName string, sortBy validators.SortKey) (string, []any, error) {
	var orderBy string
	switch sortBy {
	case validators.SortByDistance:
		orderBy = "r.distance"
	case validators.SortByRating:
		orderBy = "r.rating"
	case validators.SortByName:
		orderBy = "r.name"
	default:
		return "", nil, fmt.Errorf("%w: unsupported sort key %q", ErrBuildingSQLQuery, sortBy)
	}

	query, args, err := routeSelect().
		Where("lower(lf.location_name) = lower(?)", fromName).
		Where("lt.location_id IS NOT NULL").
		Where("lower(lt.location_name) = lower(?)", toName).
		OrderBy(orderBy + " ASC").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildListImportHistoryQuery selects import-history rows, optionally
// restricted to one performer, newest first.
func buildListImportHistoryQuery(performedBy string) (string, []any, error) {
	builder := sq.Select("id", "performed_at", "status", "performed_by", "records_imported", "file_url", "error_message").
		From("import_history").
		PlaceholderFormat(sq.Dollar).
		OrderBy("performed_at DESC", "id DESC")

	if performedBy != "" {
		builder = builder.Where(sq.Eq{"performed_by": performedBy})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
