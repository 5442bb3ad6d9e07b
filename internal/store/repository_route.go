package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/internal/validators"
	"github.com/ta4ilka/route-atlas/models"
)

// routeRepository is the PostgreSQL-backed implementation of
// [RouteRepository]. Every method runs against the caller-supplied [Querier]
// so that the service layer controls transaction boundaries; the repository
// itself never opens a transaction.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (route_id, name, owner_id, etc.).
type routeRepository struct {
	logger *logger.Logger
}

// NewRouteRepository constructs a [RouteRepository].
func NewRouteRepository(logger *logger.Logger) RouteRepository {
	logger.Debug().Msg("creating route repository")
	return &routeRepository{logger: logger}
}

// CreateRoute inserts the route's embedded coordinates row and the route row
// itself, writing the server-assigned identifiers back into route.
//
// The route's From and To locations must already carry persisted identifiers;
// resolve-or-create of locations is the service layer's concern.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrRouteNameTaken]; this is the
//     backstop for writers that raced past the scoped name pre-check.
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
func (r *routeRepository) CreateRoute(ctx context.Context, q Querier, route *models.Route) error {
	log := logger.FromContext(ctx)

	if err := q.QueryRowContext(ctx, saveCoordinates, route.Coordinates.X, route.Coordinates.Y).Scan(&route.Coordinates.ID); err != nil {
		log.Err(err).
			Str("func", "routeRepository.CreateRoute").
			Str("name", route.Name).
			Msg("failed to insert coordinates")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var toLocationID *int64
	if route.To != nil {
		toLocationID = &route.To.ID
	}

	err := q.QueryRowContext(ctx, createRoute,
		route.Name,
		route.Coordinates.ID,
		route.CreationDate,
		route.From.ID,
		toLocationID,
		route.Distance,
		route.Rating,
		route.CreatedBy.ID,
		route.AllowAdminEditing,
	).Scan(&route.ID)

	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			log.Warn().
				Str("func", "routeRepository.CreateRoute").
				Str("name", route.Name).
				Msg("unique index rejected duplicate route name")
			return ErrRouteNameTaken
		}

		log.Err(err).
			Str("func", "routeRepository.CreateRoute").
			Str("name", route.Name).
			Msg("failed to insert route")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// GetRoute retrieves a single route with its coordinates, both endpoint
// locations, and owner resolved. Returns [ErrRouteNotFound] when the
// identifier does not exist.
func (r *routeRepository) GetRoute(ctx context.Context, q Querier, id int64) (models.Route, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetRouteQuery(id)
	if err != nil {
		log.Err(err).Str("func", "routeRepository.GetRoute").Int64("route_id", id).Msg("failed to build query")
		return models.Route{}, err
	}

	row := q.QueryRowContext(ctx, query, args...)
	route, err := scanRouteRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Route{}, ErrRouteNotFound
		}
		log.Err(err).Str("func", "routeRepository.GetRoute").Int64("route_id", id).Msg("failed to scan route row")
		return models.Route{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return route, nil
}

// ListRoutes returns every route in the catalog ordered by identifier.
func (r *routeRepository) ListRoutes(ctx context.Context, q Querier) ([]models.Route, error) {
	query, args, err := buildListRoutesQuery()
	if err != nil {
		return nil, err
	}
	return r.queryRoutes(ctx, q, "routeRepository.ListRoutes", query, args)
}

// UpdateRoute overwrites the route row's mutable columns and the embedded
// coordinates row. CreationDate and CreatedBy are never written.
//
// Error handling mirrors [CreateRoute]: a unique-violation on rename maps to
// [ErrRouteNameTaken]; zero affected rows maps to [ErrRouteNotFound].
func (r *routeRepository) UpdateRoute(ctx context.Context, q Querier, route models.Route) error {
	log := logger.FromContext(ctx)

	if _, err := q.ExecContext(ctx, updateCoordinates, route.Coordinates.ID, route.Coordinates.X, route.Coordinates.Y); err != nil {
		log.Err(err).
			Str("func", "routeRepository.UpdateRoute").
			Int64("route_id", route.ID).
			Msg("failed to update coordinates")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var toLocationID *int64
	if route.To != nil {
		toLocationID = &route.To.ID
	}

	result, err := q.ExecContext(ctx, updateRoute,
		route.ID,
		route.Name,
		route.From.ID,
		toLocationID,
		route.Distance,
		route.Rating,
		route.AllowAdminEditing,
	)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			log.Warn().
				Str("func", "routeRepository.UpdateRoute").
				Int64("route_id", route.ID).
				Str("name", route.Name).
				Msg("unique index rejected duplicate route name on rename")
			return ErrRouteNameTaken
		}

		log.Err(err).
			Str("func", "routeRepository.UpdateRoute").
			Int64("route_id", route.ID).
			Msg("failed to update route")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrRouteNotFound
	}

	return nil
}

// DeleteRoute hard-deletes the route row. The audit log keeps referencing the
// removed identifier; no other rows cascade.
func (r *routeRepository) DeleteRoute(ctx context.Context, q Querier, id int64) error {
	log := logger.FromContext(ctx)

	result, err := q.ExecContext(ctx, deleteRoute, id)
	if err != nil {
		log.Err(err).Str("func", "routeRepository.DeleteRoute").Int64("route_id", id).Msg("failed to delete route")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrRouteNotFound
	}

	return nil
}

// NameTaken runs the scoped uniqueness pre-check for the given candidate
// name. When excludeID is non-zero, a match on that same route does not count
// as a collision (rename-to-own-name case).
func (r *routeRepository) NameTaken(ctx context.Context, q Querier, name string, excludeID int64) (bool, error) {
	log := logger.FromContext(ctx)

	var foundID int64
	err := q.QueryRowContext(ctx, routeNameTaken, name).Scan(&foundID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "routeRepository.NameTaken").Str("name", name).Msg("failed to execute name pre-check")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return foundID != excludeID, nil
}

// ListByRatingAndOwner returns the routes with the exact rating owned by the
// given user.
func (r *routeRepository) ListByRatingAndOwner(ctx context.Context, q Querier, rating int64, ownerID int64) ([]models.Route, error) {
	query, args, err := buildRatingAndOwnerQuery(rating, ownerID)
	if err != nil {
		return nil, err
	}
	return r.queryRoutes(ctx, q, "routeRepository.ListByRatingAndOwner", query, args)
}

// SearchByName returns the routes whose name contains the given substring,
// case-insensitively.
func (r *routeRepository) SearchByName(ctx context.Context, q Querier, substring string) ([]models.Route, error) {
	query, args, err := buildSearchByNameQuery(substring)
	if err != nil {
		return nil, err
	}
	return r.queryRoutes(ctx, q, "routeRepository.SearchByName", query, args)
}

// ListRatingLessThan returns the routes rated strictly below the threshold.
func (r *routeRepository) ListRatingLessThan(ctx context.Context, q Querier, rating int64) ([]models.Route, error) {
	query, args, err := buildRatingLessThanQuery(rating)
	if err != nil {
		return nil, err
	}
	return r.queryRoutes(ctx, q, "routeRepository.ListRatingLessThan", query, args)
}

// FindBetweenLocations returns the routes connecting the two named locations
// sorted ascending by the validated sort key.
func (r *routeRepository) FindBetweenLocations(ctx context.Context, q Querier, fromName, toName string, sortBy validators.SortKey) ([]models.Route, error) {
	query, args, err := buildFindBetweenQuery(fromName, toName, sortBy)
	if err != nil {
		return nil, err
	}
	return r.queryRoutes(ctx, q, "routeRepository.FindBetweenLocations", query, args)
}

// queryRoutes executes a multi-row route query and scans the full join shape.
func (r *routeRepository) queryRoutes(ctx context.Context, q Querier, caller, query string, args []any) ([]models.Route, error) {
	log := logger.FromContext(ctx)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", caller).Msg("failed to execute route query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	routes := make([]models.Route, 0, 16)

	for rows.Next() {
		route, scanErr := scanRouteRow(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).Str("func", caller).Msg("failed to scan route row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		routes = append(routes, route)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", caller).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return routes, nil
}

// scanRouteRow scans one row of the shared route join shape. The destination
// order must match [routeColumns].
func scanRouteRow(scan func(dest ...any) error) (models.Route, error) {
	var (
		route      models.Route
		toID       sql.NullInt64
		toX, toY   sql.NullFloat64
		toName     sql.NullString
		distance   sql.NullInt64
		ownerRoles string
	)

	err := scan(
		&route.ID, &route.Name,
		&route.Coordinates.ID, &route.Coordinates.X, &route.Coordinates.Y,
		&route.CreationDate,
		&route.From.ID, &route.From.X, &route.From.Y, &route.From.Name,
		&toID, &toX, &toY, &toName,
		&distance, &route.Rating,
		&route.CreatedBy.ID, &route.CreatedBy.Username, &ownerRoles,
		&route.AllowAdminEditing,
	)
	if err != nil {
		return models.Route{}, err
	}

	if toID.Valid {
		route.To = &models.Location{
			ID:   toID.Int64,
			X:    toX.Float64,
			Y:    toY.Float64,
			Name: toName.String,
		}
	}
	if distance.Valid {
		d := distance.Int64
		route.Distance = &d
	}
	route.CreatedBy.Roles = parseRoles(ownerRoles)

	return route, nil
}

// parseRoles splits the comma-joined role column into typed role tags.
func parseRoles(csv string) []models.Role {
	if csv == "" {
		return nil
	}

	parts := strings.Split(csv, ",")
	roles := make([]models.Role, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			roles = append(roles, models.Role(p))
		}
	}
	return roles
}
