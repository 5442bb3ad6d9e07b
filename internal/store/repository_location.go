package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/models"
)

// locationRepository is the PostgreSQL-backed implementation of
// [LocationRepository]. Like the route repository it runs against a
// caller-supplied [Querier] so location writes join the surrounding
// mutation's transaction.
type locationRepository struct {
	logger *logger.Logger
}

// NewLocationRepository constructs a [LocationRepository].
func NewLocationRepository(logger *logger.Logger) LocationRepository {
	logger.Debug().Msg("creating location repository")
	return &locationRepository{logger: logger}
}

// SaveLocation inserts a new location row and writes the server-assigned
// identifier back into location.
func (r *locationRepository) SaveLocation(ctx context.Context, q Querier, location *models.Location) error {
	log := logger.FromContext(ctx)

	err := q.QueryRowContext(ctx, saveLocation, location.X, location.Y, location.Name).Scan(&location.ID)
	if err != nil {
		log.Err(err).
			Str("func", "locationRepository.SaveLocation").
			Str("name", location.Name).
			Msg("failed to insert location")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// GetLocation retrieves a location by identifier.
// Returns [ErrLocationNotFound] when no row matches.
func (r *locationRepository) GetLocation(ctx context.Context, q Querier, id int64) (models.Location, error) {
	log := logger.FromContext(ctx)

	var location models.Location
	err := q.QueryRowContext(ctx, getLocation, id).Scan(&location.ID, &location.X, &location.Y, &location.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Location{}, ErrLocationNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "locationRepository.GetLocation").
			Int64("location_id", id).
			Msg("failed to query location")
		return models.Location{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return location, nil
}

// SaveCoordinates inserts a standalone coordinates row (bulk import path)
// and writes the server-assigned identifier back into coordinates.
func (r *locationRepository) SaveCoordinates(ctx context.Context, q Querier, coordinates *models.Coordinates) error {
	log := logger.FromContext(ctx)

	err := q.QueryRowContext(ctx, saveCoordinates, coordinates.X, coordinates.Y).Scan(&coordinates.ID)
	if err != nil {
		log.Err(err).
			Str("func", "locationRepository.SaveCoordinates").
			Msg("failed to insert coordinates")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
