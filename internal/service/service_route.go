package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/internal/store"
	"github.com/ta4ilka/route-atlas/internal/validators"
	"github.com/ta4ilka/route-atlas/models"
)

// routeService is the concrete implementation of RouteService.
//
// Each mutation runs inside one repeatable-read transaction: the scoped name
// pre-check, location resolution, the route write and the audit row commit or
// roll back together. The unique index on lower(name) is the backstop for
// writers that race past the pre-check. Change events are published strictly
// after commit and never fail the mutation.
type routeService struct {
	tx        store.TxRunner
	pool      store.Querier
	routes    store.RouteRepository
	locations store.LocationRepository
	audits    store.AuditRepository
	notifier  Notifier
	logger    *logger.Logger
}

// NewRouteService constructs a RouteService. pool serves read-only queries;
// tx opens the transactions mutations run in.
func NewRouteService(
	tx store.TxRunner,
	pool store.Querier,
	routes store.RouteRepository,
	locations store.LocationRepository,
	audits store.AuditRepository,
	notifier Notifier,
	logger *logger.Logger,
) RouteService {
	return &routeService{
		tx:        tx,
		pool:      pool,
		routes:    routes,
		locations: locations,
		audits:    audits,
		notifier:  notifier,
		logger:    logger,
	}
}

// CreateRoute persists a new route owned by requester.
//
// Returns a validation error for out-of-range metrics or incomplete
// coordinates, store.ErrRouteNameTaken when the name collides
// case-insensitively with an existing route, store.ErrLocationNotFound when a
// supplied location identifier does not exist.
func (s *routeService) CreateRoute(ctx context.Context, input models.RouteInput, requester models.User) (models.Route, error) {
	log := logger.FromContext(ctx)

	var route models.Route
	err := s.tx.WithinTx(ctx, sql.LevelRepeatableRead, func(tx *sql.Tx) error {
		created, err := s.CreateRouteInTx(ctx, tx, input, requester)
		if err != nil {
			return err
		}
		route = created
		return nil
	})
	if err != nil {
		log.Err(err).Str("name", input.Name).Msg("route creation failed")
		return models.Route{}, fmt.Errorf("route creation failed: %w", err)
	}

	s.notifier.PublishRouteChange(models.RouteChangeEvent{
		Operation: models.OperationCreate,
		RouteID:   route.ID,
		Route:     &route,
	})
	return route, nil
}

func (s *routeService) GetRoute(ctx context.Context, id int64) (models.Route, error) {
	return s.routes.GetRoute(ctx, s.pool, id)
}

func (s *routeService) ListRoutes(ctx context.Context) ([]models.Route, error) {
	return s.routes.ListRoutes(ctx, s.pool)
}

// UpdateRoute applies a partial update to an existing route on behalf of
// requester.
//
// Fields absent from update are left untouched: a blank name keeps the stored
// name, nil coordinates/from/to/distance keep the stored values. Rating is
// mandatory and must stay positive. AllowAdminEditing is always overwritten
// with the supplied value. CreationDate and CreatedBy never change.
func (s *routeService) UpdateRoute(ctx context.Context, id int64, update models.RouteUpdate, requester models.User) (models.Route, error) {
	log := logger.FromContext(ctx)

	if err := validators.ValidateRouteUpdate(update); err != nil {
		log.Error().Err(err).Int64("route_id", id).Msg("route update input rejected")
		return models.Route{}, err
	}

	var route models.Route
	err := s.tx.WithinTx(ctx, sql.LevelRepeatableRead, func(tx *sql.Tx) error {
		existing, err := s.routes.GetRoute(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := CanMutate(existing, requester, models.OperationUpdate); err != nil {
			return err
		}

		// a name that is blank after trimming counts as absent, matching
		// the create-path blank check
		if strings.TrimSpace(update.Name) != "" {
			taken, err := s.routes.NameTaken(ctx, tx, update.Name, id)
			if err != nil {
				return err
			}
			if taken {
				return store.ErrRouteNameTaken
			}
			existing.Name = update.Name
		}

		if update.Coordinates != nil {
			existing.Coordinates.X = *update.Coordinates.X
			existing.Coordinates.Y = *update.Coordinates.Y
		}

		if update.From != nil {
			from, err := s.resolveLocation(ctx, tx, *update.From)
			if err != nil {
				return err
			}
			existing.From = from
		}

		if update.To != nil {
			to, err := s.resolveLocation(ctx, tx, *update.To)
			if err != nil {
				return err
			}
			existing.To = &to
		}

		if update.Distance != nil {
			existing.Distance = update.Distance
		}

		existing.Rating = update.Rating
		existing.AllowAdminEditing = update.AllowAdminEditing

		if err := s.routes.UpdateRoute(ctx, tx, existing); err != nil {
			return err
		}

		route = existing
		return s.audits.Record(ctx, tx, &models.RouteAudit{
			RouteID:       route.ID,
			Operation:     models.OperationUpdate,
			Timestamp:     time.Now().UTC(),
			PerformedByID: requester.ID,
			Description:   fmt.Sprintf("route %q updated", route.Name),
		})
	})
	if err != nil {
		log.Err(err).Int64("route_id", id).Msg("route update failed")
		return models.Route{}, fmt.Errorf("route update failed: %w", err)
	}

	s.notifier.PublishRouteChange(models.RouteChangeEvent{
		Operation: models.OperationUpdate,
		RouteID:   route.ID,
		Route:     &route,
	})
	return route, nil
}

// DeleteRoute hard-deletes a route on behalf of requester. The DELETE audit
// row keeps referencing the removed identifier and records the prior name.
func (s *routeService) DeleteRoute(ctx context.Context, id int64, requester models.User) error {
	log := logger.FromContext(ctx)

	err := s.tx.WithinTx(ctx, sql.LevelRepeatableRead, func(tx *sql.Tx) error {
		existing, err := s.routes.GetRoute(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := CanMutate(existing, requester, models.OperationDelete); err != nil {
			return err
		}

		if err := s.routes.DeleteRoute(ctx, tx, id); err != nil {
			return err
		}

		return s.audits.Record(ctx, tx, &models.RouteAudit{
			RouteID:       id,
			Operation:     models.OperationDelete,
			Timestamp:     time.Now().UTC(),
			PerformedByID: requester.ID,
			Description:   fmt.Sprintf("route %q deleted", existing.Name),
		})
	})
	if err != nil {
		log.Err(err).Int64("route_id", id).Msg("route deletion failed")
		return fmt.Errorf("route deletion failed: %w", err)
	}

	s.notifier.PublishRouteChange(models.RouteChangeEvent{
		Operation: models.OperationDelete,
		RouteID:   id,
	})
	return nil
}

// DeleteRoutesByRating bulk-deletes the requester's own routes with the given
// rating. The ownership filter always applies, administrators included. Each
// deleted route gets its own audit row; one aggregate change event is
// published after commit. Returns the number of routes deleted.
func (s *routeService) DeleteRoutesByRating(ctx context.Context, rating int64, requester models.User) (int, error) {
	log := logger.FromContext(ctx)

	var deletedIDs []int64
	err := s.tx.WithinTx(ctx, sql.LevelRepeatableRead, func(tx *sql.Tx) error {
		matches, err := s.routes.ListByRatingAndOwner(ctx, tx, rating, requester.ID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, route := range matches {
			if err := s.routes.DeleteRoute(ctx, tx, route.ID); err != nil {
				return err
			}
			audit := models.RouteAudit{
				RouteID:       route.ID,
				Operation:     models.OperationDelete,
				Timestamp:     now,
				PerformedByID: requester.ID,
				Description:   fmt.Sprintf("route %q deleted by rating filter %d", route.Name, rating),
			}
			if err := s.audits.Record(ctx, tx, &audit); err != nil {
				return err
			}
			deletedIDs = append(deletedIDs, route.ID)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Int64("rating", rating).Msg("bulk deletion by rating failed")
		return 0, fmt.Errorf("bulk deletion by rating failed: %w", err)
	}

	if len(deletedIDs) > 0 {
		s.notifier.PublishRouteChange(models.RouteChangeEvent{
			Operation: models.OperationDelete,
			RouteIDs:  deletedIDs,
		})
	}
	return len(deletedIDs), nil
}

func (s *routeService) SearchRoutesByName(ctx context.Context, substring string) ([]models.Route, error) {
	return s.routes.SearchByName(ctx, s.pool, substring)
}

func (s *routeService) SearchRoutesByRatingLessThan(ctx context.Context, rating int64) ([]models.Route, error) {
	return s.routes.ListRatingLessThan(ctx, s.pool, rating)
}

func (s *routeService) FindRoutesBetweenLocations(ctx context.Context, fromName, toName string, sortBy validators.SortKey) ([]models.Route, error) {
	return s.routes.FindBetweenLocations(ctx, s.pool, fromName, toName, sortBy)
}

func (s *routeService) ListRouteAudit(ctx context.Context, routeID int64) ([]models.RouteAudit, error) {
	return s.audits.ListByRoute(ctx, s.pool, routeID)
}

// CreateRouteInTx runs the single-route creation sequence inside a
// caller-owned transaction: scoped name pre-check, location resolution, the
// route write and the CREATE audit row. The bulk import pipeline calls it so
// batch creations join the import's serializable transaction and inherit
// every single-route invariant. No event is published here; publication stays
// with the transaction owner, after commit.
func (s *routeService) CreateRouteInTx(ctx context.Context, q store.Querier, input models.RouteInput, requester models.User) (models.Route, error) {
	if err := validators.ValidateNewRoute(input); err != nil {
		return models.Route{}, err
	}

	taken, err := s.routes.NameTaken(ctx, q, input.Name, 0)
	if err != nil {
		return models.Route{}, err
	}
	if taken {
		return models.Route{}, store.ErrRouteNameTaken
	}

	from, err := s.resolveLocation(ctx, q, input.From)
	if err != nil {
		return models.Route{}, err
	}

	var to *models.Location
	if input.To != nil {
		resolved, err := s.resolveLocation(ctx, q, *input.To)
		if err != nil {
			return models.Route{}, err
		}
		to = &resolved
	}

	now := time.Now().UTC()
	route := models.Route{
		Name:              input.Name,
		Coordinates:       models.Coordinates{X: *input.Coordinates.X, Y: *input.Coordinates.Y},
		CreationDate:      now,
		From:              from,
		To:                to,
		Distance:          input.Distance,
		Rating:            input.Rating,
		CreatedBy:         requester,
		AllowAdminEditing: input.AllowAdminEditing,
	}

	if err := s.routes.CreateRoute(ctx, q, &route); err != nil {
		return models.Route{}, err
	}

	err = s.audits.Record(ctx, q, &models.RouteAudit{
		RouteID:       route.ID,
		Operation:     models.OperationCreate,
		Timestamp:     now,
		PerformedByID: requester.ID,
		Description:   fmt.Sprintf("route %q created", route.Name),
	})
	if err != nil {
		return models.Route{}, err
	}

	return route, nil
}

// resolveLocation reuses the stored record when the input carries an
// identifier and persists a new location otherwise.
func (s *routeService) resolveLocation(ctx context.Context, q store.Querier, input models.LocationInput) (models.Location, error) {
	if input.ID != nil {
		return s.locations.GetLocation(ctx, q, *input.ID)
	}

	location := models.Location{X: input.X, Y: input.Y, Name: input.Name}
	if err := s.locations.SaveLocation(ctx, q, &location); err != nil {
		return models.Location{}, err
	}
	return location, nil
}
