package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ta4ilka/route-atlas/internal/store"
	"github.com/ta4ilka/route-atlas/internal/validators"
	"github.com/ta4ilka/route-atlas/models"
)

var errStorage = errors.New("storage error")

// ─────────────────────────────────────────────
// Mock: store.TxRunner
// ─────────────────────────────────────────────

// mockTxRunner executes the transaction body directly with a nil *sql.Tx.
// Repositories in these tests are mocks and never touch the Querier.
type mockTxRunner struct {
	withinTxFn func(ctx context.Context, isolation sql.IsolationLevel, fn func(tx *sql.Tx) error) error

	isolations []sql.IsolationLevel
}

func (m *mockTxRunner) WithinTx(ctx context.Context, isolation sql.IsolationLevel, fn func(tx *sql.Tx) error) error {
	m.isolations = append(m.isolations, isolation)
	if m.withinTxFn != nil {
		return m.withinTxFn(ctx, isolation, fn)
	}
	return fn(nil)
}

// ─────────────────────────────────────────────
// Mock: store.RouteRepository
// ─────────────────────────────────────────────

type mockRouteRepository struct {
	createFn      func(ctx context.Context, q store.Querier, route *models.Route) error
	getFn         func(ctx context.Context, q store.Querier, id int64) (models.Route, error)
	listFn        func(ctx context.Context, q store.Querier) ([]models.Route, error)
	updateFn      func(ctx context.Context, q store.Querier, route models.Route) error
	deleteFn      func(ctx context.Context, q store.Querier, id int64) error
	nameTakenFn   func(ctx context.Context, q store.Querier, name string, excludeID int64) (bool, error)
	byRatingFn    func(ctx context.Context, q store.Querier, rating int64, ownerID int64) ([]models.Route, error)
	searchFn      func(ctx context.Context, q store.Querier, substring string) ([]models.Route, error)
	ratingLessFn  func(ctx context.Context, q store.Querier, rating int64) ([]models.Route, error)
	findBetweenFn func(ctx context.Context, q store.Querier, fromName, toName string, sortBy validators.SortKey) ([]models.Route, error)
}

func (m *mockRouteRepository) CreateRoute(ctx context.Context, q store.Querier, route *models.Route) error {
	if m.createFn != nil {
		return m.createFn(ctx, q, route)
	}
	return nil
}

func (m *mockRouteRepository) GetRoute(ctx context.Context, q store.Querier, id int64) (models.Route, error) {
	if m.getFn != nil {
		return m.getFn(ctx, q, id)
	}
	return models.Route{}, nil
}

func (m *mockRouteRepository) ListRoutes(ctx context.Context, q store.Querier) ([]models.Route, error) {
	if m.listFn != nil {
		return m.listFn(ctx, q)
	}
	return nil, nil
}

func (m *mockRouteRepository) UpdateRoute(ctx context.Context, q store.Querier, route models.Route) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, q, route)
	}
	return nil
}

func (m *mockRouteRepository) DeleteRoute(ctx context.Context, q store.Querier, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, q, id)
	}
	return nil
}

func (m *mockRouteRepository) NameTaken(ctx context.Context, q store.Querier, name string, excludeID int64) (bool, error) {
	if m.nameTakenFn != nil {
		return m.nameTakenFn(ctx, q, name, excludeID)
	}
	return false, nil
}

func (m *mockRouteRepository) ListByRatingAndOwner(ctx context.Context, q store.Querier, rating int64, ownerID int64) ([]models.Route, error) {
	if m.byRatingFn != nil {
		return m.byRatingFn(ctx, q, rating, ownerID)
	}
	return nil, nil
}

func (m *mockRouteRepository) SearchByName(ctx context.Context, q store.Querier, substring string) ([]models.Route, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q, substring)
	}
	return nil, nil
}

func (m *mockRouteRepository) ListRatingLessThan(ctx context.Context, q store.Querier, rating int64) ([]models.Route, error) {
	if m.ratingLessFn != nil {
		return m.ratingLessFn(ctx, q, rating)
	}
	return nil, nil
}

func (m *mockRouteRepository) FindBetweenLocations(ctx context.Context, q store.Querier, fromName, toName string, sortBy validators.SortKey) ([]models.Route, error) {
	if m.findBetweenFn != nil {
		return m.findBetweenFn(ctx, q, fromName, toName, sortBy)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: store.LocationRepository
// ─────────────────────────────────────────────

type mockLocationRepository struct {
	saveLocationFn    func(ctx context.Context, q store.Querier, location *models.Location) error
	getLocationFn     func(ctx context.Context, q store.Querier, id int64) (models.Location, error)
	saveCoordinatesFn func(ctx context.Context, q store.Querier, coordinates *models.Coordinates) error
}

func (m *mockLocationRepository) SaveLocation(ctx context.Context, q store.Querier, location *models.Location) error {
	if m.saveLocationFn != nil {
		return m.saveLocationFn(ctx, q, location)
	}
	location.ID = 1
	return nil
}

func (m *mockLocationRepository) GetLocation(ctx context.Context, q store.Querier, id int64) (models.Location, error) {
	if m.getLocationFn != nil {
		return m.getLocationFn(ctx, q, id)
	}
	return models.Location{ID: id}, nil
}

func (m *mockLocationRepository) SaveCoordinates(ctx context.Context, q store.Querier, coordinates *models.Coordinates) error {
	if m.saveCoordinatesFn != nil {
		return m.saveCoordinatesFn(ctx, q, coordinates)
	}
	coordinates.ID = 1
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.AuditRepository
// ─────────────────────────────────────────────

type mockAuditRepository struct {
	recordFn func(ctx context.Context, q store.Querier, audit *models.RouteAudit) error
	listFn   func(ctx context.Context, q store.Querier, routeID int64) ([]models.RouteAudit, error)

	recorded []models.RouteAudit
}

func (m *mockAuditRepository) Record(ctx context.Context, q store.Querier, audit *models.RouteAudit) error {
	if m.recordFn != nil {
		return m.recordFn(ctx, q, audit)
	}
	m.recorded = append(m.recorded, *audit)
	return nil
}

func (m *mockAuditRepository) ListByRoute(ctx context.Context, q store.Querier, routeID int64) ([]models.RouteAudit, error) {
	if m.listFn != nil {
		return m.listFn(ctx, q, routeID)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: store.ImportHistoryRepository
// ─────────────────────────────────────────────

type mockImportHistoryRepository struct {
	createFn     func(ctx context.Context, history *models.ImportHistory) error
	setFileURLFn func(ctx context.Context, id int64, fileURL string) error
	finalizeFn   func(ctx context.Context, id int64, status models.ImportStatus, recordsImported int, errorMessage *string) error
	getFn        func(ctx context.Context, id int64) (models.ImportHistory, error)
	listAllFn    func(ctx context.Context) ([]models.ImportHistory, error)
	listByFn     func(ctx context.Context, username string) ([]models.ImportHistory, error)

	finalizedStatus  models.ImportStatus
	finalizedRecords int
	finalizedMessage *string
}

func (m *mockImportHistoryRepository) Create(ctx context.Context, history *models.ImportHistory) error {
	if m.createFn != nil {
		return m.createFn(ctx, history)
	}
	history.ID = 1
	return nil
}

func (m *mockImportHistoryRepository) SetFileURL(ctx context.Context, id int64, fileURL string) error {
	if m.setFileURLFn != nil {
		return m.setFileURLFn(ctx, id, fileURL)
	}
	return nil
}

func (m *mockImportHistoryRepository) Finalize(ctx context.Context, id int64, status models.ImportStatus, recordsImported int, errorMessage *string) error {
	m.finalizedStatus = status
	m.finalizedRecords = recordsImported
	m.finalizedMessage = errorMessage
	if m.finalizeFn != nil {
		return m.finalizeFn(ctx, id, status, recordsImported, errorMessage)
	}
	return nil
}

func (m *mockImportHistoryRepository) Get(ctx context.Context, id int64) (models.ImportHistory, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.ImportHistory{}, nil
}

func (m *mockImportHistoryRepository) ListAll(ctx context.Context) ([]models.ImportHistory, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockImportHistoryRepository) ListByPerformer(ctx context.Context, username string) ([]models.ImportHistory, error) {
	if m.listByFn != nil {
		return m.listByFn(ctx, username)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: Notifier
// ─────────────────────────────────────────────

// mockNotifier records every published event in order.
type mockNotifier struct {
	routeEvents  []models.RouteChangeEvent
	importEvents []models.ImportHistoryEvent
}

func (m *mockNotifier) PublishRouteChange(event models.RouteChangeEvent) {
	m.routeEvents = append(m.routeEvents, event)
}

func (m *mockNotifier) PublishImportHistory(event models.ImportHistoryEvent) {
	m.importEvents = append(m.importEvents, event)
}

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn func(ctx context.Context, user models.User) (models.User, error)
	findFn   func(ctx context.Context, username string) (models.User, error)
	getFn    func(ctx context.Context, id int64) (models.User, error)
	updateFn func(ctx context.Context, user models.User) error
	listFn   func(ctx context.Context) ([]models.User, error)

	updatedUsers []models.User
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = 1
	return user, nil
}

func (m *mockUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	if m.findFn != nil {
		return m.findFn(ctx, username)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) GetUser(ctx context.Context, id int64) (models.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.User{ID: id}, nil
}

func (m *mockUserRepository) UpdateUserRoles(ctx context.Context, user models.User) error {
	m.updatedUsers = append(m.updatedUsers, user)
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) ListAdminRoleRequests(ctx context.Context) ([]models.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
