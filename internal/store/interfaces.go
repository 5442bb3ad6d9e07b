package store

import (
	"context"
	"database/sql"

	"github.com/ta4ilka/route-atlas/internal/validators"
	"github.com/ta4ilka/route-atlas/models"
)

// TxRunner opens transactions for the service layer. Implemented by [*DB].
type TxRunner interface {
	WithinTx(ctx context.Context, isolation sql.IsolationLevel, fn func(tx *sql.Tx) error) error
}

// RouteRepository provides typed CRUD and query access to the routes table
// and the coordinates rows embedded into routes. It holds no business logic;
// invariant enforcement beyond the lower(name) unique index lives in the
// service layer.
type RouteRepository interface {
	CreateRoute(ctx context.Context, q Querier, route *models.Route) error
	GetRoute(ctx context.Context, q Querier, id int64) (models.Route, error)
	ListRoutes(ctx context.Context, q Querier) ([]models.Route, error)
	UpdateRoute(ctx context.Context, q Querier, route models.Route) error
	DeleteRoute(ctx context.Context, q Querier, id int64) error

	// NameTaken reports whether a different route (any route when excludeID
	// is zero) already uses the given name case-insensitively. The check is
	// scoped to the candidate name, never a full-table scan.
	NameTaken(ctx context.Context, q Querier, name string, excludeID int64) (bool, error)

	ListByRatingAndOwner(ctx context.Context, q Querier, rating int64, ownerID int64) ([]models.Route, error)
	SearchByName(ctx context.Context, q Querier, substring string) ([]models.Route, error)
	ListRatingLessThan(ctx context.Context, q Querier, rating int64) ([]models.Route, error)
	FindBetweenLocations(ctx context.Context, q Querier, fromName, toName string, sortBy validators.SortKey) ([]models.Route, error)
}

// LocationRepository provides access to the locations table and to standalone
// coordinates rows imported outside any route.
type LocationRepository interface {
	SaveLocation(ctx context.Context, q Querier, location *models.Location) error
	GetLocation(ctx context.Context, q Querier, id int64) (models.Location, error)
	SaveCoordinates(ctx context.Context, q Querier, coordinates *models.Coordinates) error
}

// UserRepository provides access to the users table.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	UpdateUserRoles(ctx context.Context, user models.User) error
	ListAdminRoleRequests(ctx context.Context) ([]models.User, error)
}

// AuditRepository appends immutable mutation log rows. Record always runs on
// the caller's Querier so the audit row and the triggering data write commit
// in the same transaction; an audit failure fails the whole mutation.
type AuditRepository interface {
	Record(ctx context.Context, q Querier, audit *models.RouteAudit) error
	ListByRoute(ctx context.Context, q Querier, routeID int64) ([]models.RouteAudit, error)
}

// ImportHistoryRepository manages the append-only bulk-import log. Rows are
// created as PENDING before any import work and finalized exactly once.
type ImportHistoryRepository interface {
	Create(ctx context.Context, history *models.ImportHistory) error
	SetFileURL(ctx context.Context, id int64, fileURL string) error
	Finalize(ctx context.Context, id int64, status models.ImportStatus, recordsImported int, errorMessage *string) error
	Get(ctx context.Context, id int64) (models.ImportHistory, error)
	ListAll(ctx context.Context) ([]models.ImportHistory, error)
	ListByPerformer(ctx context.Context, username string) ([]models.ImportHistory, error)
}
