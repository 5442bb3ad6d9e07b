package service

import (
	"context"
	"io"

	"github.com/ta4ilka/route-atlas/internal/store"
	"github.com/ta4ilka/route-atlas/internal/validators"
	"github.com/ta4ilka/route-atlas/models"
)

// RouteService implements the single-route mutation and query surface. Every
// mutation runs in one transaction, writes exactly one audit row per affected
// route, and publishes a change event strictly after commit. The requester is
// an explicit parameter on every operation; the service holds no ambient
// identity.
type RouteService interface {
	RouteCreator

	CreateRoute(ctx context.Context, input models.RouteInput, requester models.User) (models.Route, error)
	GetRoute(ctx context.Context, id int64) (models.Route, error)
	ListRoutes(ctx context.Context) ([]models.Route, error)
	UpdateRoute(ctx context.Context, id int64, update models.RouteUpdate, requester models.User) (models.Route, error)
	DeleteRoute(ctx context.Context, id int64, requester models.User) error
	DeleteRoutesByRating(ctx context.Context, rating int64, requester models.User) (int, error)

	SearchRoutesByName(ctx context.Context, substring string) ([]models.Route, error)
	SearchRoutesByRatingLessThan(ctx context.Context, rating int64) ([]models.Route, error)
	FindRoutesBetweenLocations(ctx context.Context, fromName, toName string, sortBy validators.SortKey) ([]models.Route, error)

	ListRouteAudit(ctx context.Context, routeID int64) ([]models.RouteAudit, error)
}

// RouteCreator creates a route inside a caller-owned transaction while
// keeping every single-route invariant and the audit emission. The bulk
// import pipeline depends on it instead of RouteService so batch creations
// join the import's serializable transaction. Satisfied by the concrete
// route service.
type RouteCreator interface {
	CreateRouteInTx(ctx context.Context, q store.Querier, input models.RouteInput, requester models.User) (models.Route, error)
}

// ImportService runs the all-or-nothing bulk import pipeline.
type ImportService interface {
	ImportRoutes(ctx context.Context, filename string, file io.Reader, requester models.User) (models.ImportHistory, error)
	ListImportHistory(ctx context.Context, requester models.User) ([]models.ImportHistory, error)
	GetImportFileURL(ctx context.Context, historyID int64, requester models.User) (string, error)
}

// AuthService handles registration, credential verification and the JWT
// lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, request models.AuthRequest) (models.User, error)
	Login(ctx context.Context, request models.AuthRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserService covers account lookups and the admin role workflow.
type UserService interface {
	GetUser(ctx context.Context, id int64) (models.User, error)
	RequestAdminRole(ctx context.Context, requester models.User) (models.User, error)
	ListAdminRoleRequests(ctx context.Context, requester models.User) ([]models.User, error)
	ApproveAdminRole(ctx context.Context, userID int64, requester models.User) (models.User, error)
}

// Notifier is the outbound change-event boundary. Publishing must never block
// and is always called after the triggering transaction has committed.
// Satisfied by [notifier.Hub].
type Notifier interface {
	PublishRouteChange(event models.RouteChangeEvent)
	PublishImportHistory(event models.ImportHistoryEvent)
}
