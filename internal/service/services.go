package service

import (
	"github.com/ta4ilka/route-atlas/internal/blob"
	"github.com/ta4ilka/route-atlas/internal/config"
	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/internal/store"
)

// Services bundles the business layer behind one constructor.
type Services struct {
	RouteService  RouteService
	ImportService ImportService
	AuthService   AuthService
	UserService   UserService
}

// NewServices wires every service over the shared database handle, the
// repositories, the blob store and the change notifier.
func NewServices(db *store.DB, storages *store.Storages, blobs blob.Store, notifier Notifier, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	routeService := NewRouteService(db, db, storages.Routes, storages.Locations, storages.Audits, notifier, logger)

	return &Services{
		RouteService:  routeService,
		ImportService: NewImportService(db, routeService, storages.Locations, storages.ImportHistory, blobs, notifier, logger),
		AuthService:   NewAuthService(storages.Users, cfg.App, logger),
		UserService:   NewUserService(storages.Users, logger),
	}
}
