package store

import (
	"github.com/ta4ilka/route-atlas/internal/logger"
)

// Storages bundles every repository behind one constructor so the service
// layer wires against a single value.
type Storages struct {
	Routes        RouteRepository
	Locations     LocationRepository
	Users         UserRepository
	Audits        AuditRepository
	ImportHistory ImportHistoryRepository
}

// NewStorages constructs all repositories over one database handle.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		Routes:        NewRouteRepository(logger),
		Locations:     NewLocationRepository(logger),
		Users:         NewUserRepository(db, logger),
		Audits:        NewAuditRepository(logger),
		ImportHistory: NewImportHistoryRepository(db, logger),
	}
}
