package store

import (
	"context"
	"fmt"

	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/models"
)

// auditRepository is the PostgreSQL-backed implementation of
// [AuditRepository]. Record always runs on the caller's [Querier]: the audit
// row commits atomically with the mutation it describes, and a failed audit
// write aborts the whole transaction.
type auditRepository struct {
	logger *logger.Logger
}

// NewAuditRepository constructs an [AuditRepository].
func NewAuditRepository(logger *logger.Logger) AuditRepository {
	logger.Debug().Msg("creating audit repository")
	return &auditRepository{logger: logger}
}

// Record appends one immutable audit row, writing the server-assigned
// identifier back into audit.
func (r *auditRepository) Record(ctx context.Context, q Querier, audit *models.RouteAudit) error {
	log := logger.FromContext(ctx)

	err := q.QueryRowContext(ctx, recordAudit,
		audit.RouteID,
		audit.Operation,
		audit.Timestamp,
		audit.PerformedByID,
		audit.Description,
	).Scan(&audit.ID)

	if err != nil {
		log.Err(err).
			Str("func", "auditRepository.Record").
			Int64("route_id", audit.RouteID).
			Str("operation", string(audit.Operation)).
			Msg("failed to insert audit row")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// ListByRoute returns the audit rows for one route in commit order, with the
// performing user's username resolved.
func (r *auditRepository) ListByRoute(ctx context.Context, q Querier, routeID int64) ([]models.RouteAudit, error) {
	log := logger.FromContext(ctx)

	rows, err := q.QueryContext(ctx, listAuditByRoute, routeID)
	if err != nil {
		log.Err(err).
			Str("func", "auditRepository.ListByRoute").
			Int64("route_id", routeID).
			Msg("failed to query audit rows")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	audits := make([]models.RouteAudit, 0, 16)

	for rows.Next() {
		var audit models.RouteAudit
		scanErr := rows.Scan(
			&audit.ID,
			&audit.RouteID,
			&audit.Operation,
			&audit.Timestamp,
			&audit.PerformedByID,
			&audit.PerformedBy,
			&audit.Description,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "auditRepository.ListByRoute").
				Int64("route_id", routeID).
				Msg("failed to scan audit row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		audits = append(audits, audit)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "auditRepository.ListByRoute").
			Int64("route_id", routeID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return audits, nil
}
