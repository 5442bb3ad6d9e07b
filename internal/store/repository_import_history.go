package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/models"
)

// importHistoryRepository is the PostgreSQL-backed implementation of
// [ImportHistoryRepository]. It runs directly on the shared pool, never on an
// import transaction: a PENDING or FAILURE row has to survive the rollback of
// the import it describes.
type importHistoryRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewImportHistoryRepository constructs an [ImportHistoryRepository].
func NewImportHistoryRepository(db *DB, logger *logger.Logger) ImportHistoryRepository {
	logger.Debug().Msg("creating import history repository")
	return &importHistoryRepository{logger: logger, db: db}
}

// Create inserts a PENDING row and writes the server-assigned identifier back
// into history.
func (r *importHistoryRepository) Create(ctx context.Context, history *models.ImportHistory) error {
	log := logger.FromContext(ctx)

	err := r.db.QueryRowContext(ctx, createImportHistory,
		history.Timestamp,
		history.Status,
		history.PerformedBy,
	).Scan(&history.ID)

	if err != nil {
		log.Err(err).
			Str("func", "importHistoryRepository.Create").
			Str("performed_by", history.PerformedBy).
			Msg("failed to insert import history row")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// SetFileURL records the staged source file location on a pending row.
func (r *importHistoryRepository) SetFileURL(ctx context.Context, id int64, fileURL string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, setImportFileURL, id, fileURL)
	if err != nil {
		log.Err(err).
			Str("func", "importHistoryRepository.SetFileURL").
			Int64("import_id", id).
			Msg("failed to set import file url")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return r.checkAffected(result, id, "importHistoryRepository.SetFileURL", log)
}

// Finalize moves a pending row to its terminal status. On FAILURE the file
// URL is cleared in the same statement.
func (r *importHistoryRepository) Finalize(ctx context.Context, id int64, status models.ImportStatus, recordsImported int, errorMessage *string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, finalizeImportHistory, id, status, recordsImported, errorMessage)
	if err != nil {
		log.Err(err).
			Str("func", "importHistoryRepository.Finalize").
			Int64("import_id", id).
			Str("status", string(status)).
			Msg("failed to finalize import history row")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return r.checkAffected(result, id, "importHistoryRepository.Finalize", log)
}

// Get returns one import-history row by identifier.
func (r *importHistoryRepository) Get(ctx context.Context, id int64) (models.ImportHistory, error) {
	log := logger.FromContext(ctx)

	var history models.ImportHistory
	err := r.db.QueryRowContext(ctx, getImportHistory, id).Scan(
		&history.ID,
		&history.Timestamp,
		&history.Status,
		&history.PerformedBy,
		&history.RecordsImported,
		&history.FileURL,
		&history.ErrorMessage,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ImportHistory{}, ErrImportHistoryNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "importHistoryRepository.Get").
			Int64("import_id", id).
			Msg("failed to get import history row")
		return models.ImportHistory{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return history, nil
}

// ListAll returns every import-history row, newest first.
func (r *importHistoryRepository) ListAll(ctx context.Context) ([]models.ImportHistory, error) {
	return r.list(ctx, "")
}

// ListByPerformer returns the import-history rows of one user, newest first.
func (r *importHistoryRepository) ListByPerformer(ctx context.Context, username string) ([]models.ImportHistory, error) {
	return r.list(ctx, username)
}

func (r *importHistoryRepository) list(ctx context.Context, performedBy string) ([]models.ImportHistory, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListImportHistoryQuery(performedBy)
	if err != nil {
		log.Err(err).
			Str("func", "importHistoryRepository.list").
			Msg("failed to build import history query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "importHistoryRepository.list").
			Msg("failed to query import history rows")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	histories := make([]models.ImportHistory, 0, 16)

	for rows.Next() {
		var history models.ImportHistory
		scanErr := rows.Scan(
			&history.ID,
			&history.Timestamp,
			&history.Status,
			&history.PerformedBy,
			&history.RecordsImported,
			&history.FileURL,
			&history.ErrorMessage,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "importHistoryRepository.list").
				Msg("failed to scan import history row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		histories = append(histories, history)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "importHistoryRepository.list").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return histories, nil
}

func (r *importHistoryRepository) checkAffected(result sql.Result, id int64, fn string, log *logger.Logger) error {
	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", fn).Int64("import_id", id).Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrImportHistoryNotFound
	}
	return nil
}
