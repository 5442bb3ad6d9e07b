package service

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/ta4ilka/route-atlas/internal/blob"
	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/internal/parser"
	"github.com/ta4ilka/route-atlas/internal/store"
	"github.com/ta4ilka/route-atlas/internal/validators"
	"github.com/ta4ilka/route-atlas/models"
)

const importFileContentType = "application/x-yaml"

// importService is the concrete implementation of ImportService.
//
// The pipeline is all-or-nothing: the history row is created PENDING before
// any work, the raw file is staged in the blob store, the document is parsed
// strictly, and every database write runs in one serializable transaction.
// On any failure the transaction rolls back wholesale, the staged blob is
// deleted, the history row is finalized FAILURE, and the error is returned.
//
// History writes deliberately bypass the import transaction: a PENDING or
// FAILURE row must survive the rollback of the import it describes.
type importService struct {
	tx      store.TxRunner
	creator RouteCreator

	locations store.LocationRepository
	history   store.ImportHistoryRepository

	blobs    blob.Store
	notifier Notifier
	logger   *logger.Logger
}

// NewImportService constructs an ImportService.
func NewImportService(
	tx store.TxRunner,
	creator RouteCreator,
	locations store.LocationRepository,
	history store.ImportHistoryRepository,
	blobs blob.Store,
	notifier Notifier,
	logger *logger.Logger,
) ImportService {
	return &importService{
		tx:        tx,
		creator:   creator,
		locations: locations,
		history:   history,
		blobs:     blobs,
		notifier:  notifier,
		logger:    logger,
	}
}

// ImportRoutes ingests one bulk-import document on behalf of requester.
//
// The returned history row is always finalized: SUCCESS with the count of
// imported records, or FAILURE with the triggering error message and zero
// records. A FAILURE outcome is accompanied by the original error.
func (s *importService) ImportRoutes(ctx context.Context, filename string, file io.Reader, requester models.User) (models.ImportHistory, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	history := models.ImportHistory{
		Timestamp:   now,
		Status:      models.ImportPending,
		PerformedBy: requester.Username,
	}
	if err := s.history.Create(ctx, &history); err != nil {
		log.Err(err).Str("performed_by", requester.Username).Msg("failed to open import history row")
		return models.ImportHistory{}, fmt.Errorf("opening import history: %w", err)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return s.fail(ctx, history, "", fmt.Errorf("reading import file: %w", err))
	}
	if len(data) == 0 {
		return s.fail(ctx, history, "", ErrImportFileEmpty)
	}

	blobKey := fmt.Sprintf("%s_%d/%s", requester.Username, now.UnixMilli(), filename)
	if _, err := s.blobs.Put(ctx, blobKey, bytes.NewReader(data), blob.PutOptions{ContentType: importFileContentType}); err != nil {
		return s.fail(ctx, history, "", fmt.Errorf("staging import file: %w", err))
	}
	if err := s.history.SetFileURL(ctx, history.ID, blobKey); err != nil {
		return s.fail(ctx, history, blobKey, fmt.Errorf("recording staged file reference: %w", err))
	}
	history.FileURL = &blobKey

	doc, err := parser.ParseImportDocumentBytes(data)
	if err != nil {
		return s.fail(ctx, history, blobKey, err)
	}

	var created []models.Route
	err = s.tx.WithinTx(ctx, sql.LevelSerializable, func(tx *sql.Tx) error {
		for i, input := range doc.Coordinates {
			if err := validators.ValidateCoordinates(input); err != nil {
				return fmt.Errorf("coordinates entry %d: %w", i, err)
			}
			coordinates := models.Coordinates{X: *input.X, Y: *input.Y}
			if err := s.locations.SaveCoordinates(ctx, tx, &coordinates); err != nil {
				return err
			}
		}

		for i, input := range doc.Locations {
			location := models.Location{X: input.X, Y: input.Y, Name: input.Name}
			if err := s.locations.SaveLocation(ctx, tx, &location); err != nil {
				return fmt.Errorf("location entry %d: %w", i, err)
			}
		}

		// The whole route batch is validated before any route write.
		if err := validators.ValidateImportBatch(doc.Routes); err != nil {
			return err
		}

		for _, input := range doc.Routes {
			route, err := s.creator.CreateRouteInTx(ctx, tx, input, requester)
			if err != nil {
				return fmt.Errorf("route %q: %w", input.Name, err)
			}
			created = append(created, route)
		}
		return nil
	})
	if err != nil {
		return s.fail(ctx, history, blobKey, err)
	}

	recordsImported := len(doc.Coordinates) + len(doc.Locations) + len(doc.Routes)
	if err := s.history.Finalize(ctx, history.ID, models.ImportSuccess, recordsImported, nil); err != nil {
		log.Err(err).Int64("import_id", history.ID).Msg("failed to finalize successful import")
		return models.ImportHistory{}, fmt.Errorf("finalizing import history: %w", err)
	}
	history.Status = models.ImportSuccess
	history.RecordsImported = recordsImported

	for i := range created {
		s.notifier.PublishRouteChange(models.RouteChangeEvent{
			Operation: models.OperationCreate,
			RouteID:   created[i].ID,
			Route:     &created[i],
		})
	}
	s.notifier.PublishImportHistory(models.ImportHistoryEvent{History: history})

	log.Info().
		Int64("import_id", history.ID).
		Int("records_imported", recordsImported).
		Str("performed_by", requester.Username).
		Msg("bulk import committed")
	return history, nil
}

// ListImportHistory returns import attempts visible to requester:
// administrators see all rows, everyone else only their own.
func (s *importService) ListImportHistory(ctx context.Context, requester models.User) ([]models.ImportHistory, error) {
	if requester.IsAdmin() {
		return s.history.ListAll(ctx)
	}
	return s.history.ListByPerformer(ctx, requester.Username)
}

// GetImportFileURL returns a fresh presigned download URL for the staged
// source file of one import attempt. Non-admin requesters may only access
// their own attempts.
func (s *importService) GetImportFileURL(ctx context.Context, historyID int64, requester models.User) (string, error) {
	history, err := s.history.Get(ctx, historyID)
	if err != nil {
		return "", err
	}
	if !requester.IsAdmin() && history.PerformedBy != requester.Username {
		return "", ErrImportHistoryAccessDenied
	}
	if history.FileURL == nil {
		return "", ErrImportFileUnavailable
	}
	return s.blobs.PresignURL(ctx, *history.FileURL, blob.SignedURLOptions{})
}

// fail finalizes the history row to FAILURE, deletes the staged blob when one
// exists, publishes the failed attempt, and returns the finalized row with
// the original error.
func (s *importService) fail(ctx context.Context, history models.ImportHistory, blobKey string, cause error) (models.ImportHistory, error) {
	log := logger.FromContext(ctx)

	message := cause.Error()
	if err := s.history.Finalize(ctx, history.ID, models.ImportFailure, 0, &message); err != nil {
		log.Err(err).Int64("import_id", history.ID).Msg("failed to finalize failed import")
	}

	if blobKey != "" {
		if err := s.blobs.Delete(ctx, blobKey); err != nil {
			log.Err(err).Int64("import_id", history.ID).Str("key", blobKey).Msg("failed to delete staged import file")
		}
	}

	history.Status = models.ImportFailure
	history.RecordsImported = 0
	history.FileURL = nil
	history.ErrorMessage = &message
	s.notifier.PublishImportHistory(models.ImportHistoryEvent{History: history})

	log.Err(cause).Int64("import_id", history.ID).Msg("bulk import failed")
	return history, fmt.Errorf("bulk import failed: %w", cause)
}
