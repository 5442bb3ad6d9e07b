package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/models"
)

func newTestAuditRepo(t *testing.T) (*auditRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	repo := &auditRepository{logger: logger.Nop()}
	return repo, mock, db
}

func TestAuditRepository_Record(t *testing.T) {
	repo, mock, db := newTestAuditRepo(t)
	defer db.Close()

	audit := models.RouteAudit{
		RouteID:       11,
		Operation:     models.OperationCreate,
		Timestamp:     time.Now().UTC(),
		PerformedByID: 7,
		Description:   `route "Coastal Walk" created`,
	}

	mock.ExpectQuery("INSERT INTO route_audits").
		WithArgs(audit.RouteID, audit.Operation, audit.Timestamp, audit.PerformedByID, audit.Description).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	if err := repo.Record(context.Background(), db, &audit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if audit.ID != 1 {
		t.Errorf("expected audit ID=1, got %d", audit.ID)
	}
}

func TestAuditRepository_Record_DBError(t *testing.T) {
	repo, mock, db := newTestAuditRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO route_audits").
		WillReturnError(errors.New("db network error"))

	err := repo.Record(context.Background(), db, &models.RouteAudit{RouteID: 11})
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected wrapped ErrExecutingQuery, got %v", err)
	}
}

func TestAuditRepository_ListByRoute(t *testing.T) {
	repo, mock, db := newTestAuditRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "route_id", "operation", "performed_at", "performed_by_id", "username", "description"}).
		AddRow(1, 11, "CREATE", now.Add(-time.Hour), 7, "alice", `route "Coastal Walk" created`).
		AddRow(2, 11, "UPDATE", now, 9, "root", `route "Coastal Walk" updated`)

	mock.ExpectQuery("SELECT .+ FROM route_audits").
		WithArgs(int64(11)).
		WillReturnRows(rows)

	audits, err := repo.ListByRoute(context.Background(), db, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(audits) != 2 {
		t.Fatalf("expected 2 audit rows, got %d", len(audits))
	}
	// chronological order, oldest first
	if audits[0].Operation != models.OperationCreate || audits[1].Operation != models.OperationUpdate {
		t.Errorf("unexpected operations: %s, %s", audits[0].Operation, audits[1].Operation)
	}
	if audits[1].PerformedBy != "root" {
		t.Errorf("expected resolved username, got %q", audits[1].PerformedBy)
	}
}
