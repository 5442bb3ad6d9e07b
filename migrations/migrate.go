// Package migrations embeds the catalog schema and applies it with goose.
// The route, location, user, audit and import-history tables are created in
// numbered steps so a fresh database and a long-lived one converge on the
// same schema.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Migrate brings the connected database up to the latest embedded schema
// version. It runs once at startup, before any repository touches the pool.
func Migrate(db *sql.DB) error {
	if db == nil {
		return errors.New("cannot migrate: nil database handle")
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
