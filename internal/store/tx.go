package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/ta4ilka/route-atlas/internal/logger"
)

// Querier is the subset of database operations shared by *sql.DB and *sql.Tx.
// Repository methods accept a Querier so that the service layer can compose
// several repositories inside one transaction: a route write, its audit row,
// and any resolved locations commit or roll back together.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithinTx runs fn inside a transaction opened at the given isolation level.
// The transaction is rolled back automatically (via defer) when fn returns an
// error or panics; the commit is attempted only after fn succeeds.
//
// Single-route mutations run at [sql.LevelRepeatableRead]; the bulk import
// pipeline runs at [sql.LevelSerializable] because it validates the full
// route name-space before writing.
func (db *DB) WithinTx(ctx context.Context, isolation sql.IsolationLevel, fn func(tx *sql.Tx) error) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: isolation})
	if err != nil {
		log.Err(err).Str("func", "*DB.WithinTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		if postgresError(err) == pgerrcode.SerializationFailure {
			log.Warn().Err(err).Str("func", "*DB.WithinTx").Msg("transaction lost a serialization race")
			return fmt.Errorf("%w: %w", ErrSerializationConflict, err)
		}
		return err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		// under serializable isolation the conflict can surface only at
		// commit time
		if postgresError(commitErr) == pgerrcode.SerializationFailure {
			log.Warn().Err(commitErr).Str("func", "*DB.WithinTx").Msg("transaction lost a serialization race")
			return fmt.Errorf("%w: %w", ErrSerializationConflict, commitErr)
		}
		log.Err(commitErr).Str("func", "*DB.WithinTx").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}
