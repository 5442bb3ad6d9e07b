package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRouteNameTaken is returned when a route insert or rename collides
	// with an existing route name under case-insensitive comparison. It is
	// produced both by the scoped pre-check query and by the database
	// unique index on lower(name), which is the final authority when two
	// transactions interleave past the application-level check.
	ErrRouteNameTaken = errors.New("route name already exists")

	// ErrRouteNotFound is returned when a query or mutation targets a route
	// identifier that does not exist in the database.
	ErrRouteNotFound = errors.New("route was not found")

	// ErrLocationNotFound is returned when a referenced location identifier
	// does not exist in the database.
	ErrLocationNotFound = errors.New("location was not found")

	// ErrUsernameTaken is returned when an attempt to register a new user
	// fails because a user with the same username already exists.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrUserNotFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrUserNotFound = errors.New("user was not found")

	// ErrImportHistoryNotFound is returned when finalizing or reading an
	// import-history row that does not exist.
	ErrImportHistoryNotFound = errors.New("import history record was not found")

	// ErrSerializationConflict is returned when PostgreSQL aborts a
	// transaction with a serialization failure (SQLSTATE 40001) because a
	// concurrent writer got there first. The work was rolled back; the
	// caller may safely retry the whole transaction.
	ErrSerializationConflict = errors.New("transaction serialization conflict")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
