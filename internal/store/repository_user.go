package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation and lookup against the "users" table.
//
// User operations never participate in route mutation transactions, so the
// repository runs directly on the embedded [*DB] connection.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (ID, CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUsernameTaken].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	err := r.db.QueryRowContext(ctx, createUser,
		user.Username,
		user.PasswordHash,
		joinRoles(user.Roles),
		user.AdminRoleRequested,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			log.Warn().Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("username already exists")
			return models.User{}, ErrUsernameTaken
		}

		log.Err(err).Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("failed to insert user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindUserByUsername retrieves a user record by its unique username.
// Returns [ErrUserNotFound] when no account matches.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.scanUser(ctx, "*userRepository.FindUserByUsername", findUserByUsername, username)
}

// GetUser retrieves a user record by identifier.
// Returns [ErrUserNotFound] when no account matches.
func (r *userRepository) GetUser(ctx context.Context, id int64) (models.User, error) {
	return r.scanUser(ctx, "*userRepository.GetUser", getUserByID, id)
}

// UpdateUserRoles overwrites the user's role set and pending-admin-request
// flag. Used by the admin role workflow; no other user columns are mutable.
func (r *userRepository) UpdateUserRoles(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateUserRoles, user.ID, joinRoles(user.Roles), user.AdminRoleRequested)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUserRoles").Int64("user_id", user.ID).Msg("failed to update user roles")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ListAdminRoleRequests returns every user with a pending admin role request.
func (r *userRepository) ListAdminRoleRequests(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listAdminRoleRequests)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListAdminRoleRequests").Msg("failed to query admin role requests")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 8)

	for rows.Next() {
		var (
			user  models.User
			roles string
		)
		if scanErr := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &roles, &user.AdminRoleRequested, &user.CreatedAt); scanErr != nil {
			log.Err(scanErr).Str("func", "*userRepository.ListAdminRoleRequests").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		user.Roles = parseRoles(roles)
		users = append(users, user)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*userRepository.ListAdminRoleRequests").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return users, nil
}

// scanUser runs a single-row user query and maps sql.ErrNoRows to
// [ErrUserNotFound].
func (r *userRepository) scanUser(ctx context.Context, caller, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var (
		user  models.User
		roles string
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Username, &user.PasswordHash, &roles, &user.AdminRoleRequested, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", caller).Msg("failed to query user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	user.Roles = parseRoles(roles)
	return user, nil
}

// joinRoles flattens the role set into the comma-joined column form.
func joinRoles(roles []models.Role) string {
	parts := make([]string, 0, len(roles))
	for _, role := range roles {
		parts = append(parts, string(role))
	}
	return strings.Join(parts, ",")
}
