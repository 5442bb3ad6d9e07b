package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"

	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func userRowColumns() []string {
	return []string{"user_id", "username", "password_hash", "roles", "admin_role_requested", "created_at"}
}

func TestUserRepository_CreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	user := models.User{
		Username:     "alice",
		PasswordHash: "hash",
		Roles:        []models.Role{models.RoleUser},
	}

	now := time.Now()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Username, user.PasswordHash, "USER", false).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "created_at"}).AddRow(1, now))

	created, err := repo.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected ID=1, got %d", created.ID)
	}
	if created.Username != "alice" {
		t.Errorf("expected username alice, got %s", created.Username)
	}
}

func TestUserRepository_CreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "alice"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserRepository_CreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "alice"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestUserRepository_FindUserByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_GetUser_RolesParsed(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows(userRowColumns()).
		AddRow(7, "alice", "hash", "USER,ADMIN", false, time.Now())

	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	user, err := repo.GetUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(user.Roles) != 2 {
		t.Fatalf("expected 2 roles, got %v", user.Roles)
	}
	if !user.IsAdmin() {
		t.Error("expected user to hold the ADMIN role")
	}
}

func TestUserRepository_UpdateUserRoles(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	user := models.User{ID: 7, Roles: []models.Role{models.RoleUser, models.RoleAdmin}, AdminRoleRequested: false}

	mock.ExpectExec("UPDATE users").
		WithArgs(user.ID, "USER,ADMIN", false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateUserRoles(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateUserRoles(context.Background(), user); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_ListAdminRoleRequests(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows(userRowColumns()).
		AddRow(1, "alice", "hash", "USER", true, time.Now()).
		AddRow(2, "bob", "hash", "USER", true, time.Now())

	mock.ExpectQuery("SELECT .+ FROM users").
		WillReturnRows(rows)

	users, err := repo.ListAdminRoleRequests(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if !users[0].AdminRoleRequested {
		t.Error("expected pending request flag")
	}
}
