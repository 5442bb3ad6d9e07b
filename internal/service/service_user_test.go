package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/models"
)

func newTestUserService() (*userService, *mockUserRepository) {
	repo := &mockUserRepository{}
	return &userService{userRepository: repo, logger: logger.Nop()}, repo
}

func TestUserService_RequestAdminRole_FlagsAccount(t *testing.T) {
	svc, repo := newTestUserService()

	user, err := svc.RequestAdminRole(context.Background(), testOwner)
	require.NoError(t, err)
	assert.True(t, user.AdminRoleRequested)

	require.Len(t, repo.updatedUsers, 1)
	assert.True(t, repo.updatedUsers[0].AdminRoleRequested)
	assert.Equal(t, testOwner.ID, repo.updatedUsers[0].ID)
}

func TestUserService_RequestAdminRole_AlreadyAdmin(t *testing.T) {
	svc, repo := newTestUserService()

	_, err := svc.RequestAdminRole(context.Background(), testAdmin)
	assert.ErrorIs(t, err, ErrAdminRoleAlreadyHeld)
	assert.Empty(t, repo.updatedUsers)
}

func TestUserService_RequestAdminRole_RepeatIsNoOp(t *testing.T) {
	svc, repo := newTestUserService()

	pending := testOwner
	pending.AdminRoleRequested = true

	user, err := svc.RequestAdminRole(context.Background(), pending)
	require.NoError(t, err)
	assert.True(t, user.AdminRoleRequested)
	assert.Empty(t, repo.updatedUsers)
}

func TestUserService_ListAdminRoleRequests_AdminOnly(t *testing.T) {
	svc, repo := newTestUserService()

	repo.listFn = func(_ context.Context) ([]models.User, error) {
		return []models.User{{ID: 1, AdminRoleRequested: true}}, nil
	}

	_, err := svc.ListAdminRoleRequests(context.Background(), testOwner)
	assert.ErrorIs(t, err, ErrInsufficientPermission)

	users, err := svc.ListAdminRoleRequests(context.Background(), testAdmin)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserService_ApproveAdminRole_GrantsAndClearsFlag(t *testing.T) {
	svc, repo := newTestUserService()

	repo.getFn = func(_ context.Context, id int64) (models.User, error) {
		return models.User{ID: id, Username: "bob", Roles: []models.Role{models.RoleUser}, AdminRoleRequested: true}, nil
	}

	granted, err := svc.ApproveAdminRole(context.Background(), 42, testAdmin)
	require.NoError(t, err)
	assert.True(t, granted.IsAdmin())
	assert.False(t, granted.AdminRoleRequested)

	require.Len(t, repo.updatedUsers, 1)
	assert.Contains(t, repo.updatedUsers[0].Roles, models.RoleAdmin)
}

func TestUserService_ApproveAdminRole_RequiresPendingRequest(t *testing.T) {
	svc, repo := newTestUserService()

	repo.getFn = func(_ context.Context, id int64) (models.User, error) {
		return models.User{ID: id, Roles: []models.Role{models.RoleUser}}, nil
	}

	_, err := svc.ApproveAdminRole(context.Background(), 42, testAdmin)
	assert.ErrorIs(t, err, ErrAdminRoleNotRequested)
}

func TestUserService_ApproveAdminRole_TargetAlreadyAdmin(t *testing.T) {
	svc, repo := newTestUserService()

	repo.getFn = func(_ context.Context, id int64) (models.User, error) {
		return models.User{ID: id, Roles: []models.Role{models.RoleAdmin}}, nil
	}

	_, err := svc.ApproveAdminRole(context.Background(), 42, testAdmin)
	assert.ErrorIs(t, err, ErrAdminRoleAlreadyHeld)
}

func TestUserService_ApproveAdminRole_NonAdminForbidden(t *testing.T) {
	svc, repo := newTestUserService()

	_, err := svc.ApproveAdminRole(context.Background(), 42, testOwner)
	assert.ErrorIs(t, err, ErrInsufficientPermission)
	assert.Empty(t, repo.updatedUsers)
}
