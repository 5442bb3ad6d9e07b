package service

import (
	"context"
	"fmt"

	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/internal/store"
	"github.com/ta4ilka/route-atlas/models"
)

// userService is the concrete implementation of UserService. It covers
// account lookups and the admin role request/approval workflow.
type userService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewUserService constructs a UserService.
func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

func (u *userService) GetUser(ctx context.Context, id int64) (models.User, error) {
	return u.userRepository.GetUser(ctx, id)
}

// RequestAdminRole flags the requester's account as awaiting admin approval.
//
// Returns ErrAdminRoleAlreadyHeld when the requester already holds ADMIN.
// Requesting twice is a no-op, not an error.
func (u *userService) RequestAdminRole(ctx context.Context, requester models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if requester.IsAdmin() {
		return models.User{}, ErrAdminRoleAlreadyHeld
	}
	if requester.AdminRoleRequested {
		return requester, nil
	}

	requester.AdminRoleRequested = true
	if err := u.userRepository.UpdateUserRoles(ctx, requester); err != nil {
		log.Err(err).Int64("user_id", requester.ID).Msg("failed to flag admin role request")
		return models.User{}, fmt.Errorf("admin role request failed: %w", err)
	}

	log.Info().Int64("user_id", requester.ID).Str("username", requester.Username).Msg("admin role requested")
	return requester, nil
}

// ListAdminRoleRequests returns all accounts awaiting admin approval.
// Only administrators may call it.
func (u *userService) ListAdminRoleRequests(ctx context.Context, requester models.User) ([]models.User, error) {
	if !requester.IsAdmin() {
		return nil, ErrInsufficientPermission
	}
	return u.userRepository.ListAdminRoleRequests(ctx)
}

// ApproveAdminRole grants the ADMIN role to a user with a pending request and
// clears the request flag. Only administrators may approve.
//
// Returns ErrAdminRoleNotRequested when the target never asked for the role
// and ErrAdminRoleAlreadyHeld when the target already holds it.
func (u *userService) ApproveAdminRole(ctx context.Context, userID int64, requester models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if !requester.IsAdmin() {
		return models.User{}, ErrInsufficientPermission
	}

	target, err := u.userRepository.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if target.IsAdmin() {
		return models.User{}, ErrAdminRoleAlreadyHeld
	}
	if !target.AdminRoleRequested {
		return models.User{}, ErrAdminRoleNotRequested
	}

	target.Roles = append(target.Roles, models.RoleAdmin)
	target.AdminRoleRequested = false
	if err := u.userRepository.UpdateUserRoles(ctx, target); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("failed to grant admin role")
		return models.User{}, fmt.Errorf("admin role approval failed: %w", err)
	}

	log.Info().
		Int64("user_id", target.ID).
		Str("username", target.Username).
		Str("approved_by", requester.Username).
		Msg("admin role granted")
	return target, nil
}
