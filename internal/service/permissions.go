package service

import (
	"github.com/ta4ilka/route-atlas/models"
)

// CanMutate decides whether requester may apply op to route.
//
// The owner may always mutate their own routes. An administrator may mutate
// another user's route only when the owner has set AllowAdminEditing.
// Everyone else is denied.
//
// The check is pure and evaluated fresh for every mutation: ownership and the
// admin-editing flag can change between calls, so the result is never cached.
func CanMutate(route models.Route, requester models.User, _ models.OperationType) error {
	if route.CreatedBy.ID == requester.ID {
		return nil
	}
	if requester.IsAdmin() {
		if route.AllowAdminEditing {
			return nil
		}
		return ErrAdminEditingNotAllowed
	}
	return ErrInsufficientPermission
}
