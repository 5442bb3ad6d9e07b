package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ta4ilka/route-atlas/models"
)

func TestCanMutate(t *testing.T) {
	owner := models.User{ID: 1, Roles: []models.Role{models.RoleUser}}
	admin := models.User{ID: 2, Roles: []models.Role{models.RoleAdmin}}
	stranger := models.User{ID: 3, Roles: []models.Role{models.RoleUser}}

	tests := []struct {
		name      string
		route     models.Route
		requester models.User
		wantErr   error
	}{
		{
			name:      "owner always allowed",
			route:     models.Route{CreatedBy: owner},
			requester: owner,
		},
		{
			name:      "owner allowed even with admin editing enabled",
			route:     models.Route{CreatedBy: owner, AllowAdminEditing: true},
			requester: owner,
		},
		{
			name:      "admin allowed when route opts in",
			route:     models.Route{CreatedBy: owner, AllowAdminEditing: true},
			requester: admin,
		},
		{
			name:      "admin rejected without opt-in",
			route:     models.Route{CreatedBy: owner},
			requester: admin,
			wantErr:   ErrAdminEditingNotAllowed,
		},
		{
			name:      "stranger rejected",
			route:     models.Route{CreatedBy: owner},
			requester: stranger,
			wantErr:   ErrInsufficientPermission,
		},
		{
			name:      "stranger rejected despite admin opt-in",
			route:     models.Route{CreatedBy: owner, AllowAdminEditing: true},
			requester: stranger,
			wantErr:   ErrInsufficientPermission,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanMutate(tt.route, tt.requester, models.OperationUpdate)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCanMutate_AdminWhoOwnsRoute(t *testing.T) {
	adminOwner := models.User{ID: 5, Roles: []models.Role{models.RoleUser, models.RoleAdmin}}

	// ownership wins: no opt-in needed on the admin's own route
	err := CanMutate(models.Route{CreatedBy: adminOwner}, adminOwner, models.OperationDelete)
	assert.NoError(t, err)
}
