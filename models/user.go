package models

import "time"

// Role is a privilege tag attached to a user account.
type Role string

const (
	// RoleUser is the default role granted to every registered account.
	RoleUser Role = "USER"

	// RoleAdmin marks an administrator. Administrators may mutate routes
	// owned by other users only when the route's AllowAdminEditing flag
	// is set, and they see the full import history of all users.
	RoleAdmin Role = "ADMIN"
)

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Username is the unique login identifier, used during authentication
	// and recorded on every audit and import-history row the user produces.
	Username string `json:"username"`

	// PasswordHash stores the derived credential value (HMAC-SHA256),
	// never plaintext. Excluded from JSON serialization.
	PasswordHash string `json:"-"`

	// Roles is the set of privilege tags held by the account.
	Roles []Role `json:"roles"`

	// AdminRoleRequested is set when the user has asked for the ADMIN role
	// and the request has not yet been approved.
	AdminRoleRequested bool `json:"admin_role_requested"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// HasRole reports whether the user holds the given role.
func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
