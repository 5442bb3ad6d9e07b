// Package utils provides general-purpose helper utilities
// used across different parts of the application: type-safe context keys,
// HMAC hashing, and JWT token generation and validation.
package utils

import (
	"context"

	"github.com/ta4ilka/route-atlas/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// RequesterCtxKey is the key under which the authentication middleware stores
// the fully resolved calling principal. Handlers retrieve it with
// GetRequesterFromContext and pass the user explicitly into every service
// call; no service reads the principal from the context itself.
var RequesterCtxKey = contextKey("requester")

// GetRequesterFromContext retrieves the authenticated user from the context.
//
// Returns the user and an ok flag:
//   - ok == true  - value is found and has the correct type
//   - ok == false - value is missing or has an unexpected type
func GetRequesterFromContext(ctx context.Context) (models.User, bool) {
	requester, ok := ctx.Value(RequesterCtxKey).(models.User)
	return requester, ok
}
