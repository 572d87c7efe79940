// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-auth-keeper/models"
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

// IdentityCtxKey is the key used to store the resolved caller identity in
// the context. The authentication middleware writes it once per request;
// handlers read it with GetIdentityFromContext and pass the value on
// explicitly.
var IdentityCtxKey = contextKey("identity")

// UserCtxKey holds the public profile the authentication middleware loaded
// for the caller, so handlers do not read the user a second time.
var UserCtxKey = contextKey("user")

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, identity)
}

// GetIdentityFromContext retrieves the resolved caller identity.
//
// Returns ok == false when no identity was stored, the stored value has an
// unexpected type, or the identity is not fully resolved.
//
// Example usage:
//
//	identity, ok := utils.GetIdentityFromContext(ctx)
//	if !ok {
//	    // caller is not authenticated
//	}
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	if !ok || !identity.IsResolved() {
		return models.Identity{}, false
	}
	return identity, true
}

// WithUser returns a copy of ctx carrying the caller's public profile.
func WithUser(ctx context.Context, user models.PublicUser) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

// GetUserFromContext returns the profile stored by WithUser.
func GetUserFromContext(ctx context.Context) (models.PublicUser, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.PublicUser)
	if !ok || user.ID == "" {
		return models.PublicUser{}, false
	}
	return user, true
}
