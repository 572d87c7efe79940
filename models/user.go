package models

import (
	"strings"
	"time"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries: use
// [User.Public] to obtain the representation that is safe to return to callers.
type User struct {
	// ID is the opaque unique identifier of the user (UUIDv7 string).
	// It is assigned at creation time and never changes afterwards.
	ID string `json:"id"`

	// Email is the unique login identifier of the user.
	// It is stored normalized, see [NormalizeEmail].
	Email string `json:"email"`

	// PasswordHash stores the output of the password hasher.
	// The plaintext password is never persisted, logged or serialized.
	PasswordHash string `json:"-"`

	// Role is the authorization role of the user.
	Role Role `json:"role"`

	// ResetTokenHash is the fingerprint of the currently outstanding
	// password reset secret. Nil when no reset is pending.
	ResetTokenHash *string `json:"-"`

	// ResetTokenExpiry is the moment the outstanding reset secret stops
	// being accepted. Nil when no reset is pending.
	ResetTokenExpiry *time.Time `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification of the record.
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicUser is the externally visible projection of a [User].
// It never carries the password hash or any reset-related fields.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Public returns the representation of u that may leave the service.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// HasPendingReset reports whether u holds an unexpired reset token at now.
func (u User) HasPendingReset(now time.Time) bool {
	return u.ResetTokenHash != nil && u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now)
}

// Identity returns the resolved caller identity for u.
func (u User) Identity() Identity {
	return Identity{UserID: u.ID, Role: u.Role}
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address so
// that uniqueness is enforced case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
