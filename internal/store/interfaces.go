package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-auth-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/user_repository_mock.go -package=mock

// UserRepository persists user accounts together with their pending
// password reset state.
//
// Emails are expected to be normalized by the caller. Every method that
// addresses a single record returns [ErrNoUserWasFound] when nothing matches.
type UserRepository interface {
	// CreateUser inserts user and returns the stored record.
	// A duplicate email yields [ErrEmailAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	// UpdatePasswordHash replaces the stored hash and leaves reset fields untouched.
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
	// SetResetToken writes only the reset fingerprint and its expiry,
	// replacing any previously pending reset.
	SetResetToken(ctx context.Context, id, tokenHash string, expiry time.Time) error
	// FindUserByResetToken returns the user whose pending reset matches
	// tokenHash and expires strictly after now.
	FindUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (models.User, error)
	// ConsumeResetToken atomically stores passwordHash and clears the reset
	// fields, provided the reset matching tokenHash is still valid at now.
	// Of two concurrent consumers of the same token exactly one succeeds.
	ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (models.User, error)
}

// ErrorClassificator decides whether a failed database operation may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
