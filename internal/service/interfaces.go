package service

import (
	"context"

	"github.com/MKhiriev/go-auth-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/services_mock.go -package=mock

// TokenService issues and verifies stateless session tokens.
type TokenService interface {
	// Issue signs a token for user that expires a fixed duration from now.
	Issue(ctx context.Context, user models.User) (models.Token, error)
	// Verify checks signature, issuer and expiry without any store lookup.
	// Returns ErrExpiredToken when only the expiry check failed and
	// ErrInvalidToken otherwise.
	Verify(ctx context.Context, tokenString string) (models.Token, error)
}

// AuthService registers users, verifies their credentials and serves profiles.
type AuthService interface {
	Register(ctx context.Context, credentials models.Credentials) (models.Session, error)
	// Login returns ErrInvalidCredentials for an unknown email and for a
	// wrong password alike.
	Login(ctx context.Context, credentials models.Credentials) (models.Session, error)
	GetProfile(ctx context.Context, userID string) (models.User, error)
	ChangePassword(ctx context.Context, identity models.Identity, currentPassword, newPassword string) error
}

// PasswordResetService drives the Idle → Pending → Idle reset state machine.
type PasswordResetService interface {
	// RequestReset stores the fingerprint of a fresh secret and returns the
	// plaintext secret for one-time delivery. A pending reset is replaced.
	RequestReset(ctx context.Context, email string) (models.ResetTicket, error)
	// ResetPassword consumes secret and stores newPassword. Unknown,
	// expired and already used secrets all yield ErrInvalidOrExpiredToken.
	ResetPassword(ctx context.Context, secret, newPassword string) error
}

// ResetNotifier delivers a password reset link to the user.
type ResetNotifier interface {
	Notify(ctx context.Context, notification models.ResetNotification) error
}

// AppInfoService exposes build and version information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// IDGenerator assigns identifiers to new users.
type IDGenerator interface {
	Generate() string
}
