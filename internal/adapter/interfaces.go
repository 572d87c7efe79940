// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound HTTP integrations of go-auth-keeper.
//
// [AuthClient] talks to the /api/auth routes of a running server and is used
// by the command-line client. The reset notifiers deliver password reset
// links produced by the server to the outside world.
//
// Non-2xx responses are mapped by mapHTTPError to the sentinel values in
// errors.go, so callers can use [errors.Is] (e.g. [ErrConflict] for 409,
// [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-auth-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/auth_client_mock.go -package=mock

// AuthClient is a client of the go-auth-keeper HTTP API. Implementations
// keep the session token returned by Register and Login and attach it to
// every authenticated request.
type AuthClient interface {
	// SetToken stores the bearer token used for authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// Register creates an account and stores the returned session token.
	Register(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error)

	// Login authenticates and stores the returned session token.
	Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error)

	// Profile returns the caller's public profile. Requires a token.
	Profile(ctx context.Context) (models.PublicUser, error)

	// Admin fetches the admin-only content. Requires a token of an admin.
	Admin(ctx context.Context) (models.AdminContent, error)

	// ForgotPassword asks the server to deliver a reset link to email.
	ForgotPassword(ctx context.Context, email string) (models.StatusResponse, error)

	// ResetPassword consumes a reset secret and sets a new password.
	ResetPassword(ctx context.Context, secret, password string) (models.StatusResponse, error)

	// ChangePassword replaces the caller's password. Requires a token.
	ChangePassword(ctx context.Context, currentPassword, newPassword string) (models.StatusResponse, error)
}
