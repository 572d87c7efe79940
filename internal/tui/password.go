package tui

import (
	"context"

	"github.com/MKhiriev/go-auth-keeper/internal/adapter"
)

// newForgotPasswordModel asks the server to deliver a reset link.
func newForgotPasswordModel(ctx context.Context, auth adapter.AuthClient) *formModel {
	return newFormModel(ctx, pageForgot, "FORGOT PASSWORD", []field{
		{label: "Email", placeholder: "alice@example.com", charLimit: 254},
	}, func(ctx context.Context, values []string) (string, error) {
		resp, err := auth.ForgotPassword(ctx, values[0])
		if err != nil {
			return "", err
		}
		return resp.Message, nil
	})
}

// newResetPasswordModel consumes the secret from a reset link. The secret
// is masked like a password.
func newResetPasswordModel(ctx context.Context, auth adapter.AuthClient) *formModel {
	m := newFormModel(ctx, pageReset, "RESET PASSWORD", []field{
		{label: "Reset token", placeholder: "token from the reset link", secret: true},
		{label: "New password", placeholder: "new password", secret: true},
		{label: "Repeat password", placeholder: "repeat new password", secret: true},
	}, func(ctx context.Context, values []string) (string, error) {
		resp, err := auth.ResetPassword(ctx, values[0], values[1])
		if err != nil {
			return "", err
		}
		return resp.Message, nil
	})
	m.confirmLast = true
	m.successPage = pageLogin
	return m
}

// newChangePasswordModel replaces the signed-in user's password.
func newChangePasswordModel(ctx context.Context, auth adapter.AuthClient) *formModel {
	m := newFormModel(ctx, pagePassword, "CHANGE PASSWORD", []field{
		{label: "Current password", placeholder: "current password", secret: true},
		{label: "New password", placeholder: "new password", secret: true},
		{label: "Repeat password", placeholder: "repeat new password", secret: true},
	}, func(ctx context.Context, values []string) (string, error) {
		resp, err := auth.ChangePassword(ctx, values[0], values[1])
		if err != nil {
			return "", err
		}
		return resp.Message, nil
	})
	m.confirmLast = true
	m.successPage = pageProfile
	m.backPage = pageProfile
	return m
}
