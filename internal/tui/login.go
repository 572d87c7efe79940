// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	"github.com/MKhiriev/go-auth-keeper/internal/adapter"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// newLoginModel builds the login form. A successful login leaves the session
// token in auth and opens the profile screen.
func newLoginModel(ctx context.Context, auth adapter.AuthClient) *formModel {
	m := newFormModel(ctx, pageLogin, "LOG IN", []field{
		{label: "Email", placeholder: "alice@example.com", charLimit: 254},
		{label: "Password", placeholder: "password", secret: true},
	}, func(ctx context.Context, values []string) (string, error) {
		resp, err := auth.Login(ctx, models.Credentials{Email: values[0], Password: values[1]})
		if err != nil {
			return "", err
		}
		return "signed in as " + resp.Email, nil
	})
	m.successPage = pageProfile
	return m
}
