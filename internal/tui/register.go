package tui

import (
	"context"

	"github.com/MKhiriev/go-auth-keeper/internal/adapter"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// newRegisterModel builds the registration form. The password is typed
// twice and both entries must match before anything is sent.
func newRegisterModel(ctx context.Context, auth adapter.AuthClient) *formModel {
	m := newFormModel(ctx, pageRegister, "REGISTER", []field{
		{label: "Email", placeholder: "alice@example.com", charLimit: 254},
		{label: "Password", placeholder: "password", secret: true},
		{label: "Repeat password", placeholder: "repeat password", secret: true},
	}, func(ctx context.Context, values []string) (string, error) {
		resp, err := auth.Register(ctx, models.Credentials{Email: values[0], Password: values[1]})
		if err != nil {
			return "", err
		}
		return "account " + resp.Email + " created", nil
	})
	m.confirmLast = true
	m.successPage = pageProfile
	return m
}
