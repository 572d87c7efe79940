package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_JSONNeverCarriesSecrets(t *testing.T) {
	hash := "fingerprint"
	expiry := time.Now().Add(time.Minute)
	u := User{
		ID:               "0192",
		Email:            "alice@example.com",
		PasswordHash:     "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		Role:             RoleUser,
		ResetTokenHash:   &hash,
		ResetTokenExpiry: &expiry,
	}

	for name, v := range map[string]any{"user": u, "public": u.Public()} {
		t.Run(name, func(t *testing.T) {
			b, err := json.Marshal(v)
			require.NoError(t, err)

			var fields map[string]any
			require.NoError(t, json.Unmarshal(b, &fields))

			assert.Equal(t, "alice@example.com", fields["email"])
			assert.Equal(t, "user", fields["role"])
			assert.NotContains(t, string(b), "argon2id")
			assert.NotContains(t, string(b), "fingerprint")
			assert.NotContains(t, fields, "password")
			assert.NotContains(t, fields, "password_hash")
		})
	}
}

func TestUser_HasPendingReset(t *testing.T) {
	now := time.Now()
	hash := "h"
	future := now.Add(time.Minute)
	past := now.Add(-time.Minute)

	tests := []struct {
		name   string
		hash   *string
		expiry *time.Time
		want   bool
	}{
		{"idle", nil, nil, false},
		{"pending", &hash, &future, true},
		{"expired", &hash, &past, false},
		{"expiry equals now", &hash, &now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{ResetTokenHash: tt.hash, ResetTokenExpiry: tt.expiry}
			assert.Equal(t, tt.want, u.HasPendingReset(now))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("").IsValid())
	assert.False(t, Role("root").IsValid())
}

func TestAppBuildInfo_DefaultsToNotAvailable(t *testing.T) {
	info := NewAppBuildInfo("", "2026-01-01", "")
	assert.Equal(t, "N/A", info.BuildVersion())
	assert.Equal(t, "2026-01-01", info.BuildDate())
	assert.Contains(t, info.String(), "Build commit: N/A")
}
