// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/crypto"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/metrics"
	"github.com/MKhiriev/go-auth-keeper/internal/service"
	"github.com/MKhiriev/go-auth-keeper/internal/store"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// ─────────────────────────────────────────────
// Test server over the in-memory store
// ─────────────────────────────────────────────

type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.ResetNotification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, notification models.ResetNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
	return n.err
}

func (n *recordingNotifier) last(t *testing.T) models.ResetNotification {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.sent, "no reset notification was sent")
	return n.sent[len(n.sent)-1]
}

type testServer struct {
	*httptest.Server
	storages *store.Storages
	hasher   crypto.SecretHasher
	notifier *recordingNotifier
	metrics  *metrics.Metrics
}

var testApp = config.App{
	TokenSignKey:      "handler-test-key",
	TokenIssuer:       "go-auth-keeper-test",
	TokenDuration:     time.Hour,
	ResetTokenHashKey: "reset-key",
}

func newTestServer(t *testing.T, serverCfg config.Server) *testServer {
	t.Helper()

	storages, err := store.NewStorages(context.Background(), config.Storage{DB: config.DB{Driver: config.DriverMemory}}, logger.Nop())
	require.NoError(t, err)

	hasher := crypto.NewSecretHasher(
		crypto.WithArgon2Params(crypto.Argon2Params{Time: 1, Memory: 64, Threads: 1}),
		crypto.WithFingerprintKey(testApp.ResetTokenHashKey),
	)
	m := metrics.New()

	services, err := service.NewServices(storages, testApp, models.NewAppBuildInfo("1.2.3", "2026-05-01", "abc123"), logger.Nop(),
		service.WithSecretHasher(hasher), service.WithRecorder(m))
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	h := NewHandler(services, notifier, m, serverCfg, logger.Nop())

	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, storages: storages, hasher: hasher, notifier: notifier, metrics: m}
}

type response struct {
	status int
	header http.Header
	body   string
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) response {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return response{status: resp.StatusCode, header: resp.Header, body: strings.TrimSpace(string(raw))}
}

func (s *testServer) register(t *testing.T, email, password string) models.AuthResponse {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/register", "", models.Credentials{Email: email, Password: password})
	require.Equal(t, http.StatusCreated, resp.status, resp.body)

	var out models.AuthResponse
	require.NoError(t, json.Unmarshal([]byte(resp.body), &out))
	return out
}

func (s *testServer) createAdmin(t *testing.T, email, password string) {
	t.Helper()
	digest, err := s.hasher.HashPassword(password)
	require.NoError(t, err)
	_, err = s.storages.UserRepository.CreateUser(context.Background(), models.User{
		ID: "admin-1", Email: email, PasswordHash: digest, Role: models.RoleAdmin,
	})
	require.NoError(t, err)
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/login", "", models.Credentials{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.status, resp.body)

	var out models.AuthResponse
	require.NoError(t, json.Unmarshal([]byte(resp.body), &out))
	return out.Token
}

// ─────────────────────────────────────────────
// Register / Login
// ─────────────────────────────────────────────

func TestRegister(t *testing.T) {
	s := newTestServer(t, config.Server{})

	resp := s.do(t, http.MethodPost, "/api/auth/register", "", models.Credentials{Email: "alice@example.com", Password: "pw123"})
	require.Equal(t, http.StatusCreated, resp.status)

	var out models.AuthResponse
	require.NoError(t, json.Unmarshal([]byte(resp.body), &out))
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "alice@example.com", out.Email)
	assert.Equal(t, models.RoleUser, out.Role)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "Bearer "+out.Token, resp.header.Get("Authorization"))
	assert.NotContains(t, resp.body, "pw123")
	assert.NotContains(t, resp.body, "password")
}

func TestRegister_Duplicate(t *testing.T) {
	s := newTestServer(t, config.Server{})
	s.register(t, "alice@example.com", "pw123")

	resp := s.do(t, http.MethodPost, "/api/auth/register", "", models.Credentials{Email: "ALICE@example.com", Password: "other"})
	assert.Equal(t, http.StatusConflict, resp.status)
	assert.Equal(t, "user already exists", resp.body)

	s.login(t, "alice@example.com", "pw123")
}

func TestRegister_BadRequests(t *testing.T) {
	s := newTestServer(t, config.Server{})

	tests := []struct {
		name     string
		body     any
		wantBody string
	}{
		{name: "broken json", body: `{"email":`, wantBody: "invalid JSON was passed"},
		{name: "missing password", body: map[string]string{"email": "alice@example.com"}, wantBody: "password is required"},
		{name: "bad email", body: models.Credentials{Email: "not-an-email", Password: "pw"}, wantBody: "email must be a valid email address"},
		{name: "password too long", body: models.Credentials{Email: "a@b.co", Password: strings.Repeat("x", 257)}, wantBody: "password must be at most 256 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.do(t, http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.status)
			assert.Equal(t, tt.wantBody, resp.body)
		})
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	s := newTestServer(t, config.Server{})
	s.register(t, "alice@example.com", "pw123")

	wrongPassword := s.do(t, http.MethodPost, "/api/auth/login", "", models.Credentials{Email: "alice@example.com", Password: "nope"})
	unknownEmail := s.do(t, http.MethodPost, "/api/auth/login", "", models.Credentials{Email: "ghost@example.com", Password: "pw123"})
	malformedEmail := s.do(t, http.MethodPost, "/api/auth/login", "", models.Credentials{Email: "ghost", Password: "pw123"})

	for _, resp := range []response{wrongPassword, unknownEmail, malformedEmail} {
		assert.Equal(t, http.StatusUnauthorized, resp.status)
		assert.Equal(t, "invalid email or password", resp.body)
		assert.Empty(t, resp.header.Get("Authorization"))
	}
}

// ─────────────────────────────────────────────
// Profile / Admin
// ─────────────────────────────────────────────

func TestProfile(t *testing.T) {
	s := newTestServer(t, config.Server{})
	registered := s.register(t, "alice@example.com", "pw123")

	resp := s.do(t, http.MethodGet, "/api/auth/profile", registered.Token, nil)
	require.Equal(t, http.StatusOK, resp.status)

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.body), &fields))
	assert.Equal(t, registered.ID, fields["id"])
	assert.Equal(t, "alice@example.com", fields["email"])
	assert.Equal(t, "user", fields["role"])
	assert.NotContains(t, fields, "password_hash")
	assert.NotContains(t, fields, "reset_token_hash")
	assert.NotContains(t, resp.body, "$argon2id$")
}

func TestProfile_Unauthenticated(t *testing.T) {
	s := newTestServer(t, config.Server{})

	tests := []struct {
		name     string
		header   string
		wantBody string
	}{
		{name: "no header", wantBody: ErrEmptyAuthorizationHeader.Error()},
		{name: "wrong scheme", header: "Basic abc", wantBody: ErrInvalidAuthorizationHeader.Error()},
		{name: "garbage token", header: "Bearer not.a.jwt", wantBody: service.ErrInvalidToken.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, s.URL+"/api/auth/profile", nil)
			require.NoError(t, err)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := s.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(string(body)))
		})
	}
}

func TestAdmin_UserIsForbidden(t *testing.T) {
	s := newTestServer(t, config.Server{})
	registered := s.register(t, "alice@example.com", "pw123")

	resp := s.do(t, http.MethodGet, "/api/auth/admin", registered.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.status)
	assert.Equal(t, "User role 'user' is not authorized to access this route", resp.body)
}

func TestAdmin_AdminIsAllowed(t *testing.T) {
	s := newTestServer(t, config.Server{})
	s.createAdmin(t, "root@example.com", "s3cret")
	token := s.login(t, "root@example.com", "s3cret")

	resp := s.do(t, http.MethodGet, "/api/auth/admin", token, nil)
	require.Equal(t, http.StatusOK, resp.status, resp.body)

	var content models.AdminContent
	require.NoError(t, json.Unmarshal([]byte(resp.body), &content))
	assert.NotEmpty(t, content.Message)
	assert.Equal(t, models.RoleAdmin, content.User.Role)
	assert.Equal(t, "root@example.com", content.User.Email)

	assert.Contains(t, s.scrapeMetrics(t), `auth_authorization_decisions_total{result="allowed"} 1`)
}

// ─────────────────────────────────────────────
// Password reset
// ─────────────────────────────────────────────

func TestPasswordReset_FullFlow(t *testing.T) {
	s := newTestServer(t, config.Server{})
	s.register(t, "alice@example.com", "pw123")

	resp := s.do(t, http.MethodPost, "/api/auth/forgotpassword", "", models.ForgotPasswordRequest{Email: "alice@example.com"})
	require.Equal(t, http.StatusOK, resp.status)
	assert.JSONEq(t, `{"success":true,"message":"Email sent"}`, resp.body)

	notification := s.notifier.last(t)
	assert.Equal(t, "alice@example.com", notification.Email)
	require.True(t, strings.HasPrefix(notification.ResetURL, s.URL+"/api/auth/resetpassword/"), notification.ResetURL)
	resetPath := strings.TrimPrefix(notification.ResetURL, s.URL)

	resp = s.do(t, http.MethodPut, resetPath, "", models.ResetPasswordRequest{Password: "newpw"})
	require.Equal(t, http.StatusOK, resp.status)
	assert.JSONEq(t, `{"success":true,"message":"Password reset successful"}`, resp.body)

	s.login(t, "alice@example.com", "newpw")

	resp = s.do(t, http.MethodPost, "/api/auth/login", "", models.Credentials{Email: "alice@example.com", Password: "pw123"})
	assert.Equal(t, http.StatusUnauthorized, resp.status)

	resp = s.do(t, http.MethodPut, resetPath, "", models.ResetPasswordRequest{Password: "again"})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "invalid token or token expired", resp.body)
}

func TestPasswordReset_UnknownEmail(t *testing.T) {
	s := newTestServer(t, config.Server{})

	resp := s.do(t, http.MethodPost, "/api/auth/forgotpassword", "", models.ForgotPasswordRequest{Email: "ghost@example.com"})
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.Equal(t, "user not found", resp.body)
	assert.Empty(t, s.notifier.sent)
}

func TestPasswordReset_DeliveryFailureDoesNotChangeAnswer(t *testing.T) {
	s := newTestServer(t, config.Server{})
	s.register(t, "alice@example.com", "pw123")
	s.notifier.err = errors.New("smtp down")

	resp := s.do(t, http.MethodPost, "/api/auth/forgotpassword", "", models.ForgotPasswordRequest{Email: "alice@example.com"})
	assert.Equal(t, http.StatusOK, resp.status)
}

func TestPasswordReset_PublicBaseURL(t *testing.T) {
	s := newTestServer(t, config.Server{PublicBaseURL: "https://auth.example.com/"})
	s.register(t, "alice@example.com", "pw123")

	resp := s.do(t, http.MethodPost, "/api/auth/forgotpassword", "", models.ForgotPasswordRequest{Email: "alice@example.com"})
	require.Equal(t, http.StatusOK, resp.status)

	assert.True(t, strings.HasPrefix(s.notifier.last(t).ResetURL, "https://auth.example.com/api/auth/resetpassword/"))
}

func TestPasswordReset_UnknownSecret(t *testing.T) {
	s := newTestServer(t, config.Server{})

	resp := s.do(t, http.MethodPut, "/api/auth/resetpassword/deadbeef", "", models.ResetPasswordRequest{Password: "newpw"})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "invalid token or token expired", resp.body)
}

// ─────────────────────────────────────────────
// Change password
// ─────────────────────────────────────────────

func TestChangePassword(t *testing.T) {
	s := newTestServer(t, config.Server{})
	registered := s.register(t, "alice@example.com", "pw123")

	resp := s.do(t, http.MethodPut, "/api/auth/password", registered.Token, models.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "pw456"})
	assert.Equal(t, http.StatusUnauthorized, resp.status)

	resp = s.do(t, http.MethodPut, "/api/auth/password", registered.Token, models.ChangePasswordRequest{CurrentPassword: "pw123", NewPassword: "pw456"})
	require.Equal(t, http.StatusOK, resp.status)
	assert.JSONEq(t, `{"success":true,"message":"Password changed"}`, resp.body)

	s.login(t, "alice@example.com", "pw456")

	resp = s.do(t, http.MethodPut, "/api/auth/password", "", models.ChangePasswordRequest{CurrentPassword: "pw456", NewPassword: "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.status)
}

// ─────────────────────────────────────────────
// Ambient routes and middleware
// ─────────────────────────────────────────────

func TestVersion(t *testing.T) {
	s := newTestServer(t, config.Server{})

	resp := s.do(t, http.MethodGet, "/api/version", "", nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "1.2.3", resp.body)
	assert.Equal(t, "abc123", resp.header.Get("X-Build-Commit"))
}

func TestUnsupportedMethodIsNotFound(t *testing.T) {
	s := newTestServer(t, config.Server{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/register"},
		{http.MethodDelete, "/api/auth/profile"},
		{http.MethodGet, "/api/auth/resetpassword/abc"},
		{http.MethodGet, "/api/nothing-here"},
	} {
		resp := s.do(t, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusNotFound, resp.status, "%s %s", tc.method, tc.path)
	}
}

func TestSecurityHeadersAndTraceID(t *testing.T) {
	s := newTestServer(t, config.Server{})

	req, err := http.NewRequest(http.MethodGet, s.URL+"/api/version", nil)
	require.NoError(t, err)
	req.Header.Set(traceIDHeader, "trace-42")

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "trace-42", resp.Header.Get(traceIDHeader))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "default-src 'none'", resp.Header.Get("Content-Security-Policy"))
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, config.Server{})
	s.register(t, "alice@example.com", "pw123")
	s.do(t, http.MethodPut, "/api/auth/resetpassword/some-secret", "", models.ResetPasswordRequest{Password: "x"})

	body := s.scrapeMetrics(t)
	assert.Contains(t, body, `auth_registrations_total{result="success"} 1`)
	assert.Contains(t, body, `auth_http_requests_total{method="POST",route="/api/auth/register",status="201"} 1`)
	assert.Contains(t, body, `route="/api/auth/resetpassword/{resettoken}"`)
	assert.NotContains(t, body, "some-secret")
}

func (s *testServer) scrapeMetrics(t *testing.T) string {
	t.Helper()
	resp := s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.status)
	return resp.body
}
