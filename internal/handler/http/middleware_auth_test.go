package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/metrics"
	"github.com/MKhiriev/go-auth-keeper/internal/mock"
	"github.com/MKhiriev/go-auth-keeper/internal/service"
	"github.com/MKhiriev/go-auth-keeper/internal/utils"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// ---- Helpers ----

type authMocks struct {
	tokens *mock.MockTokenService
	auth   *mock.MockAuthService
}

func newHandlerWithMocks(t *testing.T) (*Handler, authMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := authMocks{
		tokens: mock.NewMockTokenService(ctrl),
		auth:   mock.NewMockAuthService(ctrl),
	}
	return &Handler{
		logger:  logger.Nop(),
		metrics: metrics.New(),
		services: &service.Services{
			TokenService: m.tokens,
			AuthService:  m.auth,
		},
	}, m
}

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)
	return rr
}

func mustNotBeCalled(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler must not be called")
	})
}

// ---- auth ----

func TestAuth_ResolvesIdentity(t *testing.T) {
	h, m := newHandlerWithMocks(t)

	m.tokens.EXPECT().Verify(gomock.Any(), "good-token").Return(models.Token{UserID: "id-1"}, nil)
	m.auth.EXPECT().GetProfile(gomock.Any(), "id-1").Return(models.User{ID: "id-1", Role: models.RoleAdmin}, nil)

	var got models.Identity
	rr := executeAuth(h, "Bearer good-token", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		got, ok = utils.GetIdentityFromContext(r.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, models.Identity{UserID: "id-1", Role: models.RoleAdmin}, got)
}

func TestAuth_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setup      func(m authMocks)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no header",
			wantStatus: http.StatusUnauthorized,
			wantBody:   ErrEmptyAuthorizationHeader.Error(),
		},
		{
			name:       "token without scheme",
			header:     "just-a-token",
			wantStatus: http.StatusUnauthorized,
			wantBody:   ErrInvalidAuthorizationHeader.Error(),
		},
		{
			name:   "expired token",
			header: "Bearer old",
			setup: func(m authMocks) {
				m.tokens.EXPECT().Verify(gomock.Any(), "old").Return(models.Token{}, service.ErrExpiredToken)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   service.ErrExpiredToken.Error(),
		},
		{
			name:   "invalid token",
			header: "Bearer forged",
			setup: func(m authMocks) {
				m.tokens.EXPECT().Verify(gomock.Any(), "forged").Return(models.Token{}, service.ErrInvalidToken)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   service.ErrInvalidToken.Error(),
		},
		{
			name:   "subject deleted",
			header: "Bearer orphan",
			setup: func(m authMocks) {
				m.tokens.EXPECT().Verify(gomock.Any(), "orphan").Return(models.Token{UserID: "gone"}, nil)
				m.auth.EXPECT().GetProfile(gomock.Any(), "gone").Return(models.User{}, service.ErrUserNotFound)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   service.ErrInvalidToken.Error(),
		},
		{
			name:   "store failure",
			header: "Bearer tok",
			setup: func(m authMocks) {
				m.tokens.EXPECT().Verify(gomock.Any(), "tok").Return(models.Token{UserID: "id-1"}, nil)
				m.auth.EXPECT().GetProfile(gomock.Any(), "id-1").Return(models.User{}, errors.New("connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newHandlerWithMocks(t)
			if tt.setup != nil {
				tt.setup(m)
			}

			rr := executeAuth(h, tt.header, mustNotBeCalled(t))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody+"\n", rr.Body.String())
		})
	}
}

// ---- requireRole ----

func executeRequireRole(h *Handler, gate service.AuthorizationGate, identity *models.Identity, next http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if identity != nil {
		req = req.WithContext(utils.WithIdentity(req.Context(), *identity))
	}
	rr := httptest.NewRecorder()
	h.requireRole(gate)(next).ServeHTTP(rr, req)
	return rr
}

func TestRequireRole(t *testing.T) {
	adminGate := service.NewAuthorizationGate(models.RoleAdmin)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("admin passes", func(t *testing.T) {
		h, _ := newHandlerWithMocks(t)
		rr := executeRequireRole(h, adminGate, &models.Identity{UserID: "id-1", Role: models.RoleAdmin}, ok)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.AuthorizationsTotal.WithLabelValues(metrics.ResultAllowed)))
	})

	t.Run("user is rejected with its role named", func(t *testing.T) {
		h, _ := newHandlerWithMocks(t)
		rr := executeRequireRole(h, adminGate, &models.Identity{UserID: "id-2", Role: models.RoleUser}, mustNotBeCalled(t))

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "User role 'user' is not authorized to access this route\n", rr.Body.String())
		assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.AuthorizationsTotal.WithLabelValues(metrics.ResultDenied)))
	})

	t.Run("missing identity fails closed", func(t *testing.T) {
		h, _ := newHandlerWithMocks(t)
		rr := executeRequireRole(h, adminGate, nil, mustNotBeCalled(t))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("empty gate forbids everyone", func(t *testing.T) {
		h, _ := newHandlerWithMocks(t)
		rr := executeRequireRole(h, service.NewAuthorizationGate(), &models.Identity{UserID: "id-1", Role: models.RoleAdmin}, mustNotBeCalled(t))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("nil metrics", func(t *testing.T) {
		h := &Handler{logger: logger.Nop()}
		rr := executeRequireRole(h, adminGate, &models.Identity{UserID: "id-1", Role: models.RoleAdmin}, ok)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

// ---- routes behind auth ----

func TestAuthedRoutes_ReadUserOnce(t *testing.T) {
	for _, path := range []string{"/api/auth/profile", "/api/auth/admin"} {
		t.Run(path, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			tokens := mock.NewMockTokenService(ctrl)
			auth := mock.NewMockAuthService(ctrl)
			h := NewHandler(&service.Services{TokenService: tokens, AuthService: auth}, nil, nil, config.Server{}, logger.Nop())

			tokens.EXPECT().Verify(gomock.Any(), "tok").Return(models.Token{UserID: "id-1"}, nil)
			auth.EXPECT().GetProfile(gomock.Any(), "id-1").
				Return(models.User{ID: "id-1", Email: "root@example.com", Role: models.RoleAdmin, PasswordHash: "hash"}, nil).
				Times(1)

			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.Header.Set("Authorization", "Bearer tok")
			rr := httptest.NewRecorder()
			h.Init().ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), `"email":"root@example.com"`)
			assert.NotContains(t, rr.Body.String(), "hash")
		})
	}
}
