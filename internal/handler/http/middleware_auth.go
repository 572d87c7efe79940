package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/metrics"
	"github.com/MKhiriev/go-auth-keeper/internal/service"
	"github.com/MKhiriev/go-auth-keeper/internal/utils"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// auth is an HTTP middleware that enforces session-token authentication.
//
// It extracts the bearer token from the "Authorization" header, verifies it
// with [service.TokenService.Verify] and loads the user the token was issued
// for, so that the role always reflects the current record. The resolved
// [models.Identity] is stored in the request context for downstream handlers.
//
// Requests are rejected with 401 Unauthorized when:
//   - the header is absent ([ErrEmptyAuthorizationHeader]);
//   - the header is not a bearer token ([ErrInvalidAuthorizationHeader]);
//   - the token is expired ([service.ErrExpiredToken]) or otherwise invalid;
//   - the user the token names no longer exists.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.TokenService.Verify(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrExpiredToken):
				log.Err(err).Msg("token expired")
				http.Error(w, service.ErrExpiredToken.Error(), http.StatusUnauthorized)
			default:
				log.Err(err).Msg("error occurred during token verification")
				http.Error(w, service.ErrInvalidToken.Error(), http.StatusUnauthorized)
			}
			return
		}

		user, err := h.services.AuthService.GetProfile(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				log.Warn().Str("user_id", token.UserID).Msg("token subject no longer exists")
				http.Error(w, service.ErrInvalidToken.Error(), http.StatusUnauthorized)
				return
			}
			h.writeError(w, r, err)
			return
		}

		ctx = utils.WithIdentity(ctx, user.Identity())
		ctx = utils.WithUser(ctx, user.Public())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole admits only callers whose role passes gate. It must run after
// auth. Rejections answer 403 naming the caller's role.
func (h *Handler) requireRole(gate service.AuthorizationGate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			var caller *models.Identity
			if identity, ok := utils.GetIdentityFromContext(r.Context()); ok {
				caller = &identity
			}

			permit, err := gate.Authorize(caller)
			if err != nil {
				var role models.Role
				if caller != nil {
					role = caller.Role
				}
				h.recordAuthorization(metrics.ResultDenied)
				log.Info().Str("role", role.String()).Any("allowed", gate.Roles()).Msg("access denied")
				http.Error(w, fmt.Sprintf("User role '%s' is not authorized to access this route", role), http.StatusForbidden)
				return
			}

			h.recordAuthorization(metrics.ResultAllowed)
			log.Debug().Str("user_id", permit.Identity.UserID).Str("granted_by", permit.GrantedBy.String()).Msg("access granted")
			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) recordAuthorization(result string) {
	if h.metrics != nil {
		h.metrics.AuthorizationDecision(result)
	}
}
