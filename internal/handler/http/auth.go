package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/service"
	"github.com/MKhiriev/go-auth-keeper/internal/utils"
	"github.com/MKhiriev/go-auth-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := h.decodeJSON(w, r, &credentials); err != nil {
		log.Err(err).Msg("invalid registration request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.services.AuthService.Register(r.Context(), credentials)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Authorization", "Bearer "+session.Token.SignedString)
	utils.WriteJSON(w, models.NewAuthResponse(session), http.StatusCreated)
}

// login answers every credential problem, malformed email included, with
// the same 401 so that callers cannot enumerate accounts.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := h.decodeJSON(w, r, &credentials); err != nil {
		if errors.Is(err, ErrInvalidJSON) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Info().Err(err).Msg("login request failed validation")
		h.writeError(w, r, service.ErrInvalidCredentials)
		return
	}

	session, err := h.services.AuthService.Login(r.Context(), credentials)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Authorization", "Bearer "+session.Token.SignedString)
	utils.WriteJSON(w, models.NewAuthResponse(session), http.StatusOK)
}

// profile answers with the user loaded by the auth middleware.
func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		h.writeError(w, r, service.ErrInvalidToken)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) admin(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		h.writeError(w, r, service.ErrInvalidToken)
		return
	}

	utils.WriteJSON(w, models.AdminContent{
		Message:  "Welcome to the admin area",
		User:     user,
		ServedAt: h.clock().UTC(),
	}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, r, service.ErrInvalidToken)
		return
	}

	var req models.ChangePasswordRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ChangePassword(r.Context(), identity, req.CurrentPassword, req.NewPassword); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteStatus(w, "Password changed")
}

// forgotPassword stores a fresh reset secret and hands the reset link to the
// notifier. Delivery failures are logged only; the answer does not change.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.ForgotPasswordRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ticket, err := h.services.PasswordResetService.RequestReset(r.Context(), req.Email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	notification := models.ResetNotification{
		Email:     ticket.Email,
		ResetURL:  h.resetURL(r, ticket.Secret),
		ExpiresAt: ticket.ExpiresAt,
	}
	if h.notifier != nil {
		if err := h.notifier.Notify(r.Context(), notification); err != nil {
			log.Err(err).Str("email", ticket.Email).Msg("reset notification was not delivered")
		}
	}

	utils.WriteStatus(w, "Email sent")
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	secret := chi.URLParam(r, "resettoken")

	var req models.ResetPasswordRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.PasswordResetService.ResetPassword(r.Context(), secret, req.Password); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteStatus(w, "Password reset successful")
}

// resetURL builds <scheme>://<host>/api/auth/resetpassword/<secret>, using
// the configured public base URL when there is one.
func (h *Handler) resetURL(r *http.Request, secret string) string {
	base := strings.TrimRight(h.cfg.PublicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
			scheme = proto
		}
		base = scheme + "://" + r.Host
	}

	return base + "/api/auth/resetpassword/" + url.PathEscape(secret)
}
