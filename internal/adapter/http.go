package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/utils"
	"github.com/MKhiriev/go-auth-keeper/models"
)

type httpAuthClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAuthClient constructs an HTTP implementation of [AuthClient].
// adapterCfg.HTTPAddress may omit the scheme, "http" is assumed then.
//
// Returns an error if the address is empty or cannot be parsed as a URL.
func NewHTTPAuthClient(adapterCfg config.ClientAdapter, logger *logger.Logger) (AuthClient, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpAuthClient{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAuthClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAuthClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [AuthClient]. It POSTs to /api/auth/register and keeps
// the token from the Authorization response header, falling back to the
// token field of the body.
func (h *httpAuthClient) Register(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/register", credentials)
}

// Login implements [AuthClient]. It POSTs to /api/auth/login.
func (h *httpAuthClient) Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/login", credentials)
}

func (h *httpAuthClient) authenticate(ctx context.Context, path string, credentials models.Credentials) (models.AuthResponse, error) {
	var result models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(credentials).
		SetResult(&result).
		Post(path)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	token := result.Token
	if header := resp.Header().Get("Authorization"); header != "" {
		token, err = utils.ParseBearerToken(header)
		if err != nil {
			return models.AuthResponse{}, fmt.Errorf("%s parse bearer token: %w", path, err)
		}
	}

	h.SetToken(token)
	h.logger.Debug().Str("func", "*httpAuthClient.authenticate").Str("path", path).Str("user_id", result.ID).Msg("session token stored")
	return result, nil
}

// Profile implements [AuthClient]. It GETs /api/auth/profile.
func (h *httpAuthClient) Profile(ctx context.Context) (models.PublicUser, error) {
	var profile models.PublicUser

	resp, err := h.authedRequest(ctx).SetResult(&profile).Get("/api/auth/profile")
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PublicUser{}, err
	}

	return profile, nil
}

// Admin implements [AuthClient]. It GETs /api/auth/admin.
func (h *httpAuthClient) Admin(ctx context.Context) (models.AdminContent, error) {
	var content models.AdminContent

	resp, err := h.authedRequest(ctx).SetResult(&content).Get("/api/auth/admin")
	if err != nil {
		return models.AdminContent{}, fmt.Errorf("admin request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AdminContent{}, err
	}

	return content, nil
}

// ForgotPassword implements [AuthClient]. It POSTs to /api/auth/forgotpassword.
func (h *httpAuthClient) ForgotPassword(ctx context.Context, email string) (models.StatusResponse, error) {
	req := h.client.R().SetContext(ctx).SetBody(models.ForgotPasswordRequest{Email: email})
	return h.status(req, "POST", "/api/auth/forgotpassword")
}

// ResetPassword implements [AuthClient]. It PUTs to
// /api/auth/resetpassword/{resettoken} with the secret path-escaped.
func (h *httpAuthClient) ResetPassword(ctx context.Context, secret, password string) (models.StatusResponse, error) {
	req := h.client.R().SetContext(ctx).SetBody(models.ResetPasswordRequest{Password: password})
	return h.status(req, "PUT", "/api/auth/resetpassword/"+url.PathEscape(secret))
}

// ChangePassword implements [AuthClient]. It PUTs to /api/auth/password.
func (h *httpAuthClient) ChangePassword(ctx context.Context, currentPassword, newPassword string) (models.StatusResponse, error) {
	req := h.authedRequest(ctx).SetBody(models.ChangePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword})
	return h.status(req, "PUT", "/api/auth/password")
}

func (h *httpAuthClient) status(req *resty.Request, method, path string) (models.StatusResponse, error) {
	var status models.StatusResponse

	resp, err := req.SetResult(&status).Execute(method, path)
	if err != nil {
		return models.StatusResponse{}, fmt.Errorf("%s %s request: %w", method, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StatusResponse{}, err
	}

	return status, nil
}

func (h *httpAuthClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
