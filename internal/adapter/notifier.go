package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/utils"
	"github.com/MKhiriev/go-auth-keeper/models"
)

const defaultWebhookTimeout = 10 * time.Second

// ResetNotifier hands a password reset link over to a delivery channel.
// It matches service.ResetNotifier.
type ResetNotifier interface {
	Notify(ctx context.Context, notification models.ResetNotification) error
}

// NewResetNotifier returns a webhook notifier when cfg.ResetWebhookURL is set
// and a log-only notifier otherwise.
func NewResetNotifier(cfg config.Adapter, logger *logger.Logger) ResetNotifier {
	if cfg.ResetWebhookURL == "" {
		logger.Warn().Msg("no reset webhook configured, reset links will not be delivered")
		return &logNotifier{logger: logger}
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultWebhookTimeout
	}

	return &webhookNotifier{
		client: utils.NewHTTPClient("", timeout),
		url:    cfg.ResetWebhookURL,
		logger: logger,
	}
}

// webhookNotifier POSTs every notification as JSON to a fixed URL.
type webhookNotifier struct {
	client *utils.HTTPClient
	url    string
	logger *logger.Logger
}

func (n *webhookNotifier) Notify(ctx context.Context, notification models.ResetNotification) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(notification).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("reset webhook request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("reset webhook: %w", err)
	}

	n.logger.Debug().
		Str("func", "*webhookNotifier.Notify").
		Str("email", notification.Email).
		Int("status", resp.StatusCode()).
		Msg("reset notification delivered")
	return nil
}

// logNotifier only records that a reset was requested. The link carries the
// secret and is never written out.
type logNotifier struct {
	logger *logger.Logger
}

func (n *logNotifier) Notify(_ context.Context, notification models.ResetNotification) error {
	n.logger.Info().
		Str("func", "*logNotifier.Notify").
		Str("email", notification.Email).
		Time("expires_at", notification.ExpiresAt).
		Msg("password reset link issued")
	return nil
}
