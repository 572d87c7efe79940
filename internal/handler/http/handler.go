package http

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/secure"

	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/metrics"
	"github.com/MKhiriev/go-auth-keeper/internal/service"
	"github.com/MKhiriev/go-auth-keeper/models"
)

type Handler struct {
	services *service.Services
	notifier service.ResetNotifier
	metrics  *metrics.Metrics

	validator *validator.Validate
	secure    *secure.Secure
	adminGate service.AuthorizationGate

	cfg   config.Server
	clock func() time.Time

	logger *logger.Logger
}

func NewHandler(services *service.Services, notifier service.ResetNotifier, m *metrics.Metrics, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		notifier:  notifier,
		metrics:   m,
		validator: newValidator(),
		secure: secure.New(secure.Options{
			FrameDeny:             true,
			ContentTypeNosniff:    true,
			BrowserXssFilter:      true,
			ReferrerPolicy:        "no-referrer",
			ContentSecurityPolicy: "default-src 'none'",
		}),
		adminGate: service.NewAuthorizationGate(models.RoleAdmin),
		cfg:       cfg,
		clock:     time.Now,
		logger:    logger,
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
