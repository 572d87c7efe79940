package service

import (
	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/crypto"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/store"
	"github.com/MKhiriev/go-auth-keeper/internal/utils"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// Services groups the services consumed by the transport layer.
type Services struct {
	TokenService         TokenService
	AuthService          AuthService
	PasswordResetService PasswordResetService
	AppInfoService       AppInfoService
}

// NewServices wires every service over the given storages.
func NewServices(storages *store.Storages, cfg config.App, buildInfo models.AppBuildInfo, logger *logger.Logger, opts ...Option) (*Services, error) {
	hasher := newOptions(opts).hasher
	if hasher == nil {
		hasher = crypto.NewSecretHasher(crypto.WithFingerprintKey(cfg.ResetTokenHashKey))
	}

	tokens := NewTokenService(cfg, opts...)

	appInfo, err := NewAppInfoService(cfg, buildInfo)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("issuer", cfg.TokenIssuer).Dur("token_duration", cfg.TokenDuration).Msg("services created")

	return &Services{
		TokenService:         tokens,
		AuthService:          NewAuthService(storages.UserRepository, hasher, tokens, utils.NewUUIDGenerator(), opts...),
		PasswordResetService: NewPasswordResetService(storages.UserRepository, hasher, opts...),
		AppInfoService:       appInfo,
	}, nil
}
