package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/utils"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// tokenService signs HS256 tokens with a key captured at construction.
// All fields are read-only afterwards, so the service is safe for concurrent use.
type tokenService struct {
	signKey  string
	issuer   string
	duration time.Duration
	clock    func() time.Time
}

// NewTokenService builds a [TokenService] from the token settings of cfg.
func NewTokenService(cfg config.App, opts ...Option) TokenService {
	o := newOptions(opts)
	return &tokenService{
		signKey:  cfg.TokenSignKey,
		issuer:   cfg.TokenIssuer,
		duration: cfg.TokenDuration,
		clock:    o.clock,
	}
}

func (s *tokenService) Issue(ctx context.Context, user models.User) (models.Token, error) {
	if user.ID == "" {
		return models.Token{}, ErrInvalidDataProvided
	}

	token, err := utils.GenerateJWTToken(s.issuer, user.ID, s.duration, s.signKey, s.clock())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenService.Issue").Msg("error signing token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func (s *tokenService) Verify(ctx context.Context, tokenString string) (models.Token, error) {
	if tokenString == "" {
		return models.Token{}, ErrInvalidToken
	}

	token, err := utils.ValidateAndParseJWTToken(tokenString, s.signKey, s.issuer, s.clock())
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*tokenService.Verify").Msg("token rejected")
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrExpiredToken
		}
		return models.Token{}, ErrInvalidToken
	}

	return token, nil
}
