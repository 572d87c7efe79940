package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-auth-keeper/internal/crypto"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/metrics"
	"github.com/MKhiriev/go-auth-keeper/internal/store"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// ResetTokenTTL is how long a requested reset secret stays usable.
const ResetTokenTTL = 10 * time.Minute

// passwordResetService implements [PasswordResetService].
//
// Only the fingerprint of a reset secret is persisted. Expiry is checked at
// lookup, so an expired reset simply never matches again.
type passwordResetService struct {
	userRepository store.UserRepository
	hasher         crypto.SecretHasher
	clock          func() time.Time
	recorder       metrics.Recorder
}

// NewPasswordResetService constructs a [PasswordResetService].
func NewPasswordResetService(userRepository store.UserRepository, hasher crypto.SecretHasher, opts ...Option) PasswordResetService {
	o := newOptions(opts)
	return &passwordResetService{
		userRepository: userRepository,
		hasher:         hasher,
		clock:          o.clock,
		recorder:       o.recorder,
	}
}

func (s *passwordResetService) RequestReset(ctx context.Context, email string) (ticket models.ResetTicket, err error) {
	log := logger.FromContext(ctx)
	defer func() { s.recorder.PasswordReset(metrics.StageRequest, metrics.Result(err)) }()

	email = models.NormalizeEmail(email)
	if email == "" {
		return models.ResetTicket{}, ErrInvalidDataProvided
	}

	user, err := s.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.ResetTicket{}, ErrUserNotFound
		}
		return models.ResetTicket{}, fmt.Errorf("user search by email failed: %w", err)
	}

	secret, err := s.hasher.GenerateSecret()
	if err != nil {
		return models.ResetTicket{}, fmt.Errorf("error generating reset secret: %w", err)
	}

	expiresAt := s.clock().Add(ResetTokenTTL)
	if err := s.userRepository.SetResetToken(ctx, user.ID, s.hasher.Fingerprint(secret), expiresAt); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.ResetTicket{}, ErrUserNotFound
		}
		return models.ResetTicket{}, fmt.Errorf("error storing reset token: %w", err)
	}

	log.Info().
		Str("func", "*passwordResetService.RequestReset").
		Str("user_id", user.ID).
		Time("expires_at", expiresAt).
		Msg("password reset requested")

	return models.ResetTicket{Email: user.Email, Secret: secret, ExpiresAt: expiresAt}, nil
}

// ResetPassword hashes the new password before the conditional consume, so
// the slow hash never runs while the store holds a lock on the record.
func (s *passwordResetService) ResetPassword(ctx context.Context, secret, newPassword string) (err error) {
	log := logger.FromContext(ctx)
	defer func() { s.recorder.PasswordReset(metrics.StageConsume, metrics.Result(err)) }()

	if secret == "" {
		return ErrInvalidOrExpiredToken
	}
	if newPassword == "" {
		return ErrInvalidDataProvided
	}

	tokenHash := s.hasher.Fingerprint(secret)
	now := s.clock()

	if _, err := s.userRepository.FindUserByResetToken(ctx, tokenHash, now); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("user search by reset token failed: %w", err)
	}

	passwordHash, err := s.hasher.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	// re-checks validity at s.clock() after hashing; a concurrent consumer
	// or an expiry in between makes it match nothing
	user, err := s.userRepository.ConsumeResetToken(ctx, tokenHash, passwordHash, s.clock())
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("error consuming reset token: %w", err)
	}

	log.Info().Str("func", "*passwordResetService.ResetPassword").Str("user_id", user.ID).Msg("password reset completed")
	return nil
}
