package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-auth-keeper/internal/crypto"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/metrics"
	"github.com/MKhiriev/go-auth-keeper/internal/store"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// dummyPassword is hashed once and verified against on logins for unknown
// emails, so that both failure paths spend the same hashing time.
const dummyPassword = "go-auth-keeper/dummy-password"

// authService is the concrete implementation of [AuthService].
// It handles registration, credential verification and password changes,
// delegating persistence to a [store.UserRepository], hashing to a
// [crypto.SecretHasher] and token minting to a [TokenService].
type authService struct {
	userRepository store.UserRepository
	hasher         crypto.SecretHasher
	tokens         TokenService
	ids            IDGenerator
	recorder       metrics.Recorder

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService constructs an [AuthService].
//
// The returned service is safe for concurrent use.
func NewAuthService(userRepository store.UserRepository, hasher crypto.SecretHasher, tokens TokenService, ids IDGenerator, opts ...Option) AuthService {
	o := newOptions(opts)
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		tokens:         tokens,
		ids:            ids,
		recorder:       o.recorder,
	}
}

// Register creates a user with the default role and returns it together with
// a fresh session token.
//
// Returns:
//   - ErrInvalidDataProvided if email or password is empty.
//   - ErrDuplicateUser if the email is taken, either found by the pre-check
//     or reported by the store's uniqueness constraint.
func (a *authService) Register(ctx context.Context, credentials models.Credentials) (session models.Session, err error) {
	log := logger.FromContext(ctx)
	defer func() { a.recorder.Registration(metrics.Result(err)) }()

	email := models.NormalizeEmail(credentials.Email)
	if email == "" || credentials.Password == "" {
		return models.Session{}, ErrInvalidDataProvided
	}

	_, err = a.userRepository.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		log.Info().Str("func", "*authService.Register").Msg("registration rejected: email already taken")
		return models.Session{}, ErrDuplicateUser
	case !errors.Is(err, store.ErrNoUserWasFound):
		return models.Session{}, fmt.Errorf("error checking email availability: %w", err)
	}

	passwordHash, err := a.hasher.HashPassword(credentials.Password)
	if err != nil {
		return models.Session{}, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		ID:           a.ids.Generate(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.DefaultRole,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.Session{}, ErrDuplicateUser
		}
		return models.Session{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	token, err := a.tokens.Issue(ctx, user)
	if err != nil {
		return models.Session{}, err
	}

	log.Info().Str("func", "*authService.Register").Str("user_id", user.ID).Msg("user registered")
	return models.Session{User: user, Token: token}, nil
}

// Login verifies the credentials and returns the user with a fresh session
// token. A successfully verified hash produced with outdated parameters is
// replaced with a current one.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (session models.Session, err error) {
	log := logger.FromContext(ctx)
	defer func() { a.recorder.Login(metrics.Result(err)) }()

	email := models.NormalizeEmail(credentials.Email)
	if email == "" || credentials.Password == "" {
		return models.Session{}, ErrInvalidCredentials
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNoUserWasFound) {
			return models.Session{}, fmt.Errorf("user search by email failed: %w", err)
		}
		a.burnVerification(credentials.Password)
		return models.Session{}, ErrInvalidCredentials
	}

	ok, err := a.hasher.VerifyPassword(credentials.Password, user.PasswordHash)
	if err != nil {
		return models.Session{}, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		log.Info().Str("func", "*authService.Login").Str("user_id", user.ID).Msg("wrong password")
		return models.Session{}, ErrInvalidCredentials
	}

	if a.hasher.NeedsRehash(user.PasswordHash) {
		a.upgradeHash(ctx, user.ID, credentials.Password)
	}

	token, err := a.tokens.Issue(ctx, user)
	if err != nil {
		return models.Session{}, err
	}

	return models.Session{User: user, Token: token}, nil
}

// GetProfile returns the user with userID. Callers must serialize the result
// with [models.User.Public].
func (a *authService) GetProfile(ctx context.Context, userID string) (models.User, error) {
	if userID == "" {
		return models.User{}, ErrUserNotFound
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// ChangePassword replaces the password of the identified user after
// verifying the current one. A pending password reset stays untouched.
func (a *authService) ChangePassword(ctx context.Context, identity models.Identity, currentPassword, newPassword string) error {
	if !identity.IsResolved() {
		return ErrForbidden
	}
	if currentPassword == "" || newPassword == "" {
		return ErrInvalidDataProvided
	}

	user, err := a.GetProfile(ctx, identity.UserID)
	if err != nil {
		return err
	}

	ok, err := a.hasher.VerifyPassword(currentPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return ErrInvalidCredentials
	}

	passwordHash, err := a.hasher.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := a.userRepository.UpdatePasswordHash(ctx, user.ID, passwordHash); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("error updating password: %w", err)
	}

	logger.FromContext(ctx).Info().Str("func", "*authService.ChangePassword").Str("user_id", user.ID).Msg("password changed")
	return nil
}

func (a *authService) upgradeHash(ctx context.Context, userID, password string) {
	log := logger.FromContext(ctx)

	passwordHash, err := a.hasher.HashPassword(password)
	if err == nil {
		err = a.userRepository.UpdatePasswordHash(ctx, userID, passwordHash)
	}
	if err != nil {
		log.Warn().Err(err).Str("func", "*authService.upgradeHash").Str("user_id", userID).Msg("password hash upgrade failed")
		return
	}

	log.Info().Str("func", "*authService.upgradeHash").Str("user_id", userID).Msg("password hash upgraded")
}

func (a *authService) burnVerification(password string) {
	a.dummyOnce.Do(func() {
		a.dummyHash, _ = a.hasher.HashPassword(dummyPassword)
	})
	if a.dummyHash != "" {
		_, _ = a.hasher.VerifyPassword(password, a.dummyHash)
	}
}
