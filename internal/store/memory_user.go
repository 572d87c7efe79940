package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// memoryUserRepository is an in-process [UserRepository] for development and
// tests. Every method runs under a single mutex, which gives the same
// uniqueness and single-consumption guarantees as the SQL constraints.
type memoryUserRepository struct {
	mu      sync.Mutex
	users   map[string]models.User
	byEmail map[string]string
	now     func() time.Time
}

// NewMemoryUserRepository returns an empty in-memory [UserRepository].
func NewMemoryUserRepository(logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating in-memory user repository")
	return &memoryUserRepository{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (m *memoryUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[user.Email]; exists {
		return models.User{}, ErrEmailAlreadyExists
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = m.now()
	}
	user.UpdatedAt = user.CreatedAt

	user = cloneUser(user)
	m.users[user.ID] = user
	m.byEmail[user.Email] = user.ID

	return cloneUser(user), nil
}

func (m *memoryUserRepository) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byEmail[email]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}

	return cloneUser(m.users[id]), nil
}

func (m *memoryUserRepository) FindUserByID(_ context.Context, id string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}

	return cloneUser(user), nil
}

func (m *memoryUserRepository) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return ErrNoUserWasFound
	}

	user.PasswordHash = passwordHash
	user.UpdatedAt = m.now()
	m.users[id] = user

	return nil
}

func (m *memoryUserRepository) SetResetToken(_ context.Context, id, tokenHash string, expiry time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return ErrNoUserWasFound
	}

	user.ResetTokenHash = &tokenHash
	user.ResetTokenExpiry = &expiry
	user.UpdatedAt = m.now()
	m.users[id] = user

	return nil
}

func (m *memoryUserRepository) FindUserByResetToken(_ context.Context, tokenHash string, now time.Time) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.findByResetTokenLocked(tokenHash, now)
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}

	return cloneUser(user), nil
}

func (m *memoryUserRepository) ConsumeResetToken(_ context.Context, tokenHash, passwordHash string, now time.Time) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.findByResetTokenLocked(tokenHash, now)
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}

	user.PasswordHash = passwordHash
	user.ResetTokenHash = nil
	user.ResetTokenExpiry = nil
	user.UpdatedAt = now
	m.users[user.ID] = user

	return cloneUser(user), nil
}

func (m *memoryUserRepository) findByResetTokenLocked(tokenHash string, now time.Time) (models.User, bool) {
	for _, user := range m.users {
		if user.ResetTokenHash != nil && *user.ResetTokenHash == tokenHash && user.HasPendingReset(now) {
			return user, true
		}
	}

	return models.User{}, false
}

// cloneUser copies the pointer fields so callers never share state with the map.
func cloneUser(u models.User) models.User {
	if u.ResetTokenHash != nil {
		h := *u.ResetTokenHash
		u.ResetTokenHash = &h
	}
	if u.ResetTokenExpiry != nil {
		e := *u.ResetTokenExpiry
		u.ResetTokenExpiry = &e
	}

	return u
}
