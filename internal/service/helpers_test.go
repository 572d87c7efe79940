package service

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/crypto"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/store"
	"github.com/MKhiriev/go-auth-keeper/internal/utils"
)

var testAppConfig = config.App{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "go-auth-keeper-test",
	TokenDuration: time.Hour,
}

// testClock is a settable clock safe for concurrent reads.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func cheapHasher() crypto.SecretHasher {
	return crypto.NewSecretHasher(crypto.WithArgon2Params(crypto.Argon2Params{Time: 1, Memory: 64, Threads: 1}))
}

// memoryStack wires the real services over the in-memory store.
type memoryStack struct {
	clock  *testClock
	repo   store.UserRepository
	tokens TokenService
	auth   AuthService
	reset  PasswordResetService
}

func newMemoryStack() *memoryStack {
	clock := newTestClock()
	repo := store.NewMemoryUserRepository(logger.Nop())
	hasher := cheapHasher()
	tokens := NewTokenService(testAppConfig, WithClock(clock.Now))

	return &memoryStack{
		clock:  clock,
		repo:   repo,
		tokens: tokens,
		auth:   NewAuthService(repo, hasher, tokens, utils.NewUUIDGenerator()),
		reset:  NewPasswordResetService(repo, hasher, WithClock(clock.Now)),
	}
}
