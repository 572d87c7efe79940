// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-auth-keeper/internal/utils"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// OWASP-recommended argon2id parameters.
const (
	defaultArgon2Time    = 1
	defaultArgon2Memory  = 64 * 1024 // KiB
	defaultArgon2Threads = 4
	argon2SaltLen        = 16
	argon2KeyLen         = 32

	// resetSecretBytes is the entropy of a reset secret: 20 bytes, 40 hex chars.
	resetSecretBytes = 20
)

// Argon2Params controls the cost of HashPassword.
type Argon2Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
}

// DefaultArgon2Params returns the parameters used in production.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    defaultArgon2Time,
		Memory:  defaultArgon2Memory,
		Threads: defaultArgon2Threads,
	}
}

// Option customizes the hasher returned by [NewSecretHasher].
type Option func(*secretHasher)

// WithArgon2Params overrides the argon2id cost parameters.
// Tests use it to keep hashing cheap.
func WithArgon2Params(p Argon2Params) Option {
	return func(h *secretHasher) {
		h.params = p
	}
}

// WithFingerprintKey makes Fingerprint an HMAC-SHA256 keyed with key instead
// of a plain SHA-256. An empty key keeps the plain hash.
func WithFingerprintKey(key string) Option {
	return func(h *secretHasher) {
		h.fingerprintKey = key
	}
}

type secretHasher struct {
	params         Argon2Params
	fingerprintKey string
}

// NewSecretHasher constructs the argon2id-backed [SecretHasher].
func NewSecretHasher(opts ...Option) SecretHasher {
	h := &secretHasher{params: DefaultArgon2Params()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *secretHasher) HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneratingSecret, err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, h.params.Time, h.params.Memory, h.params.Threads, argon2KeyLen)

	// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h *secretHasher) VerifyPassword(plaintext, digest string) (bool, error) {
	if isBcrypt(digest) {
		err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, fmt.Errorf("%w: %w", ErrInvalidHash, err)
		}
	}

	decoded, err := decodeArgon2id(digest)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(plaintext), decoded.salt, decoded.params.Time, decoded.params.Memory, decoded.params.Threads, uint32(len(decoded.key)))

	return subtle.ConstantTimeCompare(computed, decoded.key) == 1, nil
}

func (h *secretHasher) NeedsRehash(digest string) bool {
	decoded, err := decodeArgon2id(digest)
	if err != nil {
		return true
	}
	return decoded.params != h.params
}

func (h *secretHasher) Fingerprint(secret string) string {
	if h.fingerprintKey != "" {
		return utils.HashString(secret, h.fingerprintKey)
	}
	return utils.SumString(secret)
}

func (h *secretHasher) GenerateSecret() (string, error) {
	b := make([]byte, resetSecretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneratingSecret, err)
	}
	return hex.EncodeToString(b), nil
}

type argon2idDigest struct {
	params Argon2Params
	salt   []byte
	key    []byte
}

func decodeArgon2id(digest string) (argon2idDigest, error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 {
		return argon2idDigest{}, ErrInvalidHash
	}
	if parts[1] != "argon2id" {
		return argon2idDigest{}, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return argon2idDigest{}, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
	if version != argon2.Version {
		return argon2idDigest{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidHash, version)
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return argon2idDigest{}, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
	if threads == 0 || threads > 255 || time == 0 {
		return argon2idDigest{}, fmt.Errorf("%w: invalid parameters", ErrInvalidHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return argon2idDigest{}, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return argon2idDigest{}, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
	if len(key) == 0 || len(key) > 1<<10 {
		return argon2idDigest{}, fmt.Errorf("%w: invalid key length %d", ErrInvalidHash, len(key))
	}

	return argon2idDigest{
		params: Argon2Params{Time: time, Memory: memory, Threads: uint8(threads)},
		salt:   salt,
		key:    key,
	}, nil
}

func isBcrypt(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") ||
		strings.HasPrefix(digest, "$2b$") ||
		strings.HasPrefix(digest, "$2y$")
}
