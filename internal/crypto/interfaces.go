package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/secret_hasher_mock.go -package=mock

// SecretHasher is responsible for every one-way transform the service applies
// to secrets. It knows nothing about users, storage or transport.
//
// Two tiers are provided:
//
//	HashPassword / VerifyPassword  slow, salted, brute-force resistant (argon2id)
//	Fingerprint                    fast, deterministic, for high-entropy random secrets
type SecretHasher interface {
	// HashPassword derives a salted argon2id digest of plaintext encoded in
	// PHC string format. The plaintext cannot be recovered from the digest.
	// Returns ErrEmptyPassword for an empty plaintext.
	HashPassword(plaintext string) (string, error)

	// VerifyPassword reports whether plaintext matches digest.
	// The comparison is constant-time. Digests produced by bcrypt are
	// accepted as well so that imported accounts keep working.
	// Returns (false, error) when digest cannot be parsed.
	VerifyPassword(plaintext, digest string) (bool, error)

	// NeedsRehash reports whether digest was produced by another algorithm
	// or with other parameters than the ones HashPassword currently uses.
	NeedsRehash(digest string) bool

	// Fingerprint returns a hex-encoded one-way hash of a random secret.
	// The same secret always yields the same fingerprint within a process,
	// which lets the store match it by equality.
	Fingerprint(secret string) string

	// GenerateSecret returns a new hex-encoded random secret suitable for
	// one-time use (password reset).
	GenerateSecret() (string, error)
}
