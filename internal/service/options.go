package service

import (
	"time"

	"github.com/MKhiriev/go-auth-keeper/internal/crypto"
	"github.com/MKhiriev/go-auth-keeper/internal/metrics"
)

// Option customizes a service at construction.
type Option func(*options)

type options struct {
	clock    func() time.Time
	recorder metrics.Recorder
	hasher   crypto.SecretHasher
}

func newOptions(opts []Option) options {
	o := options{clock: time.Now, recorder: metrics.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock replaces time.Now as the source of the current time.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithRecorder sends domain outcomes to r.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithSecretHasher makes [NewServices] use h instead of a default argon2id
// hasher built from the app configuration.
func WithSecretHasher(h crypto.SecretHasher) Option {
	return func(o *options) { o.hasher = h }
}
