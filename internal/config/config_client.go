package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"dario.cat/mergo"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the auth server
	// (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// RequestTimeout is the default timeout for outbound client requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientConfig is the top-level configuration of the command-line client.
type ClientConfig struct {
	// Adapter contains the server address and request timeout.
	Adapter ClientAdapter `envPrefix:"ADAPTER_"`

	// Token is a session token for commands that need authentication.
	// It is read from the environment only, never from flags, so it does
	// not show up in process listings.
	// Env: AUTH_TOKEN
	Token string `env:"AUTH_TOKEN"`
}

// GetClientConfig loads the client configuration from environment variables
// and the leading flags of args, flags taking precedence. It returns the
// validated config together with the arguments left after flag parsing
// (the subcommand and its operands).
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	envCfg := new(ClientConfig)
	if err := parseEnv(envCfg); err != nil {
		return nil, nil, err
	}

	flagCfg, rest, err := parseClientFlags(args)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing client flags: %w", err)
	}

	cfg := new(ClientConfig)
	for _, c := range []*ClientConfig{envCfg, flagCfg} {
		if err := mergo.Merge(cfg, c, mergo.WithOverride); err != nil {
			return nil, nil, errors.Join(ErrInvalidAdapterConfigs, err)
		}
	}
	if err := mergo.Merge(cfg, defaultClientConfig()); err != nil {
		return nil, nil, errors.Join(ErrInvalidAdapterConfigs, err)
	}

	return cfg, rest, cfg.validate()
}

func parseClientFlags(args []string) (*ClientConfig, []string, error) {
	fs := flag.NewFlagSet("go-auth-keeper-client", flag.ContinueOnError)

	var address string
	var timeout time.Duration
	fs.StringVar(&address, "s", "", "Auth server base URL")
	fs.DurationVar(&timeout, "t", 0, "Request timeout (e.g., 10s)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    address,
			RequestTimeout: timeout,
		},
	}, fs.Args(), nil
}

func defaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
	}
}
