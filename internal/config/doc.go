// Package config loads the settings of the go-auth-keeper server and client.
//
// Server values come from, in increasing priority, environment variables,
// command-line flags and an optional JSON file; fields nobody set take the
// built-in defaults (30 day tokens, postgres driver, 30s request timeout).
// The merged result is validated before use, so a missing signing key or
// an unknown storage driver stops the process at startup.
//
// Entry points: [GetStructuredConfig] for the server and [GetClientConfig]
// for the command-line client.
package config
