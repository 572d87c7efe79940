// Package http implements the HTTP transport layer of go-auth-keeper.
//
// It exposes the /api/auth routes together with the version and metrics
// endpoints. Request tracing, access logging, metrics, security headers,
// authentication and role checks are handled here before requests are
// delegated to the service layer.
package http
