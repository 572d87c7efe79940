// Package server wires and runs the application's HTTP server.
//
// It owns the listener lifecycle: startup, signal handling, and graceful
// shutdown that lets in-flight requests finish before the process exits.
package server
