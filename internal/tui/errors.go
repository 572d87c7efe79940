// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"
)

var (
	errFieldsRequired   = errors.New("all fields are required")
	errPasswordMismatch = errors.New("passwords do not match")
	errNotSignedIn      = errors.New("log in first")
)

// humanizeError turns transport failures into one readable line and keeps
// the server's own message for everything else.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "server is unavailable or the network is down"
	}

	return err.Error()
}

// renderErrorOverlay boxes a blocking error over the current screen.
func renderErrorOverlay(message string) string {
	return overlayBoxStyle.Render("Error\n\n" + message + "\n\nenter / esc: close")
}
