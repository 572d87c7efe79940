// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal contract for runnable client applications.
type Client interface {
	// Run executes the subcommand named by args, or the interactive UI when
	// args is empty, and returns once it has completed.
	Run(ctx context.Context, args []string) error
}

// Interactive is a full-screen client session.
type Interactive interface {
	Run(ctx context.Context) error
}

// SecretReader prompts for a value that must not be echoed or passed on
// the command line.
type SecretReader interface {
	ReadSecret(prompt string) (string, error)
}
