// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of go-auth-keeper.
//
// Without a subcommand the interactive terminal UI starts. Subcommands
// (register, login, profile, admin, forgot, reset, passwd, version) run one
// request against the server through [adapter.AuthClient] and print the
// JSON response, for use in scripts.
//
// Passwords and reset tokens are never taken from the command line: they
// are prompted for with echo disabled, or read line by line from stdin when
// it is not a terminal.
package client
