// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the interactive terminal client of go-auth-keeper.
//
// A [RootModel] routes between pages: the start menu, the login, register,
// forgot-password, reset-password and change-password forms, and the
// profile screen of a signed-in user. Every page talks to the server only
// through [adapter.AuthClient]; secrets are typed into masked inputs and
// never echoed.
package tui
