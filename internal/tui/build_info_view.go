// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/go-auth-keeper/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	return renderPage("ABOUT", renderRows([][2]string{
		{"Application", "go-auth-keeper client"},
		{"Version", info.BuildVersion()},
		{"Date", info.BuildDate()},
		{"Commit", info.BuildCommit()},
	}), "esc: back")
}
