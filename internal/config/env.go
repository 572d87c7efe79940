// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg (a *StructuredConfig or *ClientConfig) from the
// process environment following its env/envPrefix tags, e.g.
// APP_TOKEN_SIGN_KEY or STORAGE_DB_DRIVER. Unset variables leave fields
// untouched so later sources and defaults can fill them.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
