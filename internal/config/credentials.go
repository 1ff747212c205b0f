// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"
)

// Env variable names consulted for the Bungie.net credentials, in order of
// precedence.
var (
	APIKeyEnv    = []string{"BUNGIE_API_KEY", "API_KEY"}
	UserAgentEnv = []string{"BUNGIE_USER_AGENT", "USER_AGENT"}
)

// Credentials identify the client to the Bungie.net API.
type Credentials struct {
	APIKey    string
	UserAgent string
}

// ConfigError reports required settings that were not supplied.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

// Validate returns a *ConfigError naming every missing value, or nil.
func (c Credentials) Validate() error {
	var missing []string
	if strings.TrimSpace(c.APIKey) == "" {
		missing = append(missing, "api key ("+strings.Join(APIKeyEnv, " or ")+")")
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		missing = append(missing, "user agent ("+strings.Join(UserAgentEnv, " or ")+")")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}
