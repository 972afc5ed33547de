package config

import (
	"fmt"
	"strings"
)

// Validate checks a configuration for structural problems.
//
// It performs the following operations:
//   - Rejects profiles with blank names
//   - Rejects profiles without requirements
//   - Rejects requirements without an engine name
//
// Coercibility of min/max values is deliberately not validated here; the
// checker fails closed on uncoercible bounds at evaluation time.
//
// Parameters:
//   - cfg: The configuration to validate
//
// Returns:
//   - error: The first problem found, or nil when the configuration is valid
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is required")
	}

	for name, profile := range cfg.Profiles {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("profile with blank name is not allowed")
		}
		if len(profile.Requirements) == 0 {
			return fmt.Errorf("profile %q has no requirements", name)
		}
		for i, req := range profile.Requirements {
			if strings.TrimSpace(req.Engine) == "" {
				return fmt.Errorf("profile %q requirement %d has no engine name", name, i+1)
			}
		}
	}

	for _, query := range cfg.DefaultQueries {
		if strings.TrimSpace(query) == "" {
			return fmt.Errorf("default_queries must not contain blank entries")
		}
	}

	return nil
}
