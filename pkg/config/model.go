// Package config handles configuration loading and validation for pkgsupport.
// It supports a YAML configuration file (.pkgsupport.yml) defining named
// requirement profiles and fallback browser queries.
package config

import (
	"fmt"
	"sort"

	"github.com/ajxudir/pkgsupport/pkg/compat"
)

// DefaultFileName is the configuration file looked up in the working directory.
const DefaultFileName = ".pkgsupport.yml"

// ProfileCfg is one named requirement set.
//
// Fields:
//   - Requirements: The ordered requirements checked when the profile is used
type ProfileCfg struct {
	Requirements []compat.Requirement `yaml:"requirements"`
}

// Config is the root configuration for pkgsupport.
//
// Fields:
//   - WorkingDir: Directory manifests are resolved against
//   - Manifest: Optional explicit manifest path overriding discovery
//   - Profiles: Named requirement sets selectable via --profile
//   - DefaultQueries: Browser queries used by the targets command when the
//     manifest declares no browserslist field
type Config struct {
	WorkingDir     string                `yaml:"working_dir"`
	Manifest       string                `yaml:"manifest"`
	Profiles       map[string]ProfileCfg `yaml:"profiles"`
	DefaultQueries []string              `yaml:"default_queries"`
}

// Profile looks up a named requirement profile.
//
// Parameters:
//   - name: The profile name from the configuration file
//
// Returns:
//   - compat.RequirementSet: The profile's requirements
//   - error: Returns an error naming the known profiles when the name is unknown
func (c *Config) Profile(name string) (compat.RequirementSet, error) {
	profile, ok := c.Profiles[name]
	if !ok {
		return compat.RequirementSet{}, fmt.Errorf("unknown profile %q (known profiles: %v)", name, c.ProfileNames())
	}
	return compat.RequirementSet{Requirements: profile.Requirements}, nil
}

// ProfileNames returns the configured profile names in sorted order.
//
// Returns:
//   - []string: Sorted profile names; empty when none are configured
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
