package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/pkgsupport/pkg/verbose"
)

// LoadConfig loads configuration from the specified path or defaults.
//
// If configPath is provided, it loads that specific config file.
// Otherwise, it looks for .pkgsupport.yml in the working directory.
// If no config is found, it returns the built-in default configuration.
//
// Parameters:
//   - configPath: path to the config file, or empty to use defaults
//   - workDir: working directory for the configuration
//
// Returns:
//   - *Config: the loaded and validated configuration
//   - error: any error encountered during loading or validation
func LoadConfig(configPath, workDir string) (*Config, error) {
	var cfg *Config

	if configPath != "" {
		loaded, err := loadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		cfg = loaded
		verbose.ConfigLoaded(configPath, cfg.ProfileNames())
	} else {
		localConfig := filepath.Join(workDir, DefaultFileName)
		if _, err := os.Stat(localConfig); err == nil {
			loaded, err := loadConfigFile(localConfig)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			cfg = loaded
			verbose.ConfigLoaded(localConfig, cfg.ProfileNames())
		}

		if cfg == nil {
			verbose.Info("Using built-in default configuration")
			cfg = defaultConfig()
		}
	}

	if workDir != "" {
		cfg.WorkingDir = workDir
	} else if cfg.WorkingDir == "" {
		cfg.WorkingDir = "."
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadConfigFile reads and unmarshals a single YAML config file.
//
// Parameters:
//   - path: The config file path
//
// Returns:
//   - *Config: The decoded configuration
//   - error: Returns an error when the file is unreadable or not valid YAML
func loadConfigFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	return &cfg, nil
}

// defaultConfig returns the built-in configuration used when no file exists.
//
// Returns:
//   - *Config: Configuration with no profiles and the standard fallback query
func defaultConfig() *Config {
	return &Config{
		Profiles:       map[string]ProfileCfg{},
		DefaultQueries: []string{"defaults"},
	}
}
