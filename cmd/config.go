package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ajxudir/pkgsupport/pkg/config"
	"github.com/ajxudir/pkgsupport/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	configDirFlag  string
	configPathFlag string
	configInitFlag bool
)

var writeFileFunc = os.WriteFile

// starterConfig is written by `config --init`.
const starterConfig = `# pkgsupport configuration
# manifest: package.json

default_queries:
  - defaults

profiles:
  modern:
    requirements:
      - engine: node
        min: "18.0.0"
      - engine: chrome
        min: "100.0.0"
`

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize the configuration",
	Long: `Show the effective configuration, including requirement profiles and
default browser queries. With --init, write a starter config file.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVarP(&configDirFlag, "directory", "d", ".", "Working directory")
	configCmd.Flags().StringVarP(&configPathFlag, "config", "c", "", "Config file path")
	configCmd.Flags().BoolVar(&configInitFlag, "init", false, "Write a starter config file")
}

// runConfig executes the config command.
//
// Without flags it loads and prints the effective configuration. With
// --init it writes a starter config file, refusing to overwrite one that
// already exists.
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Command line arguments (unused)
//
// Returns:
//   - error: ExitError with code 3 on configuration problems
func runConfig(cmd *cobra.Command, args []string) error {
	if configInitFlag {
		return initConfig()
	}

	cfg, err := loadConfigFunc(configPathFlag, configDirFlag)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}

	printConfig(cfg)
	return nil
}

// initConfig writes the starter config file into the working directory.
//
// Returns:
//   - error: ExitError with code 3 when the file exists or cannot be written
func initConfig() error {
	path := filepath.Join(configDirFlag, config.DefaultFileName)
	if _, err := os.Stat(path); err == nil {
		return errors.NewExitErrorf(errors.ExitConfigError, "config file already exists: %s", path)
	}

	if err := writeFileFunc(path, []byte(starterConfig), 0o644); err != nil {
		return errors.NewExitError(errors.ExitConfigError, fmt.Errorf("failed to write config: %w", err))
	}

	fmt.Printf("Created %s\n", path)
	return nil
}

// printConfig prints the effective configuration to stdout.
func printConfig(cfg *config.Config) {
	fmt.Printf("Working directory: %s\n", cfg.WorkingDir)
	if cfg.Manifest != "" {
		fmt.Printf("Manifest:          %s\n", cfg.Manifest)
	}
	if len(cfg.DefaultQueries) > 0 {
		fmt.Printf("Default queries:   %v\n", cfg.DefaultQueries)
	}

	names := cfg.ProfileNames()
	if len(names) == 0 {
		fmt.Println("Profiles:          (none)")
		return
	}

	fmt.Println("Profiles:")
	for _, name := range names {
		fmt.Printf("  %s:\n", name)
		for _, req := range cfg.Profiles[name].Requirements {
			line := fmt.Sprintf("    - %s", req.Engine)
			if req.MinVersion != "" {
				line += fmt.Sprintf(" min %s", req.MinVersion)
			}
			if req.MaxVersion != "" {
				line += fmt.Sprintf(" max %s", req.MaxVersion)
			}
			fmt.Println(line)
		}
	}
}
