package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajxudir/pkgsupport/pkg/compat"
	"github.com/ajxudir/pkgsupport/pkg/config"
	"github.com/ajxudir/pkgsupport/pkg/errors"
	"github.com/ajxudir/pkgsupport/pkg/manifest"
	"github.com/ajxudir/pkgsupport/pkg/output"
	"github.com/ajxudir/pkgsupport/pkg/verbose"
	"github.com/spf13/cobra"
)

var (
	checkDirFlag     string
	checkConfigFlag  string
	checkOutputFlag  string
	checkRequireFlag []string
	checkEngineFlag  string
	checkMinFlag     string
	checkMaxFlag     string
	checkProfileFlag string
	checkQuietFlag   bool
)

var (
	loadConfigFunc   = config.LoadConfig
	loadManifestFunc = manifest.Load
	newCheckerFunc   = compat.New
)

var checkCmd = &cobra.Command{
	Use:   "check [manifest]",
	Short: "Check a package manifest against version requirements",
	Long: `Check whether the manifest's declared engines and browserslist targets
satisfy the given per-engine minimum and maximum version requirements.

Requirements come from repeated --require specs (engine:min[:max]), from
the --engine/--min/--max flags, or from a named --profile in the config
file. Exit code 0 means compatible, 1 means incompatible.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkDirFlag, "directory", "d", ".", "Directory containing the manifest")
	checkCmd.Flags().StringVarP(&checkConfigFlag, "config", "c", "", "Config file path")
	checkCmd.Flags().StringVarP(&checkOutputFlag, "output", "o", "", "Output format: json (default: table)")
	checkCmd.Flags().StringArrayVarP(&checkRequireFlag, "require", "r", nil, "Requirement spec engine:min[:max] (repeatable)")
	checkCmd.Flags().StringVar(&checkEngineFlag, "engine", "", "Engine name for --min/--max")
	checkCmd.Flags().StringVar(&checkMinFlag, "min", "", "Minimum version for --engine")
	checkCmd.Flags().StringVar(&checkMaxFlag, "max", "", "Maximum version for --engine")
	checkCmd.Flags().StringVarP(&checkProfileFlag, "profile", "p", "", "Named requirement profile from config")
	checkCmd.Flags().BoolVarP(&checkQuietFlag, "quiet", "q", false, "Suppress output, report via exit code only")
}

// runCheck executes the check command against a package manifest.
//
// It performs the following operations:
//   - Loads configuration and assembles the requirement set
//   - Loads and parses the manifest
//   - Evaluates every requirement and prints per-requirement verdicts
//   - Returns an incompatible exit error when any requirement fails
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Optional manifest path
//
// Returns:
//   - error: ExitError with code 1 (incompatible), 2 (failure), or 3 (config error)
func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigFunc(checkConfigFlag, checkDirFlag)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}

	set, err := assembleRequirements(cfg)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}

	format, err := output.ParseFormat(checkOutputFlag)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}

	path := manifestPath(args, cfg)
	m, err := loadManifestFunc(path)
	if err != nil {
		return errors.NewExitError(errors.ExitFailure, fmt.Errorf("failed to load manifest: %w", err))
	}

	checker, err := newCheckerFunc()
	if err != nil {
		return errors.NewExitError(errors.ExitFailure, err)
	}

	verdicts, compatible, err := checker.Explain(m, set)
	if err != nil {
		return errors.NewExitError(errors.ExitFailure, fmt.Errorf("failed to check %s: %w", path, err))
	}

	report := buildCheckReport(m, path, set, verdicts, compatible)
	if !checkQuietFlag {
		if err := output.WriteCheckReport(os.Stdout, format, report); err != nil {
			return errors.NewExitError(errors.ExitFailure, err)
		}
	}

	if !compatible {
		failed := 0
		for _, v := range verdicts {
			if !v.Satisfied {
				failed++
			}
		}
		return errors.NewExitErrorf(errors.ExitIncompatible, "%s does not satisfy %d of %d requirements", path, failed, len(verdicts))
	}

	verbose.Infof("%s satisfies all %d requirements", path, len(verdicts))
	return nil
}

// assembleRequirements builds the requirement set from flags and config.
//
// Explicit --require and --engine flags take precedence and cannot be mixed
// with --profile. With no explicit requirements, --profile selects a named
// set from the configuration.
//
// Parameters:
//   - cfg: Loaded configuration holding the named profiles
//
// Returns:
//   - compat.RequirementSet: The assembled requirements
//   - error: Returns an error when flags conflict or nothing was requested
func assembleRequirements(cfg *config.Config) (compat.RequirementSet, error) {
	var reqs []compat.Requirement

	for _, spec := range checkRequireFlag {
		req, err := parseRequireSpec(spec)
		if err != nil {
			return compat.RequirementSet{}, err
		}
		reqs = append(reqs, req)
	}

	if checkEngineFlag != "" {
		reqs = append(reqs, compat.Requirement{
			Engine:     checkEngineFlag,
			MinVersion: checkMinFlag,
			MaxVersion: checkMaxFlag,
		})
	} else if checkMinFlag != "" || checkMaxFlag != "" {
		return compat.RequirementSet{}, fmt.Errorf("--min/--max require --engine")
	}

	if checkProfileFlag != "" {
		if len(reqs) > 0 {
			return compat.RequirementSet{}, fmt.Errorf("--profile cannot be combined with --require or --engine")
		}
		return cfg.Profile(checkProfileFlag)
	}

	if len(reqs) == 0 {
		return compat.RequirementSet{}, fmt.Errorf("no requirements given: use --require, --engine, or --profile")
	}

	return compat.RequirementSet{Requirements: reqs}, nil
}

// parseRequireSpec parses one "engine:min[:max]" requirement spec.
//
// The min segment may be empty to express a max-only requirement, e.g.
// "safari::15".
//
// Parameters:
//   - spec: The raw flag value
//
// Returns:
//   - compat.Requirement: The parsed requirement
//   - error: Returns an error for blank engines or too many segments
func parseRequireSpec(spec string) (compat.Requirement, error) {
	parts := strings.Split(spec, ":")
	if len(parts) > 3 {
		return compat.Requirement{}, fmt.Errorf("invalid requirement %q: expected engine:min[:max]", spec)
	}

	req := compat.Requirement{Engine: strings.TrimSpace(parts[0])}
	if req.Engine == "" {
		return compat.Requirement{}, fmt.Errorf("invalid requirement %q: engine name is empty", spec)
	}
	if len(parts) > 1 {
		req.MinVersion = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		req.MaxVersion = strings.TrimSpace(parts[2])
	}
	return req, nil
}

// manifestPath resolves the manifest path from the argument, config, and
// working directory, in that order of precedence.
func manifestPath(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	if cfg.Manifest != "" {
		if filepath.IsAbs(cfg.Manifest) {
			return cfg.Manifest
		}
		return filepath.Join(cfg.WorkingDir, cfg.Manifest)
	}
	return cfg.WorkingDir
}

// buildCheckReport pairs requirements with their verdicts into a report.
func buildCheckReport(m *manifest.Manifest, path string, set compat.RequirementSet, verdicts []compat.Verdict, compatible bool) *output.CheckReport {
	source := m.Source
	if source == "" {
		source = path
	}

	report := &output.CheckReport{
		Package:    m.Name,
		Manifest:   source,
		Compatible: compatible,
		Results:    make([]output.CheckResult, 0, len(verdicts)),
	}
	for i, v := range verdicts {
		res := output.CheckResult{
			Engine:    v.Engine,
			Satisfied: v.Satisfied,
			Evidence:  string(v.Evidence),
			Detail:    v.Detail,
		}
		if i < len(set.Requirements) {
			res.Min = set.Requirements[i].MinVersion
			res.Max = set.Requirements[i].MaxVersion
		}
		report.Results = append(report.Results, res)
	}
	return report
}
