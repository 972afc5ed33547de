package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/ajxudir/pkgsupport/pkg/browsers"
	"github.com/ajxudir/pkgsupport/pkg/errors"
	"github.com/ajxudir/pkgsupport/pkg/manifest"
	"github.com/ajxudir/pkgsupport/pkg/output"
	"github.com/ajxudir/pkgsupport/pkg/verbose"
	"github.com/spf13/cobra"
)

var (
	targetsDirFlag    string
	targetsConfigFlag string
	targetsOutputFlag string
	targetsQueryFlag  []string
)

var newResolverFunc = func() (browsers.Resolver, error) {
	return browsers.NewDataResolver()
}

var targetsCmd = &cobra.Command{
	Use:   "targets [manifest]",
	Short: "Resolve browserslist queries to concrete browser versions",
	Long: `Resolve browserslist queries to the matching browser family versions.

Queries come from repeated --query flags, from the manifest's browserslist
field, or from the config's default queries, in that order of precedence.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTargets,
}

func init() {
	targetsCmd.Flags().StringVarP(&targetsDirFlag, "directory", "d", ".", "Directory containing the manifest")
	targetsCmd.Flags().StringVarP(&targetsConfigFlag, "config", "c", "", "Config file path")
	targetsCmd.Flags().StringVarP(&targetsOutputFlag, "output", "o", "", "Output format: json (default: table)")
	targetsCmd.Flags().StringArrayVarP(&targetsQueryFlag, "query", "Q", nil, "Browserslist query to resolve (repeatable)")
}

// runTargets executes the targets command.
//
// It performs the following operations:
//   - Determines the query list from flags, manifest, or config defaults
//   - Resolves the queries against the bundled browser dataset
//   - Prints the matched versions grouped by family
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Optional manifest path
//
// Returns:
//   - error: ExitError with code 2 (failure) or 3 (config error)
func runTargets(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigFunc(targetsConfigFlag, targetsDirFlag)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}

	format, err := output.ParseFormat(targetsOutputFlag)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}

	field, err := targetsField(args, cfg.DefaultQueries)
	if err != nil {
		return err
	}

	resolver, err := newResolverFunc()
	if err != nil {
		return errors.NewExitError(errors.ExitFailure, err)
	}

	byFamily, err := browsers.ResolveTargets(field, resolver)
	if err != nil {
		return errors.NewExitError(errors.ExitFailure, fmt.Errorf("failed to resolve targets: %w", err))
	}

	report := &output.TargetsReport{Queries: field.Queries}
	families := make([]string, 0, len(byFamily))
	for name := range byFamily {
		families = append(families, name)
	}
	sort.Strings(families)
	for _, name := range families {
		report.Families = append(report.Families, output.FamilyTargets{
			Family:   name,
			Versions: byFamily[name],
		})
	}

	return output.WriteTargetsReport(os.Stdout, format, report)
}

// targetsField determines the browserslist field to resolve.
//
// Explicit --query flags win. Otherwise the manifest's field is used when a
// manifest path was given or one exists in the working directory. With no
// usable manifest field, the config's default queries apply.
//
// Parameters:
//   - args: Optional manifest path argument
//   - defaults: Default queries from the configuration
//
// Returns:
//   - manifest.BrowserslistField: The field to resolve
//   - error: ExitError when an explicitly named manifest cannot be loaded
func targetsField(args []string, defaults []string) (manifest.BrowserslistField, error) {
	if len(targetsQueryFlag) > 0 {
		return manifest.BrowserslistField{Kind: manifest.BrowserslistList, Queries: targetsQueryFlag}, nil
	}

	path := targetsDirFlag
	explicit := len(args) > 0
	if explicit {
		path = args[0]
	}

	m, err := loadManifestFunc(path)
	if err != nil {
		if explicit {
			return manifest.BrowserslistField{}, errors.NewExitError(errors.ExitFailure, fmt.Errorf("failed to load manifest: %w", err))
		}
		verbose.Debugf("No manifest in %s, using default queries", path)
		return manifest.BrowserslistField{Kind: manifest.BrowserslistList, Queries: defaults}, nil
	}

	if m.Browserslist.Kind == manifest.BrowserslistAbsent {
		verbose.WithDocRef("browsers", "Manifest declares no browserslist field, using default queries")
		return manifest.BrowserslistField{Kind: manifest.BrowserslistList, Queries: defaults}, nil
	}
	return m.Browserslist, nil
}
