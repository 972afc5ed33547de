package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// CheckResult captures the outcome of one requirement evaluation.
//
// Fields:
//   - Engine: The engine or browser family name that was checked
//   - Min: The minimum version bound that was requested, empty when unbounded
//   - Max: The maximum version bound that was requested, empty when unbounded
//   - Satisfied: Whether the declared support satisfied the bounds
//   - Evidence: The declaration source that decided the outcome
//   - Detail: Human-readable explanation of the outcome
type CheckResult struct {
	Engine    string `json:"engine"`
	Min       string `json:"min,omitempty"`
	Max       string `json:"max,omitempty"`
	Satisfied bool   `json:"satisfied"`
	Evidence  string `json:"evidence"`
	Detail    string `json:"detail,omitempty"`
}

// CheckReport is the full result of a compatibility check run.
//
// Fields:
//   - Package: The package name from the manifest, if declared
//   - Manifest: The path of the manifest that was checked
//   - Compatible: Whether every requirement was satisfied
//   - Results: Per-requirement outcomes in requirement order
type CheckReport struct {
	Package    string        `json:"package,omitempty"`
	Manifest   string        `json:"manifest"`
	Compatible bool          `json:"compatible"`
	Results    []CheckResult `json:"results"`
}

// FamilyTargets holds the resolved versions for one browser family.
//
// Fields:
//   - Family: The browserslist family identifier
//   - Versions: Matched version tokens, newest first
type FamilyTargets struct {
	Family   string   `json:"family"`
	Versions []string `json:"versions"`
}

// TargetsReport is the full result of a browser target resolution run.
//
// Fields:
//   - Queries: The browserslist queries that were resolved
//   - Families: Resolved families in dataset order
type TargetsReport struct {
	Queries  []string        `json:"queries"`
	Families []FamilyTargets `json:"families"`
}

// WriteCheckReport renders a check report to a writer in the given format.
//
// The table format prints one row per requirement with a trailing summary
// line. The JSON format prints the report as an indented document.
//
// Parameters:
//   - w: The destination writer
//   - format: The rendering mode
//   - report: The report to render
//
// Returns:
//   - error: Error when encoding or the format is unsupported
func WriteCheckReport(w io.Writer, format Format, report *CheckReport) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatTable:
		table := NewTable().
			AddColumn("ENGINE").
			AddColumn("MIN").
			AddColumn("MAX").
			AddColumn("STATUS").
			AddColumn("EVIDENCE").
			AddColumn("DETAIL")
		for _, res := range report.Results {
			table.UpdateWidths(res.Engine, res.Min, res.Max, statusLabel(res.Satisfied), res.Evidence, res.Detail)
		}
		table.FprintHeader(w)
		for _, res := range report.Results {
			fmt.Fprintln(w, table.FormatRow(res.Engine, res.Min, res.Max, statusLabel(res.Satisfied), res.Evidence, res.Detail))
		}
		fmt.Fprintln(w)
		if report.Compatible {
			fmt.Fprintf(w, "%s is compatible\n", report.Manifest)
		} else {
			fmt.Fprintf(w, "%s is NOT compatible\n", report.Manifest)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// WriteTargetsReport renders a targets report to a writer in the given format.
//
// Parameters:
//   - w: The destination writer
//   - format: The rendering mode
//   - report: The report to render
//
// Returns:
//   - error: Error when encoding or the format is unsupported
func WriteTargetsReport(w io.Writer, format Format, report *TargetsReport) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatTable:
		table := NewTable().
			AddColumn("FAMILY").
			AddColumn("VERSIONS")
		rows := make([][2]string, 0, len(report.Families))
		for _, fam := range report.Families {
			versions := joinVersions(fam.Versions)
			table.UpdateWidths(fam.Family, versions)
			rows = append(rows, [2]string{fam.Family, versions})
		}
		table.FprintHeader(w)
		for _, row := range rows {
			fmt.Fprintln(w, table.FormatRow(row[0], row[1]))
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func statusLabel(satisfied bool) string {
	if satisfied {
		return "OK"
	}
	return "FAIL"
}

func joinVersions(versions []string) string {
	out := ""
	for i, v := range versions {
		if i > 0 {
			out += ", "
		}
		out += v
	}
	return out
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
