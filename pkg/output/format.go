package output

import "fmt"

// Format identifies an output rendering mode.
type Format string

const (
	// FormatTable renders results as an aligned plain-text table.
	FormatTable Format = "table"
	// FormatJSON renders results as indented JSON.
	FormatJSON Format = "json"
)

// ParseFormat converts a format name into a Format value.
//
// An empty name selects the table format. Names are matched exactly.
//
// Parameters:
//   - name: The format name from a flag or config value
//
// Returns:
//   - Format: The parsed format
//   - error: Error when the name matches no known format
func ParseFormat(name string) (Format, error) {
	switch name {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (supported: table, json)", name)
	}
}
