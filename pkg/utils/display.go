// Package utils provides small shared helpers for display formatting.
package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DisplayWidth returns the display width of a string in terminal columns.
//
// It uses Unicode-aware width calculation so that wide characters (CJK) and
// combining marks are measured correctly.
//
// Parameters:
//   - val: The string to measure
//
// Returns:
//   - int: The display width in terminal columns
func DisplayWidth(val string) int {
	return runewidth.StringWidth(val)
}

// ToWidth pads a string with spaces to the requested display width.
//
// Strings already at or beyond the requested width are returned unchanged;
// no truncation is performed.
//
// Parameters:
//   - val: The string to pad
//   - width: The target display width in terminal columns
//
// Returns:
//   - string: The padded string
func ToWidth(val string, width int) string {
	current := DisplayWidth(val)
	if current >= width {
		return val
	}
	return val + strings.Repeat(" ", width-current)
}

// Max returns the largest of the provided integers.
//
// Parameters:
//   - values: The integers to compare; at least one should be provided
//
// Returns:
//   - int: The largest value, or 0 when called with no arguments
func Max(values ...int) int {
	max := 0
	for i, v := range values {
		if i == 0 || v > max {
			max = v
		}
	}
	return max
}

// TrimAndSplit splits a string on a separator and trims whitespace from each part.
//
// Empty parts after trimming are dropped.
//
// Parameters:
//   - s: The string to split
//   - sep: The separator to split on
//
// Returns:
//   - []string: The trimmed, non-empty parts; nil when none remain
func TrimAndSplit(s string, sep string) []string {
	var parts []string
	for _, part := range strings.Split(s, sep) {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
