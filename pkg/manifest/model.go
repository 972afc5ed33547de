// Package manifest models the package.json fields relevant to platform
// support: the engines map and the browserslist field.
//
// The browserslist field is heterogeneous JSON (absent, a single query
// string, or a list of query strings); it is dispatched into a tagged union
// exactly once at parse time so downstream code never re-inspects raw JSON
// shapes. The environment-keyed object form ({"production": [...]}) is a
// recognized-but-rejected shape.
package manifest

import (
	"errors"
	"fmt"
)

// ErrBrowserslistFormat is the sentinel for unsupported browserslist shapes.
// Use errors.Is to detect it regardless of wrapping.
var ErrBrowserslistFormat = errors.New("unsupported browserslist format")

// BrowserslistKind enumerates the recognized shapes of the browserslist field.
type BrowserslistKind int

const (
	// BrowserslistAbsent means the manifest declares no browserslist field.
	BrowserslistAbsent BrowserslistKind = iota

	// BrowserslistSingle means the field was a single query string.
	BrowserslistSingle

	// BrowserslistList means the field was an ordered list of query strings.
	BrowserslistList

	// BrowserslistInvalid means the field had an unsupported shape
	// (environment-keyed object, number, boolean, or a list with
	// non-string members). Resolving an invalid field is a format error.
	BrowserslistInvalid
)

// BrowserslistField is the tagged union holding a dispatched browserslist value.
//
// Fields:
//   - Kind: Which shape the raw JSON value had
//   - Queries: The normalized query list (empty unless Kind is Single or List)
//   - Invalid: A description of the offending value when Kind is BrowserslistInvalid
type BrowserslistField struct {
	Kind    BrowserslistKind
	Queries []string
	Invalid string
}

// FormatError returns the format error for an invalid field, or nil.
//
// Returns:
//   - error: An error wrapping ErrBrowserslistFormat that identifies the
//     unsupported shape, or nil when the field's shape is supported
func (f BrowserslistField) FormatError() error {
	if f.Kind != BrowserslistInvalid {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrBrowserslistFormat, f.Invalid)
}

// Manifest holds the platform-support declarations of one package.json.
//
// Fields:
//   - Name: The package name, informational only
//   - Version: The package version, informational only
//   - Engines: Declared engine ranges keyed by platform name (e.g., "node" -> ">=18")
//   - EngineOrder: Engine names in manifest declaration order
//   - Browserslist: The dispatched browserslist field
//   - Source: The file the manifest was read from, empty when parsed from memory
type Manifest struct {
	Name         string
	Version      string
	Engines      map[string]string
	EngineOrder  []string
	Browserslist BrowserslistField
	Source       string
}

// EngineRange looks up the declared range for a platform name.
//
// Parameters:
//   - engine: The platform name (e.g., "node", "chrome")
//
// Returns:
//   - string: The declared range expression
//   - bool: false when the manifest declares nothing for that platform
func (m *Manifest) EngineRange(engine string) (string, bool) {
	r, ok := m.Engines[engine]
	return r, ok
}
