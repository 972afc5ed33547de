package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/orderedmap"

	"github.com/ajxudir/pkgsupport/pkg/verbose"
	"github.com/ajxudir/pkgsupport/pkg/warnings"
)

// DefaultFileName is the manifest file name looked up when a directory is given.
const DefaultFileName = "package.json"

// Parse parses package.json content into a Manifest.
//
// It performs the following operations:
//   - Unmarshals the JSON content into an ordered map to preserve field order
//   - Extracts the name and version strings when present
//   - Extracts the engines map, skipping non-string range values with a warning
//   - Dispatches the browserslist field into its tagged union
//
// Parameters:
//   - content: The raw bytes of the package.json file
//
// Returns:
//   - *Manifest: The parsed manifest
//   - error: Returns an error if the JSON is invalid; returns nil on successful parse
func Parse(content []byte) (*Manifest, error) {
	data := orderedmap.New()
	if err := json.Unmarshal(content, data); err != nil {
		return nil, fmt.Errorf("invalid manifest JSON: %w", err)
	}

	m := &Manifest{Engines: make(map[string]string)}

	if raw, ok := data.Get("name"); ok {
		if s, ok := raw.(string); ok {
			m.Name = s
		}
	}
	if raw, ok := data.Get("version"); ok {
		if s, ok := raw.(string); ok {
			m.Version = s
		}
	}

	parseEngines(data, m)
	m.Browserslist = dispatchBrowserslist(data)

	verbose.Debugf("Parsed manifest %q: %d engine entries, browserslist kind %d",
		m.Name, len(m.Engines), m.Browserslist.Kind)

	return m, nil
}

// Load reads and parses a package.json from disk.
//
// It performs the following operations:
//   - Appends package.json when the path names a directory
//   - Reads the file content
//   - Delegates to Parse and records the source path
//
// Parameters:
//   - path: A package.json path or a directory containing one
//
// Returns:
//   - *Manifest: The parsed manifest with Source set
//   - error: Returns an error when the file cannot be read or parsed
func Load(path string) (*Manifest, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFileName)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	m.Source = path
	return m, nil
}

// parseEngines extracts the engines field into the manifest.
//
// The engines value may decode as an ordered map or a plain map depending on
// nesting; both are handled. Non-string range values are skipped with a
// warning rather than failing the parse.
//
// Parameters:
//   - data: The decoded manifest document
//   - m: The manifest to populate
func parseEngines(data *orderedmap.OrderedMap, m *Manifest) {
	raw, ok := data.Get("engines")
	if !ok {
		return
	}

	set := func(name string, value interface{}) {
		s, ok := value.(string)
		if !ok {
			warnings.Warnf("ignoring non-string engines entry %q\n", name)
			return
		}
		if _, exists := m.Engines[name]; !exists {
			m.EngineOrder = append(m.EngineOrder, name)
		}
		m.Engines[name] = s
	}

	switch v := raw.(type) {
	case orderedmap.OrderedMap:
		for _, key := range v.Keys() {
			value, _ := v.Get(key)
			set(key, value)
		}
	case map[string]interface{}:
		for key, value := range v {
			set(key, value)
		}
	default:
		warnings.Warnf("ignoring engines field: expected an object, got %T\n", raw)
	}
}

// dispatchBrowserslist resolves the browserslist field's JSON shape into the
// tagged union.
//
// It performs the following operations:
//   - Maps an absent field to BrowserslistAbsent
//   - Maps a string to BrowserslistSingle with one query
//   - Maps a string list to BrowserslistList, rejecting non-string members
//   - Maps the environment-keyed object form and any other shape to
//     BrowserslistInvalid with a description of the offending value
//
// Parameters:
//   - data: The decoded manifest document
//
// Returns:
//   - BrowserslistField: The dispatched union value
func dispatchBrowserslist(data *orderedmap.OrderedMap) BrowserslistField {
	raw, ok := data.Get("browserslist")
	if !ok {
		return BrowserslistField{Kind: BrowserslistAbsent}
	}

	switch v := raw.(type) {
	case string:
		return BrowserslistField{Kind: BrowserslistSingle, Queries: []string{v}}
	case []interface{}:
		queries := make([]string, 0, len(v))
		for _, entry := range v {
			s, ok := entry.(string)
			if !ok {
				return BrowserslistField{
					Kind:    BrowserslistInvalid,
					Invalid: fmt.Sprintf("list contains non-string entry %v", entry),
				}
			}
			queries = append(queries, s)
		}
		return BrowserslistField{Kind: BrowserslistList, Queries: queries}
	case orderedmap.OrderedMap:
		return BrowserslistField{
			Kind:    BrowserslistInvalid,
			Invalid: fmt.Sprintf("environment-keyed object with keys [%s]", strings.Join(v.Keys(), " ")),
		}
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		return BrowserslistField{
			Kind:    BrowserslistInvalid,
			Invalid: fmt.Sprintf("environment-keyed object with keys %v", keys),
		}
	default:
		return BrowserslistField{
			Kind:    BrowserslistInvalid,
			Invalid: fmt.Sprintf("unexpected value %v (%T)", raw, raw),
		}
	}
}
