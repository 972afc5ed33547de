package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/pkgsupport/pkg/warnings"
)

func TestParseEngines(t *testing.T) {
	content := []byte(`{
		"name": "demo-app",
		"version": "2.1.0",
		"engines": {"node": ">=18", "npm": ">=9"}
	}`)

	m, err := Parse(content)
	require.NoError(t, err)

	assert.Equal(t, "demo-app", m.Name)
	assert.Equal(t, "2.1.0", m.Version)
	assert.Equal(t, []string{"node", "npm"}, m.EngineOrder)

	r, ok := m.EngineRange("node")
	assert.True(t, ok)
	assert.Equal(t, ">=18", r)

	_, ok = m.EngineRange("deno")
	assert.False(t, ok)
}

func TestParseEnginesSkipsNonStringValues(t *testing.T) {
	var buf bytes.Buffer
	restore := warnings.SetWarningWriter(&buf)
	defer restore()

	m, err := Parse([]byte(`{"engines": {"node": ">=18", "npm": 9}}`))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"node": ">=18"}, m.Engines)
	assert.Contains(t, buf.String(), `"npm"`)
}

func TestParseBrowserslistShapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		kind    BrowserslistKind
		queries []string
	}{
		{"absent", `{}`, BrowserslistAbsent, nil},
		{"single string", `{"browserslist": "defaults"}`, BrowserslistSingle, []string{"defaults"}},
		{
			"list of strings",
			`{"browserslist": ["chrome >= 120", "safari >= 16"]}`,
			BrowserslistList,
			[]string{"chrome >= 120", "safari >= 16"},
		},
		{"empty list", `{"browserslist": []}`, BrowserslistList, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, m.Browserslist.Kind)
			assert.Equal(t, tt.queries, m.Browserslist.Queries)
			assert.NoError(t, m.Browserslist.FormatError())
		})
	}
}

func TestParseBrowserslistRejectedShapes(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{
			"environment-keyed record",
			`{"browserslist": {"production": ["defaults"], "development": ["last 1 chrome version"]}}`,
			"environment-keyed object",
		},
		{
			"list with non-string member",
			`{"browserslist": ["chrome >= 120", 42]}`,
			"non-string entry",
		},
		{
			"number",
			`{"browserslist": 7}`,
			"unexpected value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.content))
			require.NoError(t, err)

			assert.Equal(t, BrowserslistInvalid, m.Browserslist.Kind)

			fmtErr := m.Browserslist.FormatError()
			require.Error(t, fmtErr)
			assert.ErrorIs(t, fmtErr, ErrBrowserslistFormat)
			assert.Contains(t, fmtErr.Error(), tt.contains)
		})
	}
}

func TestParseEnvironmentKeyedRecordNamesKeys(t *testing.T) {
	m, err := Parse([]byte(`{"browserslist": {"production": [], "development": []}}`))
	require.NoError(t, err)

	fmtErr := m.Browserslist.FormatError()
	require.Error(t, fmtErr)
	assert.Contains(t, fmtErr.Error(), "production")
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "on-disk", "engines": {"node": ">=16"}}`), 0o644))

	t.Run("file path", func(t *testing.T) {
		m, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "on-disk", m.Name)
		assert.Equal(t, path, m.Source)
	})

	t.Run("directory path", func(t *testing.T) {
		m, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "on-disk", m.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope", "package.json"))
		assert.Error(t, err)
	})
}
