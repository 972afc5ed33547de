package browsers

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/pkgsupport/pkg/manifest"
	"github.com/ajxudir/pkgsupport/pkg/warnings"
)

// scriptedResolver returns canned entries and records how it was called.
type scriptedResolver struct {
	entries []string
	err     error
	calls   [][]string
}

func (s *scriptedResolver) Resolve(queries []string) ([]string, error) {
	s.calls = append(s.calls, queries)
	return s.entries, s.err
}

func TestResolveTargetsAbsentField(t *testing.T) {
	r := &scriptedResolver{}

	targets, err := ResolveTargets(manifest.BrowserslistField{Kind: manifest.BrowserslistAbsent}, r)
	require.NoError(t, err)

	assert.Empty(t, targets)
	assert.Empty(t, r.calls, "resolver must not be consulted for an absent field")
}

func TestResolveTargetsEmptyQueryList(t *testing.T) {
	r := &scriptedResolver{}

	field := manifest.BrowserslistField{Kind: manifest.BrowserslistList, Queries: []string{"", "  "}}
	targets, err := ResolveTargets(field, r)
	require.NoError(t, err)

	assert.Empty(t, targets)
	assert.Empty(t, r.calls)
}

func TestResolveTargetsSingleQuery(t *testing.T) {
	r := &scriptedResolver{entries: []string{"chrome 139", "chrome 138"}}

	field := manifest.BrowserslistField{Kind: manifest.BrowserslistSingle, Queries: []string{"last 2 chrome versions"}}
	targets, err := ResolveTargets(field, r)
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{"chrome": {"139", "138"}}, targets)
	require.Len(t, r.calls, 1)
	assert.Equal(t, []string{"last 2 chrome versions"}, r.calls[0])
}

func TestResolveTargetsFoldsFamilies(t *testing.T) {
	r := &scriptedResolver{entries: []string{
		"safari TP",
		"safari 18.6",
		"ios_saf 18.3-18.5",
		"op_mini all",
	}}

	field := manifest.BrowserslistField{Kind: manifest.BrowserslistList, Queries: []string{"defaults"}}
	targets, err := ResolveTargets(field, r)
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{
		"safari":  {"TP", "18.6"},
		"ios_saf": {"18.3-18.5"},
		"op_mini": {"all"},
	}, targets)
}

func TestResolveTargetsSkipsMalformedEntries(t *testing.T) {
	var buf bytes.Buffer
	restore := warnings.SetWarningWriter(&buf)
	defer restore()

	r := &scriptedResolver{entries: []string{"chrome 139", "garbage", "edge 139"}}

	field := manifest.BrowserslistField{Kind: manifest.BrowserslistList, Queries: []string{"defaults"}}
	targets, err := ResolveTargets(field, r)
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{"chrome": {"139"}, "edge": {"139"}}, targets)
	assert.Contains(t, buf.String(), `"garbage"`)
}

func TestResolveTargetsInvalidShape(t *testing.T) {
	r := &scriptedResolver{}

	field := manifest.BrowserslistField{
		Kind:    manifest.BrowserslistInvalid,
		Invalid: "environment-keyed object with keys [production development]",
	}

	_, err := ResolveTargets(field, r)
	require.Error(t, err)
	assert.ErrorIs(t, err, manifest.ErrBrowserslistFormat)
	assert.Empty(t, r.calls, "resolver must not see a rejected shape")
}

func TestResolveTargetsResolverError(t *testing.T) {
	r := &scriptedResolver{err: errors.New("unknown browserslist query")}

	field := manifest.BrowserslistField{Kind: manifest.BrowserslistSingle, Queries: []string{"bogus"}}
	_, err := ResolveTargets(field, r)
	assert.Error(t, err)
}

func TestResolveTargetsVersionWithSpaces(t *testing.T) {
	// Only the first space separates family from version; the remainder is
	// the token verbatim.
	r := &scriptedResolver{entries: []string{"weird 1.0 beta"}}

	field := manifest.BrowserslistField{Kind: manifest.BrowserslistSingle, Queries: []string{"weird"}}
	targets, err := ResolveTargets(field, r)
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{"weird": {"1.0 beta"}}, targets)
}
