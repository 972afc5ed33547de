package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{name: "empty defaults to table", input: "", want: FormatTable},
		{name: "table", input: "table", want: FormatTable},
		{name: "json", input: "json", want: FormatJSON},
		{name: "unknown", input: "xml", wantErr: true},
		{name: "uppercase is rejected", input: "JSON", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableFormatting(t *testing.T) {
	table := NewTable().AddColumn("NAME").AddColumn("VALUE")
	table.UpdateWidths("longer-name", "v")

	assert.Equal(t, "NAME         VALUE", table.HeaderRow())
	assert.Equal(t, "-----------  -----", table.SeparatorRow())
	assert.Equal(t, "short        v", table.FormatRow("short", "v"))
	assert.Equal(t, "longer-name", table.FormatRow("longer-name"))
}

func TestTableUnicodeWidths(t *testing.T) {
	table := NewTable().AddColumn("NAME").AddColumn("OK")
	table.UpdateWidths("日本語", "x")

	// Wide runes count double, so both rows align at six cells.
	assert.Equal(t, "NAME    x", table.FormatRow("NAME", "x"))
	assert.Equal(t, "日本語  x", table.FormatRow("日本語", "x"))
}

func TestWriteCheckReportTable(t *testing.T) {
	report := &CheckReport{
		Package:    "demo",
		Manifest:   "package.json",
		Compatible: false,
		Results: []CheckResult{
			{Engine: "node", Min: "14.0.0", Satisfied: true, Evidence: "engines", Detail: "range >=12 reaches 14.0.0"},
			{Engine: "safari", Max: "15.0.0", Satisfied: false, Evidence: "browserslist", Detail: "target 18.6 exceeds 15.0.0"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCheckReport(&buf, FormatTable, report))

	out := buf.String()
	assert.Contains(t, out, "ENGINE")
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "package.json is NOT compatible")
}

func TestWriteCheckReportJSON(t *testing.T) {
	report := &CheckReport{
		Manifest:   "package.json",
		Compatible: true,
		Results: []CheckResult{
			{Engine: "node", Min: "14.0.0", Satisfied: true, Evidence: "engines"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCheckReport(&buf, FormatJSON, report))

	var decoded CheckReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.True(t, decoded.Compatible)
	require.Len(t, decoded.Results, 1)
	assert.Equal(t, "node", decoded.Results[0].Engine)
}

func TestWriteTargetsReportTable(t *testing.T) {
	report := &TargetsReport{
		Queries: []string{"defaults"},
		Families: []FamilyTargets{
			{Family: "chrome", Versions: []string{"139", "138"}},
			{Family: "safari", Versions: []string{"18.6"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTargetsReport(&buf, FormatTable, report))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "FAMILY")
	assert.Contains(t, lines[2], "139, 138")
	assert.Contains(t, lines[3], "safari")
}

func TestWriteTargetsReportJSON(t *testing.T) {
	report := &TargetsReport{
		Queries:  []string{"last 1 safari version"},
		Families: []FamilyTargets{{Family: "safari", Versions: []string{"18.6"}}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTargetsReport(&buf, FormatJSON, report))

	var decoded TargetsReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"last 1 safari version"}, decoded.Queries)
}

func TestWriteUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteCheckReport(&buf, Format("xml"), &CheckReport{}))
	assert.Error(t, WriteTargetsReport(&buf, Format("xml"), &TargetsReport{}))
}
