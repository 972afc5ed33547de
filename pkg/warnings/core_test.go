package warnings

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarnfWritesToConfiguredWriter(t *testing.T) {
	var buf bytes.Buffer
	restore := SetWarningWriter(&buf)
	defer restore()

	Warnf("skipping token %q: %s\n", "all", "not a version")
	assert.Contains(t, buf.String(), `skipping token "all"`)
}

func TestSetWarningWriterRestore(t *testing.T) {
	var first, second bytes.Buffer

	restoreFirst := SetWarningWriter(&first)
	restoreSecond := SetWarningWriter(&second)

	Warnf("goes to second")
	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), "goes to second")

	restoreSecond()
	Warnf("goes to first")
	assert.Contains(t, first.String(), "goes to first")

	restoreFirst()
}

func TestSetWarningWriterNilDefaultsToStderr(t *testing.T) {
	restore := SetWarningWriter(nil)
	defer restore()

	assert.Equal(t, os.Stderr, WarningWriter())
}
