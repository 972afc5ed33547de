package verbose

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnableDisable(t *testing.T) {
	defer Disable()

	Enable()
	assert.True(t, IsEnabled())

	Disable()
	assert.False(t, IsEnabled())
}

func TestPrintfWhenDisabled(t *testing.T) {
	defer Disable()
	defer SetWriter(nil)

	var buf bytes.Buffer
	SetWriter(&buf)
	Disable()

	Printf("hidden %s", "message")
	assert.Empty(t, buf.String())
}

func TestPrintfWhenEnabled(t *testing.T) {
	defer Disable()

	var buf bytes.Buffer
	SetWriter(&buf)
	Enable()

	Printf("checking %s", "node")
	assert.Contains(t, buf.String(), "[DEBUG] checking node")
}

func TestTracefPrefix(t *testing.T) {
	defer Disable()

	var buf bytes.Buffer
	SetWriter(&buf)
	Enable()

	Tracef("token %q", "17.5-17.6")
	assert.Contains(t, buf.String(), "[TRACE] token \"17.5-17.6\"")
}

func TestSetWriterNilKeepsPrevious(t *testing.T) {
	defer Disable()

	var buf bytes.Buffer
	SetWriter(&buf)
	Enable()

	SetWriter(nil)
	Info("still here")
	assert.Contains(t, buf.String(), "still here")
}

func TestWithDocRef(t *testing.T) {
	defer Disable()

	var buf bytes.Buffer
	SetWriter(&buf)

	t.Run("disabled produces nothing", func(t *testing.T) {
		buf.Reset()
		Disable()
		WithDocRef("config", "no config found")
		assert.Empty(t, buf.String())
	})

	t.Run("known topic appends reference", func(t *testing.T) {
		buf.Reset()
		Enable()
		WithDocRef("browsers", "unknown query")
		out := buf.String()
		assert.Contains(t, out, "unknown query")
		assert.Contains(t, out, "docs/browsers.md")
	})

	t.Run("unknown topic prints message only", func(t *testing.T) {
		buf.Reset()
		Enable()
		WithDocRef("nonexistent", "just the message")
		out := buf.String()
		assert.Contains(t, out, "just the message")
		assert.NotContains(t, out, "docs/")
	})
}

func TestConfigLoaded(t *testing.T) {
	defer Disable()

	var buf bytes.Buffer
	SetWriter(&buf)
	Enable()

	ConfigLoaded(".pkgsupport.yml", []string{"modern", "legacy"})
	out := buf.String()
	assert.Contains(t, out, ".pkgsupport.yml")
	assert.Contains(t, out, "modern, legacy")
}
