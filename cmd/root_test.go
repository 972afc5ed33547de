package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/ajxudir/pkgsupport/pkg/errors"
	"github.com/ajxudir/pkgsupport/pkg/verbose"
	"github.com/stretchr/testify/assert"
)

// TestPersistentPreRunVerbose tests the behavior of PersistentPreRun with verbose flag.
//
// It verifies:
//   - Verbose mode is enabled when verboseFlag is set to true
func TestPersistentPreRunVerbose(t *testing.T) {
	oldVerbose := verboseFlag
	defer func() {
		verboseFlag = oldVerbose
		verbose.Disable()
	}()

	verboseFlag = true
	rootCmd.PersistentPreRun(rootCmd, []string{})

	assert.True(t, verbose.IsEnabled())
}

// TestPersistentPreRunNotVerbose tests the behavior of PersistentPreRun without verbose flag.
//
// It verifies:
//   - Verbose mode is not enabled when verboseFlag is false
func TestPersistentPreRunNotVerbose(t *testing.T) {
	oldVerbose := verboseFlag
	defer func() {
		verboseFlag = oldVerbose
		verbose.Disable()
	}()

	verboseFlag = false
	rootCmd.PersistentPreRun(rootCmd, []string{})

	assert.False(t, verbose.IsEnabled())
}

// TestExecuteWithExitCodes tests the behavior of Execute with different exit codes.
//
// It verifies:
//   - Successful commands do not call exitFunc
//   - Errors call exitFunc with the mapped exit code
func TestExecuteWithExitCodes(t *testing.T) {
	oldExit := exitFunc
	defer func() { exitFunc = oldExit }()

	t.Run("success does not exit", func(t *testing.T) {
		exitCode := -1
		exitFunc = func(code int) { exitCode = code }

		rootCmd.SetArgs([]string{"--help"})
		Execute()

		assert.Equal(t, -1, exitCode)
		rootCmd.SetArgs(nil)
	})

	t.Run("unknown subcommand exits with failure code", func(t *testing.T) {
		exitCode := -1
		exitFunc = func(code int) { exitCode = code }

		rootCmd.SetArgs([]string{"nonexistent-subcommand-xyz"})
		Execute()

		assert.Equal(t, errors.ExitFailure, exitCode)
		rootCmd.SetArgs(nil)
	})
}

// TestRootVersionFlag tests the behavior of the root command with the version flag.
//
// It verifies:
//   - The -v flag prints version information instead of help
func TestRootVersionFlag(t *testing.T) {
	oldVersion := versionFlag
	defer func() { versionFlag = oldVersion }()

	versionFlag = true
	out := captureStdout(t, func() {
		rootCmd.Run(rootCmd, []string{})
	})

	assert.Contains(t, out, "Version:")
}

// captureStdout is a test helper that captures stdout during function execution.
//
// Parameters:
//   - t: The testing instance
//   - fn: The function to execute while capturing stdout
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	_ = r.Close()

	return buf.String()
}
