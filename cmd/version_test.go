package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRunVersion tests the version command output.
//
// It verifies:
//   - The Go version and semantic version are printed
//   - Build metadata appears when set
func TestRunVersion(t *testing.T) {
	oldVersion := Version
	oldBuildTime := BuildTime
	oldGitCommit := GitCommit
	defer func() {
		Version = oldVersion
		BuildTime = oldBuildTime
		GitCommit = oldGitCommit
	}()

	Version = "1.2.3"
	BuildTime = "2026-01-02"
	GitCommit = "abc1234"

	out := captureStdout(t, func() {
		runVersion(versionCmd, nil)
	})

	assert.Contains(t, out, "Go:")
	assert.Contains(t, out, "Date:    2026-01-02")
	assert.Contains(t, out, "Git:     abc1234")
	assert.Contains(t, out, "Version: 1.2.3")
}

// TestVersionCommandViaExecute tests the version subcommand end to end.
//
// It verifies:
//   - The version subcommand runs without error
func TestVersionCommandViaExecute(t *testing.T) {
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	out := captureStdout(t, func() {
		assert.NoError(t, ExecuteTest())
	})

	assert.Contains(t, out, "Version:")
}
