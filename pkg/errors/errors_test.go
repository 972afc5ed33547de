package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitErrorError(t *testing.T) {
	tests := []struct {
		name     string
		exitErr  *ExitError
		expected string
	}{
		{
			name:     "message takes precedence",
			exitErr:  &ExitError{Code: ExitFailure, Message: "boom", Err: errors.New("inner")},
			expected: "boom",
		},
		{
			name:     "falls back to wrapped error",
			exitErr:  &ExitError{Code: ExitFailure, Err: errors.New("inner")},
			expected: "inner",
		},
		{
			name:     "falls back to code",
			exitErr:  &ExitError{Code: ExitConfigError},
			expected: "exit code 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.exitErr.Error())
		})
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewExitError(ExitFailure, inner)

	assert.True(t, errors.Is(err, inner))
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitCompatible},
		{"exit error incompatible", NewExitErrorf(ExitIncompatible, "requirement not met"), ExitIncompatible},
		{"exit error config", NewExitError(ExitConfigError, errors.New("bad yaml")), ExitConfigError},
		{"wrapped exit error", fmt.Errorf("outer: %w", NewExitErrorf(ExitConfigError, "bad")), ExitConfigError},
		{"plain error", errors.New("anything"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetExitCode(tt.err))
		})
	}
}

func TestIsExitError(t *testing.T) {
	exitErr, ok := IsExitError(NewExitErrorf(ExitIncompatible, "nope"))
	assert.True(t, ok)
	assert.Equal(t, ExitIncompatible, exitErr.Code)

	_, ok = IsExitError(errors.New("plain"))
	assert.False(t, ok)
}
