package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		name     string
		val      string
		expected int
	}{
		{"empty", "", 0},
		{"ascii", "chrome", 6},
		{"version token", "17.5-17.6", 9},
		{"wide characters", "日本語", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DisplayWidth(tt.val))
		})
	}
}

func TestToWidth(t *testing.T) {
	assert.Equal(t, "node  ", ToWidth("node", 6))
	assert.Equal(t, "safari", ToWidth("safari", 4))
	assert.Equal(t, "", ToWidth("", 0))
}

func TestMax(t *testing.T) {
	assert.Equal(t, 0, Max())
	assert.Equal(t, 3, Max(3))
	assert.Equal(t, 9, Max(1, 9, 4))
	assert.Equal(t, -1, Max(-5, -1))
}

func TestTrimAndSplit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sep      string
		expected []string
	}{
		{"simple", "a,b,c", ",", []string{"a", "b", "c"}},
		{"with spaces", " chrome >= 120 , defaults ", ",", []string{"chrome >= 120", "defaults"}},
		{"empty parts dropped", "a,,b", ",", []string{"a", "b"}},
		{"all empty", " , ", ",", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrimAndSplit(tt.input, tt.sep))
		})
	}
}
