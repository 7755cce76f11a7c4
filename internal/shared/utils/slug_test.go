package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTypeSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple word", "Poster", "poster"},
		{"two words", "Home Decor", "home-decor"},
		{"leading and trailing spaces", "  Wall Art  ", "wall-art"},
		{"special characters stripped", "Wall Art!", "wall-art"},
		{"whitespace run collapses to single dash", "home   decor", "home-decor"},
		{"existing dashes kept", "t-shirt", "t-shirt"},
		{"digits kept", "Poster 2024", "poster-2024"},
		{"unicode stripped", "café décor", "caf-dcor"},
		{"only special characters", "!!!", ""},
		{"empty input", "", ""},
		{"tabs and newlines collapse", "home\t \ndecor", "home-decor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTypeSlug(tt.input))
		})
	}
}
