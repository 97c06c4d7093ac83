// internal/utils/slug_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "Summer Drop", "summer-drop"},
		{"diacritics stripped", "Café Crème", "cafe-creme"},
		{"punctuation collapsed", "New!! Arrivals -- 2025", "new-arrivals-2025"},
		{"leading and trailing junk trimmed", "  --Hot Picks--  ", "hot-picks"},
		{"already a slug", "hot-picks", "hot-picks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Café Crème", "Summer Drop 2025", "ÀÉÎÕÜ edition"}
	for _, input := range inputs {
		once := Slugify(input)
		assert.Equal(t, once, Slugify(once))
	}
}
