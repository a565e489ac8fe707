package titlegen

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestIsLikelyGameTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"Elden Ring", true},
		{"Hades", true},
		{"The Witcher 3", true},
		{"cozy farming games", false},
		{"games like Stardew Valley", false},
		{"relaxing puzzle", false},
		{"open world RPG with great story", false},
		{"something with a spooky atmosphere", false},
		// Four words without preference vocabulary: treated as a preference.
		{"The Legend of Zelda Breath", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsLikelyGameTitle(tt.input))
		})
	}
}
