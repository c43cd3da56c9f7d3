package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Basic normalization
		{"lowercase", "DRAGONS", "dragons"},
		{"spaces to dashes", "slow burn", "slow-burn"},
		{"underscores to dashes", "slow_burn", "slow-burn"},
		{"already normalized", "slow-burn", "slow-burn"},

		// Whitespace handling
		{"trim whitespace", "  dragons  ", "dragons"},
		{"multiple spaces", "slow   burn", "slow-burn"},
		{"tabs and spaces", "slow\t burn", "slow-burn"},

		// Punctuation
		{"apostrophe removal", "Don't Stop!", "dont-stop"},
		{"trailing punctuation", "Really?!", "really"},
		{"slashes", "A/B testing", "a-b-testing"},
		{"emoji removal", "🐉 Dragons!", "dragons"},

		// Dash handling
		{"multiple dashes", "slow--burn", "slow-burn"},
		{"leading dashes", "--dragons", "dragons"},
		{"trailing dashes", "dragons--", "dragons"},

		// Edge cases
		{"empty string", "", ""},
		{"only spaces", "   ", ""},
		{"only special chars", "!@#$%", ""},
		{"numbers allowed", "top10", "top10"},
		{"mixed case with numbers", "Top 10 Posts", "top-10-posts"},

		// Real-world titles
		{"typical post title", "Why programmers work at night", "why-programmers-work-at-night"},
		{"title with quotes", `"Best" practices`, "best-practices"},
		{"title with ampersand", "Tools & Toys", "tools-toys"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
