// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
)

var (
	// Matches spaces, underscores, and slashes (for replacement with dashes).
	wordSeparatorRe = regexp.MustCompile(`[\s_/]+`)
	// Matches non-alphanumeric characters (except dashes).
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)
)

// Slugify converts a post title to a filesystem- and URL-safe identifier.
// The slug doubles as the output filename stem and the per-post image
// directory name, so two titles that normalize to the same slug will
// collide on disk.
//
// Normalization rules:
//  1. Trim whitespace and lowercase
//  2. Replace spaces, underscores, and slashes with dashes
//  3. Remove non-alphanumeric characters (except dashes)
//  4. Collapse multiple dashes
//  5. Trim leading/trailing dashes
//
// Examples:
//
//	"Don't Stop!"       → "dont-stop"
//	"A/B testing"       → "a-b-testing"
//	"  Spaced   out "   → "spaced-out"
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))

	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonAlphanumericRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	return s
}
