// Package markup converts WordPress post bodies to MDX-ready markdown
// through a staged repair → parse → normalize → convert pipeline.
package markup

import (
	"regexp"
	"strings"
)

var (
	// Stray control bytes show up in old exports and confuse the parser.
	controlCharRe = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)

	// A bare "<" followed by whitespace, a digit, or "=" is almost always
	// a comparison operator in prose ("for i < 10"), not a tag open.
	bareLessThanRe = regexp.MustCompile(`<([\s\d=])`)

	// Line-break tag spellings, including the bogus closing form.
	brVariantRe = regexp.MustCompile(`(?i)<br\s*/?\s*>`)
	orphanEndRe = regexp.MustCompile(`(?i)</(br|img|hr|input|meta|link)\s*>`)
)

// Repair applies text-level heuristics to malformed markup so the
// structural parse downstream does not mangle content. It never changes
// well-formed input.
func Repair(body string) string {
	if body == "" {
		return ""
	}

	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = controlCharRe.ReplaceAllString(body, "")
	body = bareLessThanRe.ReplaceAllString(body, "&lt;$1")
	// Void elements never take closing tags; some editors emitted them anyway.
	body = orphanEndRe.ReplaceAllString(body, "")
	body = brVariantRe.ReplaceAllString(body, "<br/>")

	return body
}
