package markup

import (
	"regexp"
	"strings"
)

// The converter escapes underscores everywhere, including inside bare
// URLs, where the escape is wrong: ./img/some\_file.png is not a path.
var urlEscapeRe = regexp.MustCompile(`((?:https?://|\./)[^\s<>()]*)\\_`)

// FixURLEscapes un-escapes underscores that follow a URL on the same
// line. Applied repeatedly because one URL can hold several.
func FixURLEscapes(md string) string {
	for {
		fixed := urlEscapeRe.ReplaceAllString(md, "${1}_")
		if fixed == md {
			return md
		}
		md = fixed
	}
}

var excessBlankRe = regexp.MustCompile(`\n{3,}`)

// Format canonicalizes the serialized markdown's whitespace: LF line
// endings, no trailing spaces, at most one blank line between blocks,
// exactly one final newline. Running it twice is a no-op.
func Format(md string) string {
	md = strings.ReplaceAll(md, "\r\n", "\n")

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	md = strings.Join(lines, "\n")

	md = excessBlankRe.ReplaceAllString(md, "\n\n")
	md = strings.Trim(md, "\n")
	if md == "" {
		return ""
	}
	return md + "\n"
}
