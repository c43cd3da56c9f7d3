package markup

import (
	"fmt"
	"regexp"
	"strings"
)

// ShortcodeKind identifies one recognized WordPress shortcode family.
// Shortcodes embedded in plain text survive the structural conversion
// (they were never markup), so this cleanup runs on the markdown output,
// where the converter may have escaped the brackets.
type ShortcodeKind int

const (
	ShortcodeCaption ShortcodeKind = iota
	ShortcodeYouTube
	ShortcodeVimeo
	ShortcodeTweet
	ShortcodeCode
	ShortcodeEmbed
	ShortcodeGallery
)

// shortcodeRule pairs a recognized variant with its rewrite handler.
type shortcodeRule struct {
	kind    ShortcodeKind
	pattern *regexp.Regexp
	rewrite func(m []string) string
}

// Bracket fragments tolerate the converter's escaping: "[" may arrive
// as "\[".
const (
	scOpen  = `\\?\[`
	scClose = `\\?\]`
)

var shortcodeRules = []shortcodeRule{
	// [caption …]content[/caption] → content
	{
		kind:    ShortcodeCaption,
		pattern: regexp.MustCompile(`(?s)` + scOpen + `caption[^\]]*` + scClose + `(.*?)` + scOpen + `/caption` + scClose),
		rewrite: func(m []string) string { return strings.TrimSpace(m[1]) },
	},
	// [youtube=url] and [youtube url] → url on its own line
	{
		kind:    ShortcodeYouTube,
		pattern: regexp.MustCompile(scOpen + `youtube[=\s]+([^\]\s\\]+)\s*` + scClose),
		rewrite: func(m []string) string { return m[1] },
	},
	// [youtube]url[/youtube] → url
	{
		kind:    ShortcodeYouTube,
		pattern: regexp.MustCompile(`(?s)` + scOpen + `youtube` + scClose + `(.*?)` + scOpen + `/youtube` + scClose),
		rewrite: func(m []string) string { return strings.TrimSpace(m[1]) },
	},
	{
		kind:    ShortcodeVimeo,
		pattern: regexp.MustCompile(scOpen + `vimeo[=\s]+([^\]\s\\]+)\s*` + scClose),
		rewrite: func(m []string) string { return m[1] },
	},
	{
		kind:    ShortcodeTweet,
		pattern: regexp.MustCompile(scOpen + `tweet[=\s]+([^\]\s\\]+)\s*` + scClose),
		rewrite: func(m []string) string { return m[1] },
	},
	// [sourcecode language="go"]…[/sourcecode] and [code lang=go]…[/code]
	// → fenced code block
	{
		kind:    ShortcodeCode,
		pattern: regexp.MustCompile(`(?s)` + scOpen + `(?:source)?code(?:\s+lang(?:uage)?="?([A-Za-z0-9+#-]*)"?)?[^\]]*` + scClose + `(.*?)` + scOpen + `/(?:source)?code` + scClose),
		rewrite: func(m []string) string {
			content := markdownUnescape(strings.Trim(m[2], "\n"))
			return fmt.Sprintf("```%s\n%s\n```", m[1], content)
		},
	},
	// [embed]url[/embed] → url
	{
		kind:    ShortcodeEmbed,
		pattern: regexp.MustCompile(`(?s)` + scOpen + `embed[^\]]*` + scClose + `(.*?)` + scOpen + `/embed` + scClose),
		rewrite: func(m []string) string { return strings.TrimSpace(m[1]) },
	},
	// [gallery …] has no markdown equivalent; drop it.
	{
		kind:    ShortcodeGallery,
		pattern: regexp.MustCompile(scOpen + `gallery[^\]]*` + scClose),
		rewrite: func(m []string) string { return "" },
	},
}

// CleanShortcodes rewrites or strips every recognized shortcode variant
// in the converted markdown. Unrecognized bracket constructs are left
// alone.
func CleanShortcodes(md string) string {
	for _, rule := range shortcodeRules {
		md = rule.pattern.ReplaceAllStringFunc(md, func(match string) string {
			return rule.rewrite(rule.pattern.FindStringSubmatch(match))
		})
	}
	return md
}

// markdownUnescape drops converter-added escapes, used when shortcode
// content becomes a code block where escaping has no meaning.
var escapedPunctRe = regexp.MustCompile("\\\\([\\\\`*_{}\\[\\]()#+\\-.!<>|~])")

func markdownUnescape(s string) string {
	return escapedPunctRe.ReplaceAllString(s, "$1")
}
