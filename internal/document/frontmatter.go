// Package document assembles converted bodies and post metadata into
// final MDX output units.
package document

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/wxrtools/wxr2mdx/internal/wxr"
)

// FrontMatter is the YAML header of one output document.
type FrontMatter struct {
	Title        string
	Description  string
	Published    time.Time
	RedirectFrom []string
	Categories   []string
	Hero         string
}

// descMarker tags metadata keys that carry description candidates
// (description, _yoast_wpseo_metadesc, og:description, …).
const descMarker = "desc"

// buildDescription picks the longest candidate among the post's excerpt
// and any description-flavored metadata value.
func buildDescription(post *wxr.Post) string {
	best := strings.TrimSpace(post.Excerpt)
	for _, m := range post.Meta {
		if !strings.Contains(strings.ToLower(m.Key), descMarker) {
			continue
		}
		if v := strings.TrimSpace(m.Value); len(v) > len(best) {
			best = v
		}
	}
	return best
}

// redirectPath strips a known canonical host prefix from the post's
// link. Unknown hosts fall back to the link's path component.
func redirectPath(link string, hosts []string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}

	for _, host := range hosts {
		if strings.HasPrefix(link, host) {
			return ensureLeadingSlash(strings.TrimPrefix(link, host))
		}
	}

	if u, err := url.Parse(link); err == nil && u.Path != "" {
		return ensureLeadingSlash(u.Path)
	}
	return ""
}

func ensureLeadingSlash(p string) string {
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// pickHero returns the relative reference of the first non-animated
// localized asset, or fallback when none qualifies.
func pickHero(slug string, assets []string, fallback string) string {
	for _, name := range assets {
		if strings.HasSuffix(strings.ToLower(name), ".gif") {
			continue
		}
		return "./" + slug + "/" + name
	}
	return fallback
}

// Render serializes the front matter between --- fences. Fields without
// values are omitted entirely; categories collapse into one
// comma-separated string.
func (fm *FrontMatter) Render() string {
	var sb strings.Builder
	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "title: %q\n", fm.Title)
	if fm.Description != "" {
		fmt.Fprintf(&sb, "description: %q\n", fm.Description)
	}
	if !fm.Published.IsZero() {
		fmt.Fprintf(&sb, "published: %s\n", fm.Published.Format("2006-01-02"))
	}
	if len(fm.RedirectFrom) > 0 {
		sb.WriteString("redirect_from:\n")
		for _, p := range fm.RedirectFrom {
			fmt.Fprintf(&sb, "  - %s\n", p)
		}
	}
	if len(fm.Categories) > 0 {
		fmt.Fprintf(&sb, "categories: %q\n", strings.Join(fm.Categories, ", "))
	}
	if fm.Hero != "" {
		fmt.Fprintf(&sb, "hero: %s\n", fm.Hero)
	}
	sb.WriteString("---\n")
	return sb.String()
}
