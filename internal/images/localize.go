package images

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/net/html"

	"github.com/wxrtools/wxr2mdx/internal/util"
)

// imgSrcPattern matches single- or double-quoted src attributes. The scan
// is deliberately not syntax-aware: every src-looking attribute in the
// body is a candidate.
var imgSrcPattern = regexp.MustCompile(`src=(?:"([^"]*)"|'([^']*)')`)

// Localizer scans post bodies for remote images, downloads them into a
// per-post directory, and rewrites every reference to a relative path.
type Localizer struct {
	fetcher *Fetcher
	logger  *slog.Logger
}

// NewLocalizer creates a localizer using the given fetcher.
func NewLocalizer(fetcher *Fetcher, logger *slog.Logger) *Localizer {
	return &Localizer{fetcher: fetcher, logger: logger}
}

// Localize rewrites all remote image references in body to relative paths
// under dir, downloading each image once. A failed fetch leaves that URL
// untouched and is not an error. The returned names are the asset
// filenames in localization order.
func (l *Localizer) Localize(ctx context.Context, body, dir string) (string, []string, error) {
	return l.LocalizeWithHero(ctx, body, dir, "")
}

// LocalizeWithHero behaves like Localize but first localizes heroURL (a
// metadata-sourced OpenGraph/Twitter image), so the hero lands at the
// front of the asset list and its body references are rewritten too.
func (l *Localizer) LocalizeWithHero(ctx context.Context, body, dir, heroURL string) (string, []string, error) {
	st := &scanState{
		dir:     dir,
		relBase: "./" + filepath.Base(dir),
		byURL:   make(map[string]string),
		taken:   make(map[string]bool),
	}

	candidates := make([]string, 0, 8)
	if heroURL != "" {
		candidates = append(candidates, heroURL)
	}
	for _, m := range imgSrcPattern.FindAllStringSubmatch(body, -1) {
		if m[1] != "" {
			candidates = append(candidates, m[1])
		} else {
			candidates = append(candidates, m[2])
		}
	}

	// Candidates run strictly in sequence: each rewrite feeds the body
	// the next replacement operates on.
	for _, raw := range candidates {
		rewritten, err := l.localizeOne(ctx, body, raw, st)
		if err != nil {
			return body, st.names, err
		}
		body = rewritten
	}

	return body, st.names, nil
}

// scanState carries per-post bookkeeping across candidates.
type scanState struct {
	dir     string
	relBase string
	created bool
	byURL   map[string]string // original URL → assigned filename
	taken   map[string]bool   // filenames already used
	names   []string          // asset filenames in order
}

// localizeOne processes one candidate URL. Fetch and write failures are
// logged and skipped; only directory creation failure is fatal.
func (l *Localizer) localizeOne(ctx context.Context, body, raw string, st *scanState) (string, error) {
	cleaned := strings.TrimSpace(html.UnescapeString(raw))
	if cleaned == "" {
		return body, nil
	}

	u, err := url.Parse(cleaned)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		// Already-relative paths and data URIs fall out here, which is
		// what makes a second pass over localized output a no-op.
		return body, nil
	}

	// One download per distinct URL per post.
	if name, seen := st.byURL[cleaned]; seen {
		return strings.ReplaceAll(body, raw, st.relBase+"/"+name), nil
	}

	data, err := l.fetcher.Fetch(ctx, cleaned, u.Host)
	if err != nil {
		l.logger.Warn("image fetch failed, leaving reference as-is", "url", cleaned, "error", err)
		return body, nil
	}

	// The extension comes from the bytes, not the URL: plenty of old
	// posts reference .php endpoints that serve PNGs.
	ext := mimetype.Detect(data).Extension()
	name := st.assign(fileStem(u), ext)

	if !st.created {
		if err := os.MkdirAll(st.dir, 0755); err != nil {
			return body, fmt.Errorf("create image directory: %w", err)
		}
		st.created = true
	}

	if err := os.WriteFile(filepath.Join(st.dir, name), data, 0644); err != nil {
		l.logger.Warn("image write failed, leaving reference as-is", "url", cleaned, "file", name, "error", err)
		return body, nil
	}

	st.byURL[cleaned] = name
	st.names = append(st.names, name)

	// Every literal occurrence of the URL is rewritten, image tag or not.
	body = strings.ReplaceAll(body, raw, st.relBase+"/"+name)
	if raw != cleaned {
		body = strings.ReplaceAll(body, cleaned, st.relBase+"/"+name)
	}
	return body, nil
}

// assign derives a unique filename from a stem and sniffed extension.
func (st *scanState) assign(stem, ext string) string {
	name := stem + ext
	for i := 2; st.taken[name]; i++ {
		name = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
	st.taken[name] = true
	return name
}

// fileStem derives a filename stem from the URL's path.
func fileStem(u *url.URL) string {
	base := path.Base(u.Path)
	base = strings.TrimSuffix(base, path.Ext(base))
	stem := util.Slugify(base)
	if stem == "" {
		stem = "image"
	}
	return stem
}
