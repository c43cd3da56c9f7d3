package wxr

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
)

// Date formats seen in WXR exports. pubDate is RFC 1123 with a numeric
// zone; wp:post_date is a bare local timestamp.
const (
	pubDateLayout  = time.RFC1123Z
	postDateLayout = "2006-01-02 15:04:05"
)

// Parse decodes a WXR export and returns its published posts in document
// order. Pages, attachments, drafts, and nav items are skipped.
func Parse(r io.Reader) ([]Post, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.Entity = xml.HTMLEntity

	var doc export
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	posts := make([]Post, 0, len(doc.Channel.Items))
	for _, it := range doc.Channel.Items {
		if it.PostType != "post" {
			continue
		}
		if it.Status != "" && it.Status != "publish" {
			continue
		}
		posts = append(posts, toPost(it))
	}
	return posts, nil
}

func toPost(it item) Post {
	p := Post{
		Title:     strings.TrimSpace(it.Title),
		Link:      strings.TrimSpace(it.Link),
		Published: parseDate(it.PubDate, it.PostDate),
		Body:      it.Content,
		Excerpt:   strings.TrimSpace(it.Excerpt),
	}

	for _, c := range it.Categories {
		// Tags share the <category> element; only real categories count.
		if c.Domain == "category" {
			if v := strings.TrimSpace(c.Value); v != "" {
				p.Categories = append(p.Categories, v)
			}
		}
	}

	for _, m := range it.Meta {
		p.Meta = append(p.Meta, Meta{Key: m.Key, Value: m.Value})
	}

	return p
}

// parseDate prefers pubDate and falls back to wp:post_date when the
// primary field is missing or unparseable. Returns the zero time if
// neither parses.
func parseDate(pubDate, postDate string) time.Time {
	if t, err := time.Parse(pubDateLayout, strings.TrimSpace(pubDate)); err == nil {
		return t
	}
	if t, err := time.Parse(postDateLayout, strings.TrimSpace(postDate)); err == nil {
		return t
	}
	return time.Time{}
}
