// Package wxr parses WordPress WXR export documents into posts.
package wxr

import "time"

// Meta is one key/value metadata entry attached to a post.
type Meta struct {
	Key   string
	Value string
}

// Post is one exported blog post. The body starts as the raw WordPress
// markup and is rewritten downstream as images are localized.
type Post struct {
	Title      string
	Link       string
	Published  time.Time
	Body       string
	Excerpt    string
	Categories []string
	Meta       []Meta
}

// MetaValue returns the value of the first metadata entry with the given
// key, or "" if none exists.
func (p *Post) MetaValue(key string) string {
	for _, m := range p.Meta {
		if m.Key == key {
			return m.Value
		}
	}
	return ""
}

// Namespace URIs used by WXR 1.2 exports.
const (
	nsContent = "http://purl.org/rss/1.0/modules/content/"
	nsExcerpt = "http://wordpress.org/export/1.2/excerpt/"
	nsWP      = "http://wordpress.org/export/1.2/"
)

// Wire types for decoding. Both content:encoded and excerpt:encoded share
// the local name "encoded", so the namespace URIs are spelled out.

type export struct {
	Channel channel `xml:"channel"`
}

type channel struct {
	Title string `xml:"title"`
	Items []item `xml:"item"`
}

type item struct {
	Title      string     `xml:"title"`
	Link       string     `xml:"link"`
	PubDate    string     `xml:"pubDate"`
	PostDate   string     `xml:"http://wordpress.org/export/1.2/ post_date"`
	PostType   string     `xml:"http://wordpress.org/export/1.2/ post_type"`
	Status     string     `xml:"http://wordpress.org/export/1.2/ status"`
	Content    string     `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
	Excerpt    string     `xml:"http://wordpress.org/export/1.2/excerpt/ encoded"`
	Categories []category `xml:"category"`
	Meta       []postmeta `xml:"http://wordpress.org/export/1.2/ postmeta"`
}

type category struct {
	Domain string `xml:"domain,attr"`
	Value  string `xml:",chardata"`
}

type postmeta struct {
	Key   string `xml:"meta_key"`
	Value string `xml:"meta_value"`
}
