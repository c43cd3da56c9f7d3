package wxr

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportHeader = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"
	xmlns:content="http://purl.org/rss/1.0/modules/content/"
	xmlns:excerpt="http://wordpress.org/export/1.2/excerpt/"
	xmlns:wp="http://wordpress.org/export/1.2/">
<channel>
<title>Test Blog</title>
`

const exportFooter = `</channel>
</rss>`

func parseItems(t *testing.T, items string) []Post {
	t.Helper()
	posts, err := Parse(strings.NewReader(exportHeader + items + exportFooter))
	require.NoError(t, err)
	return posts
}

func TestParseBasicPost(t *testing.T) {
	posts := parseItems(t, `
<item>
	<title>Hello World</title>
	<link>https://swizec.com/hello-world</link>
	<pubDate>Mon, 21 May 2012 08:30:00 +0000</pubDate>
	<wp:post_date>2012-05-21 08:30:00</wp:post_date>
	<wp:post_type>post</wp:post_type>
	<wp:status>publish</wp:status>
	<content:encoded><![CDATA[<p>Hi there</p>]]></content:encoded>
	<excerpt:encoded><![CDATA[A greeting]]></excerpt:encoded>
	<category domain="category" nicename="meta"><![CDATA[Meta]]></category>
	<category domain="post_tag" nicename="hello"><![CDATA[hello]]></category>
	<wp:postmeta>
		<wp:meta_key>_yoast_wpseo_metadesc</wp:meta_key>
		<wp:meta_value><![CDATA[A longer SEO description]]></wp:meta_value>
	</wp:postmeta>
</item>`)

	require.Len(t, posts, 1)
	p := posts[0]
	assert.Equal(t, "Hello World", p.Title)
	assert.Equal(t, "https://swizec.com/hello-world", p.Link)
	assert.Equal(t, "<p>Hi there</p>", p.Body)
	assert.Equal(t, "A greeting", p.Excerpt)
	assert.Equal(t, time.Date(2012, 5, 21, 8, 30, 0, 0, time.UTC), p.Published.UTC())
	// Tags are excluded; only real categories survive.
	assert.Equal(t, []string{"Meta"}, p.Categories)
	assert.Equal(t, "A longer SEO description", p.MetaValue("_yoast_wpseo_metadesc"))
	assert.Equal(t, "", p.MetaValue("missing"))
}

func TestParseSkipsNonPosts(t *testing.T) {
	posts := parseItems(t, `
<item>
	<title>About</title>
	<wp:post_type>page</wp:post_type>
	<wp:status>publish</wp:status>
</item>
<item>
	<title>Secret</title>
	<wp:post_type>post</wp:post_type>
	<wp:status>draft</wp:status>
</item>
<item>
	<title>photo.jpg</title>
	<wp:post_type>attachment</wp:post_type>
</item>
<item>
	<title>Kept</title>
	<wp:post_type>post</wp:post_type>
	<wp:status>publish</wp:status>
</item>`)

	require.Len(t, posts, 1)
	assert.Equal(t, "Kept", posts[0].Title)
}

func TestParseDateFallback(t *testing.T) {
	posts := parseItems(t, `
<item>
	<title>No pubDate</title>
	<pubDate>not a date</pubDate>
	<wp:post_date>2019-03-04 12:00:00</wp:post_date>
	<wp:post_type>post</wp:post_type>
	<wp:status>publish</wp:status>
</item>
<item>
	<title>No date at all</title>
	<wp:post_type>post</wp:post_type>
	<wp:status>publish</wp:status>
</item>`)

	require.Len(t, posts, 2)
	assert.Equal(t, time.Date(2019, 3, 4, 12, 0, 0, 0, time.UTC), posts[0].Published)
	assert.True(t, posts[1].Published.IsZero())
}

func TestParsePreservesDocumentOrder(t *testing.T) {
	posts := parseItems(t, `
<item><title>first</title><wp:post_type>post</wp:post_type></item>
<item><title>second</title><wp:post_type>post</wp:post_type></item>
<item><title>third</title><wp:post_type>post</wp:post_type></item>`)

	require.Len(t, posts, 3)
	assert.Equal(t, "first", posts[0].Title)
	assert.Equal(t, "second", posts[1].Title)
	assert.Equal(t, "third", posts[2].Title)
}

func TestParseEmptyChannel(t *testing.T) {
	posts := parseItems(t, "")
	assert.Empty(t, posts)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(strings.NewReader("this is not xml at all <<<"))
	assert.Error(t, err)
}
