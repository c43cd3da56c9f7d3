package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// normalizeEmbeds collapses platform embed containers (Gutenberg embed
// figures, tweet blockquotes, bare iframes) into plain link paragraphs
// that convert cleanly to markdown.
func normalizeEmbeds(root *html.Node) {
	// Gutenberg wraps embeds in <figure class="wp-block-embed …"> with
	// the target URL as the figure's text or an inner iframe.
	var figures []*html.Node
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "figure" && hasClass(n, "wp-block-embed") {
			figures = append(figures, n)
		}
	})
	for _, fig := range figures {
		if url := embedURL(fig); url != "" {
			replaceNode(fig, linkParagraph(url))
		}
	}

	// Twitter's embed snippet: the permalink is the last anchor in the
	// blockquote.
	var tweets []*html.Node
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "blockquote" && hasClass(n, "twitter-tweet") {
			tweets = append(tweets, n)
		}
	})
	for _, bq := range tweets {
		if url := lastAnchorHref(bq); url != "" {
			replaceNode(bq, linkParagraph(url))
		}
	}

	// Anything still iframed (old-style YouTube/Vimeo embeds) becomes a
	// link to its source.
	var iframes []*html.Node
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "iframe" {
			iframes = append(iframes, n)
		}
	})
	for _, frame := range iframes {
		src := strings.TrimSpace(attr(frame, "src"))
		if strings.HasPrefix(src, "//") {
			src = "https:" + src
		}
		if strings.HasPrefix(src, "http") {
			replaceNode(frame, linkParagraph(src))
		}
	}
}

// embedURL digs the embed target out of a figure: an inner iframe's src
// wins, else the first URL-looking line of text.
func embedURL(fig *html.Node) string {
	var iframeSrc string
	walk(fig, func(n *html.Node) {
		if iframeSrc == "" && n.Type == html.ElementNode && n.Data == "iframe" {
			iframeSrc = strings.TrimSpace(attr(n, "src"))
		}
	})
	if strings.HasPrefix(iframeSrc, "http") {
		return iframeSrc
	}

	for _, line := range strings.Split(textContent(fig), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
			return line
		}
	}
	return ""
}

// lastAnchorHref returns the href of the last anchor under n.
func lastAnchorHref(n *html.Node) string {
	var href string
	walk(n, func(c *html.Node) {
		if c.Type == html.ElementNode && c.Data == "a" {
			if h := strings.TrimSpace(attr(c, "href")); h != "" {
				href = h
			}
		}
	})
	return href
}
