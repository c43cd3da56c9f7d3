package markup

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Language hints as emitted by the syntax-highlighter plugins WordPress
// blogs accumulated over the years: Crayon ("lang:go"), SyntaxHighlighter
// ("brush: go;"), and plain highlight.js-style classes ("language-go").
var (
	languageClassRe = regexp.MustCompile(`language-([A-Za-z0-9+#-]+)`)
	crayonLangRe    = regexp.MustCompile(`lang:([A-Za-z0-9+#-]+)`)
	brushLangRe     = regexp.MustCompile(`brush:\s*([A-Za-z0-9+#-]+)`)
)

// normalizeCodeBlocks rewrites highlighter-specific code containers into
// the canonical <pre><code class="language-x"> shape the markdown
// converter understands.
func normalizeCodeBlocks(root *html.Node) {
	// Crayon wraps code in a table of line numbers inside a div; handle
	// those first so the plain <pre> pass below sees only real blocks.
	var crayons []*html.Node
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "crayon-syntax") {
			crayons = append(crayons, n)
		}
	})
	for _, div := range crayons {
		replaceNode(div, crayonToPre(div))
	}

	var pres []*html.Node
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "pre" {
			pres = append(pres, n)
		}
	})
	for _, pre := range pres {
		normalizePre(pre)
	}
}

// normalizePre ensures a pre element carries exactly one code child with
// a language-… class when a hint is available.
func normalizePre(pre *html.Node) {
	lang := langHint(attr(pre, "class"))

	code := singleCodeChild(pre)
	if code == nil {
		// Legacy highlighters put raw text (and sometimes spans)
		// directly inside <pre>.
		code = elem("code")
		code.AppendChild(text(textContent(pre)))
		replaceChildren(pre, code)
	}

	if existing := langHint(attr(code, "class")); existing != "" {
		lang = existing
	}
	if lang != "" {
		setAttr(code, "class", "language-"+lang)
	}
}

// crayonToPre flattens a Crayon container into a plain code block.
func crayonToPre(div *html.Node) *html.Node {
	lang := langHint(attr(div, "class"))

	// Crayon marks each source line with class="crayon-line".
	var lines []string
	walk(div, func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "crayon-line") {
			lines = append(lines, textContent(n))
		}
	})

	content := strings.Join(lines, "\n")
	if content == "" {
		content = textContent(div)
	}
	content = strings.TrimRight(content, "\n") + "\n"

	code := elem("code")
	if lang != "" {
		setAttr(code, "class", "language-"+lang)
	}
	code.AppendChild(text(content))

	pre := elem("pre")
	pre.AppendChild(code)
	return pre
}

// langHint extracts a language name from a class attribute, trying each
// known highlighter convention.
func langHint(class string) string {
	for _, re := range []*regexp.Regexp{languageClassRe, crayonLangRe, brushLangRe} {
		if m := re.FindStringSubmatch(class); m != nil {
			return m[1]
		}
	}
	return ""
}

// singleCodeChild returns pre's code child if code is the only element
// child, else nil.
func singleCodeChild(pre *html.Node) *html.Node {
	var code *html.Node
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
			continue
		case c.Type == html.ElementNode && c.Data == "code" && code == nil:
			code = c
		default:
			return nil
		}
	}
	return code
}

// setAttr sets or replaces an attribute on n.
func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
