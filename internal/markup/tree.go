package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// parseFragment parses body in fragment mode (no implied html/head/body
// wrapper) and returns the top-level nodes.
func parseFragment(body string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(body), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	return nodes, nil
}

// groupFragments reparents the parsed fragments under a fresh container
// node so tree rewrites can replace top-level nodes as well.
func groupFragments(nodes []*html.Node) *html.Node {
	root := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		root.AppendChild(n)
	}
	return root
}

// renderChildren serializes root's children back to an HTML string.
func renderChildren(root *html.Node) (string, error) {
	var sb strings.Builder
	for n := root.FirstChild; n != nil; n = n.NextSibling {
		if err := html.Render(&sb, n); err != nil {
			return "", fmt.Errorf("render markup: %w", err)
		}
	}
	return sb.String(), nil
}

// walk visits n and all its descendants in document order. Visitors may
// mutate the node but must not detach it.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// classTokens splits the class attribute into tokens.
func classTokens(n *html.Node) []string {
	return strings.Fields(attr(n, "class"))
}

// hasClass reports whether any class token contains substr.
func hasClass(n *html.Node, substr string) bool {
	for _, c := range classTokens(n) {
		if strings.Contains(c, substr) {
			return true
		}
	}
	return false
}

// textContent concatenates all descendant text nodes.
func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return sb.String()
}

// replaceChildren detaches all children of n and appends the given ones.
func replaceChildren(n *html.Node, children ...*html.Node) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	for _, c := range children {
		n.AppendChild(c)
	}
}

// replaceNode swaps old for replacement in old's parent. No-op when old
// has no parent.
func replaceNode(old, replacement *html.Node) {
	parent := old.Parent
	if parent == nil {
		return
	}
	parent.InsertBefore(replacement, old)
	parent.RemoveChild(old)
}

// elem builds an element node with optional attributes.
func elem(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// text builds a text node.
func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// linkParagraph builds <p><a href="url">url</a></p>, the canonical form
// embeds collapse into.
func linkParagraph(url string) *html.Node {
	p := elem("p")
	a := elem("a", html.Attribute{Key: "href", Val: url})
	a.AppendChild(text(url))
	p.AppendChild(a)
	return p
}
