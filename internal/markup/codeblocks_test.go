package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// normalize parses, runs the code-block pass, and renders back to HTML.
func normalizeHTML(t *testing.T, in string) string {
	t.Helper()
	nodes, err := parseFragment(in)
	require.NoError(t, err)
	root := groupFragments(nodes)
	normalizeCodeBlocks(root)
	out, err := renderChildren(root)
	require.NoError(t, err)
	return out
}

func TestNormalizeCrayonPre(t *testing.T) {
	in := `<pre class="lang:js decode:true">var x = 1;</pre>`
	out := normalizeHTML(t, in)
	assert.Contains(t, out, `<code class="language-js">`)
	assert.Contains(t, out, "var x = 1;")
}

func TestNormalizeBrushPre(t *testing.T) {
	in := `<pre class="brush: python; gutter: false">print(1)</pre>`
	out := normalizeHTML(t, in)
	assert.Contains(t, out, `<code class="language-python">`)
}

func TestNormalizePlainPreCodeUntouched(t *testing.T) {
	in := `<pre><code>plain</code></pre>`
	out := normalizeHTML(t, in)
	assert.Contains(t, out, "<pre><code>plain</code></pre>")
}

func TestNormalizeKeepsExistingLanguageClass(t *testing.T) {
	in := `<pre class="lang:ruby"><code class="language-go">x</code></pre>`
	out := normalizeHTML(t, in)
	// The code element's own hint wins over the pre wrapper's.
	assert.Contains(t, out, `class="language-go"`)
	assert.NotContains(t, out, "language-ruby")
}

func TestNormalizeCrayonContainer(t *testing.T) {
	in := `<div class="crayon-syntax lang:go">` +
		`<table><tr><td>` +
		`<div class="crayon-line">func main() {</div>` +
		`<div class="crayon-line">}</div>` +
		`</td></tr></table></div>`
	out := normalizeHTML(t, in)

	assert.NotContains(t, out, "crayon")
	assert.Contains(t, out, `<code class="language-go">`)
	assert.Contains(t, out, "func main() {\n}\n")
}

func TestLangHint(t *testing.T) {
	tests := []struct {
		class string
		want  string
	}{
		{"lang:js decode:true", "js"},
		{"brush: cpp; gutter: true", "cpp"},
		{"language-rust", "rust"},
		{"wp-block-code", ""},
		{"", ""},
		{"lang:c++", "c++"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, langHint(tt.class), "class %q", tt.class)
	}
}
