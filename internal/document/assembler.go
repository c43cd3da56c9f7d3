package document

import (
	"github.com/wxrtools/wxr2mdx/internal/wxr"
)

// Assembler combines front matter with converted bodies.
type Assembler struct {
	canonicalHosts []string
	heroFallback   string
}

// NewAssembler creates an assembler. canonicalHosts are the link
// prefixes stripped for redirect_from entries; heroFallback is used when
// a post has no suitable localized image.
func NewAssembler(canonicalHosts []string, heroFallback string) *Assembler {
	return &Assembler{
		canonicalHosts: canonicalHosts,
		heroFallback:   heroFallback,
	}
}

// Assemble builds the final MDX document for one post: synthesized front
// matter followed by the converted body. assets are the post's localized
// image filenames in localization order; slug names the image
// subdirectory.
func (a *Assembler) Assemble(post *wxr.Post, body, slug string, assets []string) []byte {
	fm := FrontMatter{
		Title:       post.Title,
		Description: buildDescription(post),
		Published:   post.Published,
		Categories:  post.Categories,
		Hero:        pickHero(slug, assets, a.heroFallback),
	}
	if p := redirectPath(post.Link, a.canonicalHosts); p != "" {
		fm.RedirectFrom = append(fm.RedirectFrom, p)
	}

	out := fm.Render() + "\n" + body
	return []byte(out)
}
