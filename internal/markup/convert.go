package markup

import (
	"fmt"
	"log/slog"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Pipeline converts one post body from WordPress markup to markdown. The
// stages run in a fixed order; an error in any stage fails only the post
// being converted.
type Pipeline struct {
	logger *slog.Logger
}

// NewPipeline creates a conversion pipeline.
func NewPipeline(logger *slog.Logger) *Pipeline {
	return &Pipeline{logger: logger}
}

// Convert runs the full chain:
//
//	repair → parse → code blocks → embeds → markdown →
//	shortcodes → URL escape fix → format
func (p *Pipeline) Convert(body string) (string, error) {
	repaired := Repair(body)

	nodes, err := parseFragment(repaired)
	if err != nil {
		return "", fmt.Errorf("parse markup: %w", err)
	}

	// Group the fragments under one container so top-level nodes can be
	// replaced by the normalizers too.
	root := groupFragments(nodes)
	normalizeCodeBlocks(root)
	normalizeEmbeds(root)

	normalized, err := renderChildren(root)
	if err != nil {
		return "", err
	}

	md, err := htmltomarkdown.ConvertString(normalized)
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}

	md = CleanShortcodes(md)
	md = FixURLEscapes(md)
	md = Format(md)

	if strings.TrimSpace(md) == "" && strings.TrimSpace(body) != "" {
		p.logger.Warn("conversion produced empty body")
	}

	return md, nil
}
