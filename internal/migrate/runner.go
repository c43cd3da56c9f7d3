// Package migrate orchestrates one conversion run: load the export,
// sample it, and convert each selected post to an MDX document.
package migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/wxrtools/wxr2mdx/internal/config"
	"github.com/wxrtools/wxr2mdx/internal/document"
	"github.com/wxrtools/wxr2mdx/internal/images"
	"github.com/wxrtools/wxr2mdx/internal/logger"
	"github.com/wxrtools/wxr2mdx/internal/markup"
	"github.com/wxrtools/wxr2mdx/internal/sampler"
	"github.com/wxrtools/wxr2mdx/internal/util"
	"github.com/wxrtools/wxr2mdx/internal/wxr"
)

// Runner converts one WXR export into a directory of MDX documents.
type Runner struct {
	opts      *config.Options
	log       *logger.Logger
	localizer *images.Localizer
	pipeline  *markup.Pipeline
	assembler *document.Assembler
}

// New wires a runner from resolved options.
func New(opts *config.Options, log *logger.Logger) *Runner {
	fetcher := images.NewFetcher(log.Logger, opts.Insecure)
	return &Runner{
		opts:      opts,
		log:       log,
		localizer: images.NewLocalizer(fetcher, log.Logger),
		pipeline:  markup.NewPipeline(log.Logger),
		assembler: document.NewAssembler(opts.CanonicalHosts, opts.HeroFallback),
	}
}

// Run executes the conversion. Per-post failures are logged and counted,
// never fatal; the run completes once every dispatched post has finished.
func (r *Runner) Run(ctx context.Context) error {
	f, err := os.Open(r.opts.ExportPath)
	if err != nil {
		return fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	posts, err := wxr.Parse(f)
	if err != nil {
		return fmt.Errorf("parse export: %w", err)
	}
	r.log.Info("loaded export", "posts", len(posts))

	selected := sampler.Select(posts, r.opts.Limit)
	if len(selected) < len(posts) {
		r.log.Info("sampled posts", "selected", len(selected), "total", len(posts))
	}

	r.warnSlugCollisions(selected)

	// Bounded pool; the run reports posts that actually completed, not
	// just ones that were dispatched.
	var converted, failed atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(r.opts.Concurrency)

	for i := range selected {
		post := &selected[i]
		g.Go(func() error {
			if err := r.convert(ctx, post); err != nil {
				failed.Add(1)
				r.log.WithError(err).Error("post conversion failed", "title", post.Title)
				return nil
			}
			converted.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	r.log.Info("processed posts", "converted", converted.Load(), "failed", failed.Load())
	if failed.Load() > 0 {
		return fmt.Errorf("%d of %d posts failed", failed.Load(), len(selected))
	}
	return nil
}

// convert runs the per-post pipeline: localize images, convert markup,
// assemble, persist.
func (r *Runner) convert(ctx context.Context, post *wxr.Post) error {
	slug := util.Slugify(post.Title)
	if slug == "" {
		return fmt.Errorf("title %q yields an empty slug", post.Title)
	}

	imgDir := filepath.Join(r.opts.OutputDir, slug)
	body, assets, err := r.localizer.LocalizeWithHero(ctx, post.Body, imgDir, heroMetaURL(post))
	if err != nil {
		return fmt.Errorf("localize images: %w", err)
	}

	md, err := r.pipeline.Convert(body)
	if err != nil {
		return fmt.Errorf("convert markup: %w", err)
	}

	doc := r.assembler.Assemble(post, md, slug, assets)

	outPath := filepath.Join(r.opts.OutputDir, slug+".mdx")
	if err := os.WriteFile(outPath, doc, 0644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	r.log.Info("converted post", "slug", slug, "images", len(assets))
	return nil
}

// heroMetaURL returns the post's social-preview image URL, if any.
func heroMetaURL(post *wxr.Post) string {
	for _, m := range post.Meta {
		key := strings.ToLower(m.Key)
		if strings.Contains(key, "opengraph-image") ||
			strings.Contains(key, "og:image") ||
			strings.Contains(key, "twitter-image") ||
			strings.Contains(key, "twitter:image") {
			if v := strings.TrimSpace(m.Value); strings.HasPrefix(v, "http") {
				return v
			}
		}
	}
	return ""
}

// warnSlugCollisions flags titles that map to the same slug. The later
// post overwrites the earlier one's output; surfacing it beats silently
// losing a post.
func (r *Runner) warnSlugCollisions(posts []wxr.Post) {
	seen := make(map[string]string, len(posts))
	for _, p := range posts {
		slug := util.Slugify(p.Title)
		if other, dup := seen[slug]; dup {
			r.log.Warn("slug collision, output will be overwritten",
				"slug", slug, "title", p.Title, "conflicts_with", other)
			continue
		}
		seen[slug] = p.Title
	}
}
