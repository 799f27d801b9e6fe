package feed

import (
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"

	"github.com/elianvancutsem/folio/markdown"
)

// DefaultCategories are the feed-level categories of the site.
var DefaultCategories = []string{"Nuxt.js", "IT", "programming", "Coding", "Full-stack"}

// Config holds the site-level values a Builder stamps on every document.
type Config struct {
	Hostname    string
	Options     Options
	Categories  []string
	Contributor Person

	// Sanitize runs rendered item content through a user-generated-content
	// HTML policy.
	Sanitize bool
}

// Builder fills feed documents from a collection of records.
type Builder struct {
	cfg    Config
	posts  Source
	render RenderFunc
}

// NewBuilder creates a Builder reading records from posts, usually a
// *PostCache so repeated builds share one fetch.
func NewBuilder(cfg Config, posts Source) *Builder {
	if cfg.Categories == nil {
		cfg.Categories = DefaultCategories
	}
	b := &Builder{
		cfg:    cfg,
		posts:  posts,
		render: markdown.ToHTML,
	}
	if cfg.Sanitize {
		policy := bluemonday.UGCPolicy()
		render := b.render
		b.render = func(md string) (string, error) {
			html, err := render(md)
			if err != nil {
				return "", err
			}
			return policy.Sanitize(html), nil
		}
	}
	return b
}

// Build overwrites doc's options, appends one item per record of collection
// in the order the source returns them, then appends the site categories and
// the site owner as contributor. Any record error aborts the build.
func (b *Builder) Build(ctx context.Context, doc *Document, collection string) error {
	doc.Options = b.cfg.Options

	posts, err := b.posts.Posts(ctx, collection)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", collection, err)
	}
	for _, post := range posts {
		item, err := NewItem(post, collection, b.cfg.Hostname, b.render)
		if err != nil {
			return err
		}
		doc.AddItem(item)
	}

	for _, c := range b.cfg.Categories {
		doc.AddCategory(c)
	}
	doc.AddContributor(b.cfg.Contributor)
	return nil
}
