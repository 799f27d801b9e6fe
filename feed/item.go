// Package feed turns content records into syndication documents and writes
// them as RSS 2.0, Atom 1.0 or JSON Feed 1.
package feed

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/elianvancutsem/folio/content"
)

// ErrMissingBody is returned when a record has no Markdown body to render.
var ErrMissingBody = errors.New("content record has no body")

// Person identifies an author or contributor.
type Person struct {
	Name  string
	Email string
	Link  string
}

// Category is a single item category.
type Category struct {
	Name string
}

// Item is one feed entry built from a content record.
type Item struct {
	Title       string
	ID          string
	Link        string
	Image       string
	Date        time.Time
	Description string
	Content     string
	Author      Person
	Category    []Category
}

// Options is the feed-level metadata.
type Options struct {
	Title       string
	Description string
	Link        string
	TTL         int // minutes
	Image       string
}

// Document is the format-independent feed model filled by a Builder.
type Document struct {
	Options      Options
	Items        []Item
	Categories   []string
	Contributors []Person
}

// AddItem appends an item.
func (d *Document) AddItem(item Item) {
	d.Items = append(d.Items, item)
}

// AddCategory appends a feed-level category.
func (d *Document) AddCategory(name string) {
	d.Categories = append(d.Categories, name)
}

// AddContributor appends a contributor.
func (d *Document) AddContributor(p Person) {
	d.Contributors = append(d.Contributors, p)
}

// RenderFunc converts a Markdown body to HTML.
type RenderFunc func(markdown string) (string, error)

// NewItem maps a record of collection to a feed item. The item links to
// {hostname}/{collection}/{slug}/ and carries one category per tag, in order.
func NewItem(r content.Record, collection, hostname string, render RenderFunc) (Item, error) {
	if err := r.Validate(); err != nil {
		return Item{}, err
	}
	body, ok := r.Body()
	if !ok {
		return Item{}, fmt.Errorf("%s: %w", r.Path, ErrMissingBody)
	}
	html, err := render(body)
	if err != nil {
		return Item{}, fmt.Errorf("render %s: %w", r.Path, err)
	}

	return Item{
		Title:       r.Title,
		ID:          r.Slug,
		Link:        content.BuildURL(hostname, collection, r.Slug),
		Image:       r.ImgURL,
		Date:        r.CreatedAt,
		Description: r.Description,
		Content:     html,
		Author:      Person{Name: r.Author},
		Category: lo.Map(r.Tags, func(tag string, _ int) Category {
			return Category{Name: tag}
		}),
	}, nil
}
