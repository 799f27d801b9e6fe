// Package sitemap enumerates the site's content routes and renders them as
// a sitemaps.org urlset, alongside the robots.txt that points to it.
package sitemap

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/elianvancutsem/folio/content"
)

// Fetcher returns the paths of a collection, newest first.
type Fetcher interface {
	Paths(ctx context.Context, collection string) ([]string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, collection string) ([]string, error)

// Paths calls f.
func (f FetcherFunc) Paths(ctx context.Context, collection string) ([]string, error) {
	return f(ctx, collection)
}

// FromStore returns a Fetcher that asks s for the path field only, sorted by
// createdAt descending.
func FromStore(s *content.Store) Fetcher {
	return FetcherFunc(func(ctx context.Context, collection string) ([]string, error) {
		records, err := s.Query(collection).Only("path").SortBy("createdAt", content.Desc).Fetch(ctx)
		if err != nil {
			return nil, err
		}
		return lo.Map(records, func(r content.Record, _ int) string {
			return r.Path
		}), nil
	})
}

// NormalizeRoute maps the root index document to "/". Every other path is
// returned unchanged.
func NormalizeRoute(path string) string {
	if path == "/index" {
		return "/"
	}
	return path
}

// Enumerator lists the routes of a set of collections.
type Enumerator struct {
	fetch Fetcher
}

// NewEnumerator creates an Enumerator reading paths from fetch.
func NewEnumerator(fetch Fetcher) *Enumerator {
	return &Enumerator{fetch: fetch}
}

// Routes fetches every collection concurrently and returns their normalized
// paths, grouped in the order the collections were given. Paths present in
// several collections are listed once per collection. A single failed fetch
// fails the enumeration.
func (e *Enumerator) Routes(ctx context.Context, collections []string) ([]string, error) {
	results := make([][]string, len(collections))

	g, ctx := errgroup.WithContext(ctx)
	for i, collection := range collections {
		g.Go(func() error {
			paths, err := e.fetch.Paths(ctx, collection)
			if err != nil {
				return fmt.Errorf("routes of %s: %w", collection, err)
			}
			results[i] = paths
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return lo.Map(lo.Flatten(results), func(path string, _ int) string {
		return NormalizeRoute(path)
	}), nil
}
