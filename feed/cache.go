package feed

import (
	"context"
	"sync"
	"time"

	"github.com/elianvancutsem/folio/content"
)

// Source fetches the records of a collection, newest first.
type Source interface {
	Posts(ctx context.Context, collection string) ([]content.Record, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, collection string) ([]content.Record, error)

// Posts calls f.
func (f SourceFunc) Posts(ctx context.Context, collection string) ([]content.Record, error) {
	return f(ctx, collection)
}

// FromStore returns a Source querying s sorted by createdAt descending.
func FromStore(s *content.Store) Source {
	return SourceFunc(func(ctx context.Context, collection string) ([]content.Record, error) {
		return s.Query(collection).SortBy("createdAt", content.Desc).Fetch(ctx)
	})
}

// PostCache memoizes the records of each collection. A non-positive ttl
// means entries never expire, so each collection is fetched once for the
// lifetime of the cache.
type PostCache struct {
	mu      sync.RWMutex
	posts   map[string][]content.Record
	fetched map[string]time.Time
	ttl     time.Duration
	source  Source
}

// NewPostCache creates a PostCache backed by source.
func NewPostCache(source Source, ttl time.Duration) *PostCache {
	return &PostCache{
		posts:   make(map[string][]content.Record),
		fetched: make(map[string]time.Time),
		ttl:     ttl,
		source:  source,
	}
}

func (c *PostCache) valid(collection string) bool {
	if _, ok := c.posts[collection]; !ok {
		return false
	}
	return c.ttl <= 0 || time.Since(c.fetched[collection]) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = make(map[string][]content.Record)
	c.fetched = make(map[string]time.Time)
	c.mu.Unlock()
}

// Posts returns the cached records of collection, loading them on first use.
// It tries a read lock first; only takes a write lock if a load is needed.
func (c *PostCache) Posts(ctx context.Context, collection string) ([]content.Record, error) {
	c.mu.RLock()
	if c.valid(collection) {
		posts := c.posts[collection]
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid(collection) {
		return c.posts[collection], nil
	}
	posts, err := c.source.Posts(ctx, collection)
	if err != nil {
		return nil, err
	}
	c.posts[collection] = posts
	c.fetched[collection] = time.Now()
	return posts, nil
}
