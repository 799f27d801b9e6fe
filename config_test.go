package folio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var cfg SiteConfig
	cfg.setDefaults()

	assert.Equal(t, "https://www.elian.codes", cfg.Hostname)
	assert.Equal(t, 30, cfg.TTL)
	assert.Equal(t, []string{"blog", "projects"}, cfg.SitemapCollections)
	require.Len(t, cfg.Feeds, 3)
	assert.Equal(t, FeedTarget{Path: "/blog.xml", Type: "rss2", Collection: "blog"}, cfg.Feeds[0])

	fc := cfg.feedConfig()
	assert.Equal(t, "https://www.elian.codes/", fc.Options.Link)
	assert.Equal(t, "Elian Van Cutsem", fc.Contributor.Name)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`hostname: https://example.com/
title: Example
post_cache_ttl: 10m
feeds:
  - path: /rss.xml
    type: rss2
    collection: posts
sitemap_collections: [posts]
`), 0o644))
	t.Setenv("FOLIO_ADDR", ":8080")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", cfg.Hostname)
	assert.Equal(t, "Example", cfg.Title)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 10*time.Minute, cfg.PostCacheTTL)
	assert.Equal(t, []FeedTarget{{Path: "/rss.xml", Type: "rss2", Collection: "posts"}}, cfg.Feeds)
	assert.Equal(t, []string{"posts"}, cfg.SitemapCollections)
	assert.Equal(t, "Welcome to my blog. I write about technology and coding.", cfg.Description)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
