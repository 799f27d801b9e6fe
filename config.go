package folio

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/elianvancutsem/folio/content"
	"github.com/elianvancutsem/folio/feed"
)

// FeedTarget is one feed file written by Build.
type FeedTarget struct {
	Path       string `mapstructure:"path"`
	Type       string `mapstructure:"type"`
	Collection string `mapstructure:"collection"`
}

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Hostname    string `mapstructure:"hostname"`    // Canonical origin, no trailing slash
	Title       string `mapstructure:"title"`       // Feed title
	Description string `mapstructure:"description"` // Feed description
	Image       string `mapstructure:"image"`       // Feed image URL
	TTL         int    `mapstructure:"ttl"`         // Feed TTL in minutes (default 30)

	AuthorName  string `mapstructure:"author_name"`
	AuthorEmail string `mapstructure:"author_email"`
	AuthorURL   string `mapstructure:"author_url"`

	Categories         []string     `mapstructure:"categories"`
	Feeds              []FeedTarget `mapstructure:"feeds"`
	SitemapCollections []string     `mapstructure:"sitemap_collections"`
	RobotsDisallow     []string     `mapstructure:"robots_disallow"`
	// PlainSitemapURLs drops the trailing slash from sitemap locations.
	PlainSitemapURLs bool `mapstructure:"plain_sitemap_urls"`

	ContentDir   string `mapstructure:"content_dir"`   // Source tree (default "content")
	OutputDir    string `mapstructure:"output_dir"`    // Generated files (default "dist")
	DatabasePath string `mapstructure:"database_path"` // SQLite index (default "data/content.db")
	Addr         string `mapstructure:"addr"`          // Listen address (default ":3000")

	Minify   bool `mapstructure:"minify"`   // Minify generated XML and JSON
	Sanitize bool `mapstructure:"sanitize"` // Sanitize rendered feed content

	PostCacheTTL time.Duration `mapstructure:"post_cache_ttl"` // 0 keeps posts for the process lifetime
}

func (c *SiteConfig) setDefaults() {
	if c.Hostname == "" {
		c.Hostname = "https://www.elian.codes"
	}
	c.Hostname = strings.TrimSuffix(c.Hostname, "/")
	if c.Title == "" {
		c.Title = "Elian Van Cutsem's blog"
	}
	if c.Description == "" {
		c.Description = "Welcome to my blog. I write about technology and coding."
	}
	if c.Image == "" {
		c.Image = "https://www.elian.codes/favicon.png"
	}
	if c.TTL == 0 {
		c.TTL = 30
	}
	if c.AuthorName == "" {
		c.AuthorName = "Elian Van Cutsem"
	}
	if c.AuthorEmail == "" {
		c.AuthorEmail = "elianvancutsem@gmail.com"
	}
	if c.AuthorURL == "" {
		c.AuthorURL = "http://www.elian.codes/"
	}
	if c.Categories == nil {
		c.Categories = feed.DefaultCategories
	}
	if c.Feeds == nil {
		c.Feeds = []FeedTarget{
			{Path: "/blog.xml", Type: string(feed.RSS2), Collection: "blog"},
			{Path: "/feed.json", Type: string(feed.JSON1), Collection: "blog"},
			{Path: "/feed.xml", Type: string(feed.Atom1), Collection: "blog"},
		}
	}
	if c.SitemapCollections == nil {
		c.SitemapCollections = []string{"blog", "projects"}
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/content.db"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
}

func (c SiteConfig) feedConfig() feed.Config {
	return feed.Config{
		Hostname: c.Hostname,
		Options: feed.Options{
			Title:       c.Title,
			Description: c.Description,
			Link:        c.Hostname + "/",
			TTL:         c.TTL,
			Image:       c.Image,
		},
		Categories: c.Categories,
		Contributor: feed.Person{
			Name:  c.AuthorName,
			Email: c.AuthorEmail,
			Link:  c.AuthorURL,
		},
		Sanitize: c.Sanitize,
	}
}

var envKeys = []string{
	"hostname", "title", "description", "image", "ttl",
	"author_name", "author_email", "author_url",
	"plain_sitemap_urls", "content_dir", "output_dir", "database_path", "addr",
	"minify", "sanitize", "post_cache_ttl",
}

// LoadConfig reads folio.yaml from path, or from the working directory when
// path is empty, and overlays FOLIO_* environment variables. A missing
// folio.yaml in the working directory is not an error.
func LoadConfig(path string) (SiteConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("folio")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("FOLIO")
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return SiteConfig{}, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return SiteConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithFs sets the filesystem generated files are written to and served from.
func WithFs(fs afero.Fs) Option {
	return func(a *App) {
		a.fs = fs
	}
}

// WithContentFs sets the filesystem content is loaded from.
func WithContentFs(fs afero.Fs) Option {
	return func(a *App) {
		a.contentFs = fs
	}
}

// WithStore uses an already opened store instead of DatabasePath.
func WithStore(s *content.Store) Option {
	return func(a *App) {
		a.Store = s
	}
}
