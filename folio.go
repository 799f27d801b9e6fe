// Package folio builds the syndication surface of a content-driven blog:
// RSS, Atom and JSON feeds, a sitemap and robots.txt. It can also serve the
// generated site with per-request theme selection.
package folio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/tdewolff/minify/v2"
	"go.uber.org/zap"

	"github.com/elianvancutsem/folio/content"
	"github.com/elianvancutsem/folio/feed"
	"github.com/elianvancutsem/folio/log"
	"github.com/elianvancutsem/folio/sitemap"
)

// App is the central folio application. It wires together the content
// store, the post cache, the generators and the HTTP server.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *content.Store
	Cache  *feed.PostCache

	fs        afero.Fs
	contentFs afero.Fs
	minifier  *minify.M
	log       *zap.SugaredLogger
}

// New creates a new folio App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		fs:        afero.NewOsFs(),
		contentFs: afero.NewOsFs(),
		log:       log.Named("folio"),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.Config.Minify {
		a.minifier = newMinifier()
	}
	return a
}

func (a *App) open() error {
	if a.Store == nil {
		store, err := content.NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("folio: init store: %w", err)
		}
		a.Store = store
	}
	if a.Cache == nil {
		a.Cache = feed.NewPostCache(feed.FromStore(a.Store), a.Config.PostCacheTTL)
	}
	return nil
}

// Index loads every document under ContentDir and replaces the store's
// contents with them.
func (a *App) Index(ctx context.Context) error {
	if err := a.open(); err != nil {
		return err
	}
	records, err := content.NewLoader(a.contentFs, a.Config.ContentDir).Load(ctx)
	if err != nil {
		return fmt.Errorf("folio: load content: %w", err)
	}
	if err := a.Store.Replace(ctx, records); err != nil {
		return fmt.Errorf("folio: index content: %w", err)
	}
	a.Cache.Invalidate()
	a.log.Infow("indexed content", "dir", a.Config.ContentDir, "records", len(records))
	return nil
}

// Build indexes the content, then writes every configured feed, sitemap.xml
// and robots.txt to OutputDir. The first error aborts the build.
func (a *App) Build(ctx context.Context) error {
	start := time.Now()
	if err := a.Index(ctx); err != nil {
		return err
	}
	if err := a.fs.MkdirAll(a.Config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("folio: create output dir: %w", err)
	}
	missing, err := a.missingCollections(ctx)
	if err != nil {
		return fmt.Errorf("folio: list collections: %w", err)
	}
	for _, c := range missing {
		a.log.Warnw("configured collection has no documents", "collection", c)
	}

	builder := feed.NewBuilder(a.Config.feedConfig(), a.Cache)
	for _, target := range a.Config.Feeds {
		if err := a.buildFeed(ctx, builder, target); err != nil {
			return fmt.Errorf("folio: feed %s: %w", target.Path, err)
		}
	}
	if err := a.buildSitemap(ctx); err != nil {
		return fmt.Errorf("folio: sitemap: %w", err)
	}
	if err := a.buildRobots(); err != nil {
		return fmt.Errorf("folio: robots: %w", err)
	}

	a.log.Infow("build finished", "output", a.Config.OutputDir, "feeds", len(a.Config.Feeds), "took", time.Since(start))
	return nil
}

// missingCollections returns the feed and sitemap collections that hold no
// indexed documents, in configuration order.
func (a *App) missingCollections(ctx context.Context) ([]string, error) {
	indexed, err := a.Store.Collections(ctx)
	if err != nil {
		return nil, err
	}
	configured := append(lo.Map(a.Config.Feeds, func(t FeedTarget, _ int) string {
		return t.Collection
	}), a.Config.SitemapCollections...)
	return lo.Without(lo.Uniq(configured), indexed...), nil
}

// Record indexes the content and returns the document at path, as feeds
// and the sitemap see it.
func (a *App) Record(ctx context.Context, path string) (content.Record, error) {
	if err := a.Index(ctx); err != nil {
		return content.Record{}, err
	}
	return a.Store.Get(ctx, path)
}

func (a *App) buildFeed(ctx context.Context, builder *feed.Builder, target FeedTarget) error {
	format, err := feed.ParseFormat(target.Type)
	if err != nil {
		return err
	}
	doc := &feed.Document{}
	if err := builder.Build(ctx, doc, target.Collection); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := feed.Write(&buf, doc, format); err != nil {
		return err
	}
	a.log.Debugw("wrote feed", "path", target.Path, "type", format, "items", len(doc.Items))
	return a.writeOutput(target.Path, format.ContentType(), buf.Bytes())
}

func (a *App) buildSitemap(ctx context.Context) error {
	routes, err := sitemap.NewEnumerator(sitemap.FromStore(a.Store)).Routes(ctx, a.Config.SitemapCollections)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := sitemap.Write(&buf, a.Config.Hostname, routes, !a.Config.PlainSitemapURLs); err != nil {
		return err
	}
	return a.writeOutput("sitemap.xml", "application/xml", buf.Bytes())
}

func (a *App) buildRobots() error {
	var buf bytes.Buffer
	err := sitemap.WriteRobots(&buf, sitemap.Robots{
		UserAgent: "*",
		Disallow:  a.Config.RobotsDisallow,
		Sitemap:   a.Config.Hostname + "/sitemap.xml",
		Host:      a.Config.Hostname + "/",
	})
	if err != nil {
		return err
	}
	return a.writeOutput("robots.txt", "text/plain", buf.Bytes())
}

func (a *App) writeOutput(name, mediatype string, data []byte) error {
	if a.minifier != nil {
		small, err := a.minifier.Bytes(mediatype, data)
		switch {
		case err == nil:
			data = small
		case !errors.Is(err, minify.ErrNotExist):
			return fmt.Errorf("minify %s: %w", name, err)
		}
	}
	path := filepath.Join(a.Config.OutputDir, filepath.FromSlash(name))
	if err := a.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(a.fs, path, data, 0o644)
}

// Serve starts the HTTP server over OutputDir and blocks until ctx is done
// or the server fails.
func (a *App) Serve(ctx context.Context) error {
	a.setupMiddleware()
	a.setupRoutes()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.Echo.Shutdown(shutdownCtx)
	}()

	a.log.Infow("starting server", "addr", a.Config.Addr, "dir", a.Config.OutputDir)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
