// Package newswire provides a public API for embedding the article
// discovery pipeline as a library.
//
// Example usage:
//
//	p, err := newswire.New(
//	    newswire.WithSites("https://www.anthropic.com/news"),
//	    newswire.WithDataDir("./data"),
//	    newswire.WithMaxArticlesPerSite(10),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close(context.Background())
//
//	records, err := p.Discover(context.Background())
package newswire

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/pgherardini/ainewswire/internal/config"
	"github.com/pgherardini/ainewswire/internal/discovery"
	"github.com/pgherardini/ainewswire/internal/fetcher"
	"github.com/pgherardini/ainewswire/internal/observability"
	"github.com/pgherardini/ainewswire/internal/sites"
	"github.com/pgherardini/ainewswire/internal/store"
	"github.com/pgherardini/ainewswire/internal/types"
)

// Record describes one archived article.
type Record = types.Record

// Option configures a Pipeline.
type Option func(*config.Config)

// WithSites sets the listing pages to scrape.
func WithSites(urls ...string) Option {
	return func(c *config.Config) { c.Search.Web.Sites = urls }
}

// WithMaxArticlesPerSite caps stub extraction per listing page.
func WithMaxArticlesPerSite(n int) Option {
	return func(c *config.Config) { c.Search.MaxArticlesPerSite = n }
}

// WithDataDir sets the folder holding the record file and artifacts.
func WithDataDir(path string) Option {
	return func(c *config.Config) { c.DB.FolderPath = path }
}

// WithTimeout sets the per-navigation page load timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config.Config) { c.Search.Timeout = d }
}

// WithWaitTime sets the post-load render wait.
func WithWaitTime(d time.Duration) Option {
	return func(c *config.Config) { c.Search.WaitTime = d }
}

// WithUserAgent sets a custom User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *config.Config) { c.Fetcher.UserAgent = ua }
}

// WithMongoMirror enables mirroring new records to MongoDB.
func WithMongoMirror(uri, database, collection string) Option {
	return func(c *config.Config) {
		c.DB.Mongo.Enabled = true
		c.DB.Mongo.URI = uri
		c.DB.Mongo.Database = database
		c.DB.Mongo.Collection = collection
	}
}

// WithVerbose enables debug-level logging.
func WithVerbose() Option {
	return func(c *config.Config) { c.Logging.Level = "debug" }
}

// Pipeline is the high-level API for running article discovery.
type Pipeline struct {
	cfg     *config.Config
	logger  *slog.Logger
	db      *store.Store
	metrics *observability.Metrics
}

// New creates a Pipeline with the given options and opens its record
// store.
func New(opts ...Option) (*Pipeline, error) {
	cfg := config.DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	metrics := observability.NewMetrics(logger)

	httpClient := fetcher.NewClient(cfg, logger)
	artifacts := store.NewArtifactStore(store.DocsPath(cfg.DB.FolderPath), httpClient, logger,
		store.WithDownloadCounter(&metrics.ArtifactsDownloaded))

	var storeOpts []store.Option
	if cfg.DB.Mongo.Enabled {
		mirror, err := store.NewMongoMirror(cfg.DB.Mongo.URI, cfg.DB.Mongo.Database, cfg.DB.Mongo.Collection, logger)
		if err != nil {
			return nil, err
		}
		storeOpts = append(storeOpts, store.WithMirror(mirror))
	}

	db, err := store.Open(cfg.DB.FolderPath, artifacts, logger, storeOpts...)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		metrics: metrics,
	}, nil
}

// Discover runs one full discovery cycle and returns the records added
// by it.
func (p *Pipeline) Discover(ctx context.Context) ([]Record, error) {
	newRenderer := func() (discovery.Renderer, error) {
		return fetcher.NewBrowser(p.cfg, p.logger)
	}

	orch := discovery.New(p.cfg, sites.NewRegistry(), p.db, newRenderer, p.metrics, p.logger)
	if _, err := orch.Run(ctx); err != nil {
		return nil, err
	}
	return p.db.NewArticles(), nil
}

// Articles returns every archived record in insertion order.
func (p *Pipeline) Articles() []Record {
	return p.db.AllArticles()
}

// Stats returns pipeline counters from the most recent run.
func (p *Pipeline) Stats() map[string]int64 {
	return p.metrics.Snapshot()
}

// Close releases the record store's backends.
func (p *Pipeline) Close(ctx context.Context) error {
	return p.db.Close(ctx)
}
