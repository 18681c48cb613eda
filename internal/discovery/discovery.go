// Package discovery drives the article pipeline: render each
// configured listing page, dispatch to the extraction strategy the
// site's rule names, drop already-known articles, fetch full text per
// unique stub, and persist the batch.
package discovery

import (
	"context"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"github.com/pgherardini/ainewswire/internal/config"
	"github.com/pgherardini/ainewswire/internal/extract"
	"github.com/pgherardini/ainewswire/internal/observability"
	"github.com/pgherardini/ainewswire/internal/sites"
	"github.com/pgherardini/ainewswire/internal/types"
)

// Renderer produces a parsed document for a URL.
type Renderer interface {
	Render(ctx context.Context, url string) (*goquery.Document, error)
	Close() error
}

// RendererFactory opens a renderer. The orchestrator acquires one per
// phase (listing pass, text-fetch pass) and releases it when the phase
// completes, never holding it across the whole run.
type RendererFactory func() (Renderer, error)

// RecordStore is the subset of the record store the pipeline needs.
type RecordStore interface {
	IsKnown(url string) bool
	Update(ctx context.Context, stubs []*types.Stub) (int, error)
}

// Orchestrator runs the discovery pipeline sequentially: sites one at a
// time, articles within a site one at a time, text fetches one at a
// time after the full discovery pass.
type Orchestrator struct {
	cfg         *config.Config
	registry    *sites.Registry
	store       RecordStore
	newRenderer RendererFactory
	extractor   *extract.LinkExtractor
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// New creates an Orchestrator.
func New(cfg *config.Config, registry *sites.Registry, store RecordStore, newRenderer RendererFactory, metrics *observability.Metrics, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:         cfg,
		registry:    registry,
		store:       store,
		newRenderer: newRenderer,
		extractor:   extract.NewLinkExtractor(cfg.Search.MaxArticlesPerSite, logger),
		metrics:     metrics,
		logger:      logger.With("component", "discovery"),
	}
}

// Run executes one full discovery cycle and returns the new articles.
func (o *Orchestrator) Run(ctx context.Context) ([]*types.Stub, error) {
	websites := o.cfg.Search.Web.Sites
	if len(websites) == 0 {
		return nil, types.ErrNoWebsites
	}

	o.logger.Info("scraping websites for articles", "count", len(websites))

	stubs, err := o.scrapeListings(ctx, websites)
	if err != nil {
		return nil, err
	}

	stubs = dedupeByURL(stubs)
	o.metrics.StubsDiscovered.Add(int64(len(stubs)))
	o.logger.Info("discovery pass complete", "unique_articles", len(stubs))

	if len(stubs) > 0 {
		if err := o.fetchTexts(ctx, stubs); err != nil {
			return nil, err
		}
	}

	added, err := o.store.Update(ctx, stubs)
	if err != nil {
		return nil, err
	}
	o.metrics.ArticlesStored.Add(int64(added))

	o.logger.Info("discovery cycle finished", "new_articles", added)
	return stubs, nil
}

// scrapeListings renders each site's listing page and extracts stubs.
// One site's failure is logged and skipped; results already collected
// from other sites are unaffected.
func (o *Orchestrator) scrapeListings(ctx context.Context, websites []string) ([]*types.Stub, error) {
	renderer, err := o.newRenderer()
	if err != nil {
		return nil, err
	}
	defer renderer.Close()

	known := func(url string) bool {
		if o.store.IsKnown(url) {
			o.metrics.StubsKnown.Add(1)
			return true
		}
		return false
	}

	var stubs []*types.Stub
	for _, website := range websites {
		rule := o.registry.ForURL(website)
		if rule == nil {
			o.logger.Warn("skipping site", "url", website, "error", types.ErrUnknownSite)
			continue
		}

		o.logger.Info("scraping website", "url", website)

		doc, err := renderer.Render(ctx, website)
		if err != nil {
			o.metrics.SitesFailed.Add(1)
			o.logger.Error("site scrape failed, continuing", "url", website, "error", err)
			continue
		}

		var siteStubs []*types.Stub
		switch rule.Strategy {
		case sites.StrategyHeaderFeatured:
			siteStubs = o.extractor.ExtractHeaderFeatured(doc, rule, known)
		case sites.StrategyAbstractList:
			siteStubs = o.extractor.ExtractAbstractList(doc, rule, known)
		default:
			siteStubs = o.extractor.Extract(doc, rule, known)
		}

		o.metrics.SitesScraped.Add(1)
		stubs = append(stubs, siteStubs...)
	}

	return stubs, nil
}

// fetchTexts renders each article page and fills in the body text. A
// missing content element or failed navigation degrades to a stub
// without text, never aborts the batch.
func (o *Orchestrator) fetchTexts(ctx context.Context, stubs []*types.Stub) error {
	renderer, err := o.newRenderer()
	if err != nil {
		return err
	}
	defer renderer.Close()

	for _, stub := range stubs {
		rule := o.registry.ForURL(stub.URL)
		if rule == nil || rule.ContentTag == "" {
			continue
		}

		o.logger.Info("scraping article", "url", stub.URL)

		doc, err := renderer.Render(ctx, stub.URL)
		if err != nil {
			o.logger.Error("article fetch failed, continuing", "url", stub.URL, "error", err)
			continue
		}

		text, ok := extract.Text(doc, rule.ContentTag, rule.ContentClass)
		if !ok {
			o.metrics.ArticleFetchMisses.Add(1)
			o.logger.Warn("no content element on article page",
				"url", stub.URL, "site", rule.Name, "error", types.ErrNoContent)
			continue
		}

		stub.Text = text
		o.metrics.ArticlesFetched.Add(1)
	}

	return nil
}

// dedupeByURL removes same-URL duplicates, keeping first occurrence.
func dedupeByURL(stubs []*types.Stub) []*types.Stub {
	seen := make(map[string]bool, len(stubs))
	var out []*types.Stub
	for _, s := range stubs {
		if s.URL == "" || seen[s.URL] {
			continue
		}
		seen[s.URL] = true
		out = append(out, s)
	}
	return out
}
