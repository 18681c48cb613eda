package observability

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
)

// Metrics tracks operational counters for the discovery pipeline.
type Metrics struct {
	SitesScraped atomic.Int64
	SitesFailed  atomic.Int64

	StubsDiscovered atomic.Int64
	StubsKnown      atomic.Int64

	ArticlesFetched     atomic.Int64
	ArticleFetchMisses  atomic.Int64
	ArticlesStored      atomic.Int64
	ArtifactsDownloaded atomic.Int64

	logger *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		logger: logger.With("component", "metrics"),
	}
}

// ServeHTTP serves metrics in Prometheus text exposition format.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	metrics := []struct {
		name  string
		help  string
		value int64
	}{
		{"newswire_sites_scraped_total", "Total listing pages scraped", m.SitesScraped.Load()},
		{"newswire_sites_failed_total", "Total listing scrapes that failed", m.SitesFailed.Load()},
		{"newswire_stubs_discovered_total", "Total article stubs discovered", m.StubsDiscovered.Load()},
		{"newswire_stubs_known_total", "Total stubs dropped as already known", m.StubsKnown.Load()},
		{"newswire_articles_fetched_total", "Total article bodies fetched", m.ArticlesFetched.Load()},
		{"newswire_article_fetch_misses_total", "Total article pages with no matching content", m.ArticleFetchMisses.Load()},
		{"newswire_articles_stored_total", "Total new records persisted", m.ArticlesStored.Load()},
		{"newswire_artifacts_downloaded_total", "Total PDF artifacts downloaded", m.ArtifactsDownloaded.Load()},
	}

	for _, metric := range metrics {
		fmt.Fprintf(w, "# HELP %s %s\n", metric.name, metric.help)
		fmt.Fprintf(w, "# TYPE %s counter\n", metric.name)
		fmt.Fprintf(w, "%s %d\n", metric.name, metric.value)
	}
}

// StartServer starts the metrics HTTP server.
func (m *Metrics) StartServer(port int, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, m)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})

	addr := fmt.Sprintf(":%d", port)
	m.logger.Info("metrics server starting", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			m.logger.Error("metrics server error", "error", err)
		}
	}()

	return nil
}

// Snapshot returns all metrics as a map.
func (m *Metrics) Snapshot() map[string]int64 {
	return map[string]int64{
		"sites_scraped":        m.SitesScraped.Load(),
		"sites_failed":         m.SitesFailed.Load(),
		"stubs_discovered":     m.StubsDiscovered.Load(),
		"stubs_known":          m.StubsKnown.Load(),
		"articles_fetched":     m.ArticlesFetched.Load(),
		"article_fetch_misses": m.ArticleFetchMisses.Load(),
		"articles_stored":      m.ArticlesStored.Load(),
		"artifacts_downloaded": m.ArtifactsDownloaded.Load(),
	}
}
