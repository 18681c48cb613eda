package extract

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pgherardini/ainewswire/internal/sites"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func mustDoc(t testing.TB, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func newTestExtractor(maxPerSite int) *LinkExtractor {
	e := NewLinkExtractor(maxPerSite, testLogger)
	e.now = func() time.Time { return testNow }
	return e
}

func notKnown(string) bool { return false }

const listingHTML = `<!DOCTYPE html>
<html><body>
<div class="cards">
  <a class="news-card" href="/news/alpha">
    <h3 class="news-heading">Alpha Launch</h3>
    <time datetime="2024-03-01T09:00:00Z">March 1</time>
  </a>
  <a class="news-card promoted" href="./news/beta">
    <h3 class="news-heading">Beta Results</h3>
    <time datetime="2024-02-20">February 20</time>
  </a>
  <a class="news-card" href="news/gamma">
    <h3 class="news-heading">Gamma Report</h3>
  </a>
  <a class="unrelated" href="/not-an-article">Sidebar</a>
</div>
</body></html>`

// --- Generic Extraction Tests ---

func TestExtractGeneric(t *testing.T) {
	rule := &sites.Rule{
		Name:         "example",
		BaseURL:      "https://example.com",
		ArticleTag:   "a",
		ArticleClass: sites.Exact("news-card"),
		TitleTag:     "h3",
		TitleClass:   sites.Exact("news-heading"),
		DateTag:      "time",
		DateAttr:     "datetime",
	}

	e := newTestExtractor(20)
	stubs := e.Extract(mustDoc(t, listingHTML), rule, notKnown)

	if len(stubs) != 3 {
		t.Fatalf("expected 3 stubs, got %d", len(stubs))
	}

	wantURLs := []string{
		"https://example.com/news/alpha",
		"https://example.com/news/beta",
		"https://example.com/news/gamma",
	}
	wantDates := []string{"2024-03-01", "2024-02-20", ""}

	for i, stub := range stubs {
		if stub.URL != wantURLs[i] {
			t.Errorf("stub %d: URL = %q, want %q", i, stub.URL, wantURLs[i])
		}
		if stub.PublishDate != wantDates[i] {
			t.Errorf("stub %d: PublishDate = %q, want %q", i, stub.PublishDate, wantDates[i])
		}
		if stub.Source != "example" {
			t.Errorf("stub %d: Source = %q, want %q", i, stub.Source, "example")
		}
	}

	if stubs[0].Title != "Alpha Launch" {
		t.Errorf("Title = %q, want %q", stubs[0].Title, "Alpha Launch")
	}
}

func TestExtractCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&b, `<a class="news-card" href="/news/%d"><h3 class="news-heading">Post %d</h3></a>`, i, i)
	}
	b.WriteString("</body></html>")

	rule := &sites.Rule{
		Name:         "example",
		BaseURL:      "https://example.com",
		ArticleTag:   "a",
		ArticleClass: sites.Exact("news-card"),
		TitleTag:     "h3",
		TitleClass:   sites.Exact("news-heading"),
	}

	e := newTestExtractor(20)
	stubs := e.Extract(mustDoc(t, b.String()), rule, notKnown)

	if len(stubs) != 20 {
		t.Fatalf("expected 20 stubs with cap 20, got %d", len(stubs))
	}
	if stubs[0].URL != "https://example.com/news/0" {
		t.Errorf("cap must keep document order, first URL = %q", stubs[0].URL)
	}
}

func TestExtractKnownFilter(t *testing.T) {
	rule := &sites.Rule{
		Name:         "example",
		BaseURL:      "https://example.com",
		ArticleTag:   "a",
		ArticleClass: sites.Exact("news-card"),
		TitleTag:     "h3",
		TitleClass:   sites.Exact("news-heading"),
	}

	known := func(url string) bool {
		return url == "https://example.com/news/alpha"
	}

	e := newTestExtractor(20)
	stubs := e.Extract(mustDoc(t, listingHTML), rule, known)

	if len(stubs) != 2 {
		t.Fatalf("expected 2 stubs after known filter, got %d", len(stubs))
	}
	for _, stub := range stubs {
		if stub.URL == "https://example.com/news/alpha" {
			t.Error("known URL must not be re-extracted")
		}
	}
}

func TestExtractWrapperAlternatives(t *testing.T) {
	const body = `<html><body>
<div class="group-b"><a class="entry-link" href="/b">B Story</a></div>
<div class="group-a"><a class="entry-link" href="/a">A Story</a></div>
<div class="group-a"><span>no link here</span></div>
</body></html>`

	rule := &sites.Rule{
		Name:         "example",
		BaseURL:      "https://example.com",
		ArticleTag:   "a",
		ArticleClass: sites.Exact("entry-link"),
		TitleTag:     "a",
		TitleClass:   sites.Exact("entry-link"),
		WrapperTag:   "div",
		WrapperClass: sites.AnyOf("group-a", "group-b"),
	}

	e := newTestExtractor(20)
	stubs := e.Extract(mustDoc(t, body), rule, notKnown)

	// Both wrapper classes match; the link-less wrapper is skipped.
	if len(stubs) != 2 {
		t.Fatalf("expected 2 stubs, got %d", len(stubs))
	}
	if stubs[0].URL != "https://example.com/b" || stubs[1].URL != "https://example.com/a" {
		t.Errorf("wrapper matching must keep document order, got %q then %q", stubs[0].URL, stubs[1].URL)
	}
}

func TestExtractScope(t *testing.T) {
	const body = `<html><body>
<div class="main-list">
  <a class="news-card" href="/in-scope"><h3 class="news-heading">Inside</h3></a>
</div>
<div class="footer">
  <a class="news-card" href="/out-of-scope"><h3 class="news-heading">Outside</h3></a>
</div>
</body></html>`

	rule := &sites.Rule{
		Name:         "example",
		BaseURL:      "https://example.com",
		ScopeTag:     "div",
		ScopeClass:   sites.Exact("main-list"),
		ArticleTag:   "a",
		ArticleClass: sites.Exact("news-card"),
		TitleTag:     "h3",
		TitleClass:   sites.Exact("news-heading"),
	}

	e := newTestExtractor(20)

	t.Run("LimitsToScope", func(t *testing.T) {
		stubs := e.Extract(mustDoc(t, body), rule, notKnown)
		if len(stubs) != 1 {
			t.Fatalf("expected 1 stub, got %d", len(stubs))
		}
		if stubs[0].URL != "https://example.com/in-scope" {
			t.Errorf("URL = %q, want in-scope link", stubs[0].URL)
		}
	})

	t.Run("MissingScopeYieldsNothing", func(t *testing.T) {
		missing := *rule
		missing.ScopeClass = sites.Exact("vanished")
		if stubs := e.Extract(mustDoc(t, body), &missing, notKnown); stubs != nil {
			t.Fatalf("expected nil on missing scope, got %d stubs", len(stubs))
		}
	})

	t.Run("ScopeByID", func(t *testing.T) {
		const idBody = `<html><body>
<div id="news-section"><a href="/x"><h3>X</h3></a></div>
<div id="other"><a href="/y"><h3>Y</h3></a></div>
</body></html>`
		idRule := &sites.Rule{
			Name:       "example",
			BaseURL:    "https://example.com",
			ScopeTag:   "div",
			ScopeID:    "news-section",
			ArticleTag: "a",
			TitleTag:   "h3",
		}
		stubs := e.Extract(mustDoc(t, idBody), idRule, notKnown)
		if len(stubs) != 1 || stubs[0].URL != "https://example.com/x" {
			t.Fatalf("expected only the id-scoped link, got %v", stubs)
		}
	})
}

func TestExtractDateIndex(t *testing.T) {
	const body = `<html><body>
<div id="news-section">
  <div class="card-fade">
    <a href="/news/one"><h3>One</h3></a>
    <span>Research</span>
    <span>Mar 5, 2024</span>
  </div>
</div>
</body></html>`

	rule := &sites.Rule{
		Name:         "example",
		BaseURL:      "https://example.com",
		ScopeTag:     "div",
		ScopeID:      "news-section",
		ArticleTag:   "a",
		TitleTag:     "h3",
		DateTag:      "span",
		DateIndex:    1,
		WrapperTag:   "div",
		WrapperClass: sites.Exact("card-fade"),
	}

	e := newTestExtractor(20)
	stubs := e.Extract(mustDoc(t, body), rule, notKnown)

	if len(stubs) != 1 {
		t.Fatalf("expected 1 stub, got %d", len(stubs))
	}
	if stubs[0].PublishDate != "2024-03-05" {
		t.Errorf("PublishDate = %q, want %q (second span, parsed as text)", stubs[0].PublishDate, "2024-03-05")
	}
}

func TestExtractDateIndexOutOfRange(t *testing.T) {
	const body = `<html><body>
<div class="card-fade"><a href="/one"><h3>One</h3></a><span>only one span</span></div>
</body></html>`

	rule := &sites.Rule{
		Name:         "example",
		BaseURL:      "https://example.com",
		ArticleTag:   "a",
		TitleTag:     "h3",
		DateTag:      "span",
		DateIndex:    1,
		WrapperTag:   "div",
		WrapperClass: sites.Exact("card-fade"),
	}

	e := newTestExtractor(20)
	stubs := e.Extract(mustDoc(t, body), rule, notKnown)

	if len(stubs) != 1 {
		t.Fatalf("expected 1 stub, got %d", len(stubs))
	}
	if stubs[0].PublishDate != "" {
		t.Errorf("PublishDate = %q, want empty when index exceeds matches", stubs[0].PublishDate)
	}
}

// --- Href Normalization Tests ---

func TestNormalizeHref(t *testing.T) {
	const base = "https://example.com"

	cases := []struct {
		name string
		href string
		want string
	}{
		{"absolute https", "https://other.com/post", "https://other.com/post"},
		{"absolute http", "http://other.com/post", "http://other.com/post"},
		{"rooted relative", "/a/b", "https://example.com/a/b"},
		{"dot relative", "./c", "https://example.com/c"},
		{"bare relative", "d", "https://example.com/d"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeHref(base, tc.href); got != tc.want {
				t.Errorf("NormalizeHref(%q) = %q, want %q", tc.href, got, tc.want)
			}
		})
	}
}

// --- Benchmarks ---

func BenchmarkExtract(b *testing.B) {
	rule := &sites.Rule{
		Name:         "example",
		BaseURL:      "https://example.com",
		ArticleTag:   "a",
		ArticleClass: sites.Exact("news-card"),
		TitleTag:     "h3",
		TitleClass:   sites.Exact("news-heading"),
		DateTag:      "time",
		DateAttr:     "datetime",
	}
	doc := mustDoc(b, listingHTML)
	e := newTestExtractor(20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Extract(doc, rule, notKnown)
	}
}
