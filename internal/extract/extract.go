// Package extract turns rendered listing and article pages into
// normalized article stubs, driven by the per-site rule table.
package extract

import (
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pgherardini/ainewswire/internal/sites"
	"github.com/pgherardini/ainewswire/internal/types"
)

// KnownFunc reports whether an article URL is already persisted. Stubs
// whose URL is known are dropped at extraction time, not re-filtered
// later.
type KnownFunc func(url string) bool

// LinkExtractor produces article stubs from listing pages.
type LinkExtractor struct {
	maxPerSite int
	now        func() time.Time
	logger     *slog.Logger
}

// NewLinkExtractor creates a LinkExtractor capped at maxPerSite stubs
// per listing page.
func NewLinkExtractor(maxPerSite int, logger *slog.Logger) *LinkExtractor {
	return &LinkExtractor{
		maxPerSite: maxPerSite,
		now:        time.Now,
		logger:     logger.With("component", "link_extractor"),
	}
}

// Extract runs the generic repeated-card extraction over a listing
// document. A container lacking a resolvable href is skipped: some
// cards are decorative. Missing titles and dates degrade to empty
// fields, never to errors.
func (e *LinkExtractor) Extract(doc *goquery.Document, rule *sites.Rule, known KnownFunc) []*types.Stub {
	scope := scopeSelection(doc, rule)
	if scope == nil {
		e.logger.Warn("listing scope not found", "site", rule.Name)
		return nil
	}

	// The candidate container is the wrapper when one is declared,
	// otherwise the link element itself.
	containerTag := rule.ArticleTag
	containerClass := rule.ArticleClass
	if rule.WrapperTag != "" {
		containerTag = rule.WrapperTag
		containerClass = rule.WrapperClass
	}

	containers := findAll(scope, containerTag, containerClass)

	// Excess candidates beyond the cap are dropped silently. This is an
	// intentional rate limit on scrape volume per site.
	n := len(containers)
	if n > e.maxPerSite {
		n = e.maxPerSite
	}

	e.logger.Info("extracting articles", "count", n, "site", rule.Name, "source_url", rule.BaseURL)

	var stubs []*types.Stub
	for _, container := range containers[:n] {
		stub := e.extractCard(container, rule)
		if stub == nil || known(stub.URL) {
			continue
		}
		stubs = append(stubs, stub)
	}

	return stubs
}

// extractCard resolves one candidate container into a stub, or nil when
// the card has no resolvable link.
func (e *LinkExtractor) extractCard(container *goquery.Selection, rule *sites.Rule) *types.Stub {
	link := container
	if rule.WrapperTag != "" {
		link = findFirst(container, rule.ArticleTag, rule.ArticleClass)
		if link == nil {
			return nil
		}
	}

	href, ok := link.Attr("href")
	if !ok || href == "" {
		return nil
	}

	stub := &types.Stub{
		URL:       NormalizeHref(rule.BaseURL, href),
		Source:    rule.Name,
		SourceURL: rule.BaseURL,
		FetchedAt: e.now(),
	}

	if title := findFirst(container, rule.TitleTag, rule.TitleClass); title != nil {
		stub.Title = strings.TrimSpace(title.Text())
	}

	stub.PublishDate = e.resolveDate(container, rule)

	return stub
}

// resolveDate locates the date node at the rule's index and reads it
// either from a machine-readable attribute or from visible text. Nodes
// at index > 0 carry a different class than the one used to locate them
// and are always human-readable, so the attribute path never applies.
func (e *LinkExtractor) resolveDate(container *goquery.Selection, rule *sites.Rule) string {
	if rule.DateTag == "" {
		return ""
	}

	nodes := findAll(container, rule.DateTag, rule.DateClass)
	if rule.DateIndex >= len(nodes) {
		return ""
	}
	node := nodes[rule.DateIndex]

	if rule.DateIndex == 0 && rule.DateReadClass().IsZero() {
		if rule.DateAttr == "" {
			return ""
		}
		v, ok := node.Attr(rule.DateAttr)
		if !ok {
			return ""
		}
		return ParseDateAttr(v)
	}

	return ParseDate(node.Text(), e.now())
}

// NormalizeHref resolves a listing href to an absolute URL. Hrefs
// without a scheme are treated as relative: a leading "." is stripped,
// a missing leading "/" is prepended, and the result is concatenated
// onto the site's base URL.
func NormalizeHref(baseURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, ".") {
		href = href[1:]
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return baseURL + href
}

// scopeSelection narrows extraction to the rule's listing container,
// or returns the whole document when none is configured. A missing
// scope element yields nil: the listing structure has changed and the
// site contributes nothing this run.
func scopeSelection(doc *goquery.Document, rule *sites.Rule) *goquery.Selection {
	if rule.ScopeID != "" {
		sel := doc.Find(rule.ScopeTag + "#" + rule.ScopeID).First()
		if sel.Length() == 0 {
			return nil
		}
		return sel
	}
	if rule.ScopeTag == "" {
		return doc.Selection
	}
	sel := findFirst(doc.Selection, rule.ScopeTag, rule.ScopeClass)
	if sel == nil {
		return nil
	}
	return sel
}

// findAll returns every descendant with the given tag whose class
// attribute satisfies the selector, in document order. Class names in
// the rule table contain characters that are not legal in CSS selector
// syntax, so matching is done on the class attribute directly.
func findAll(scope *goquery.Selection, tag string, class sites.Selector) []*goquery.Selection {
	var out []*goquery.Selection
	scope.Find(tag).Each(func(_ int, sel *goquery.Selection) {
		attr, _ := sel.Attr("class")
		if class.Matches(attr) {
			out = append(out, sel)
		}
	})
	return out
}

// findFirst returns the first descendant matching tag and selector.
// AnyOf alternatives are tried in declared order: the first class name
// with any match wins, even if a later alternative appears earlier in
// the document.
func findFirst(scope *goquery.Selection, tag string, class sites.Selector) *goquery.Selection {
	if alts := class.Alternatives(); len(alts) > 1 {
		for _, name := range alts {
			var found *goquery.Selection
			scope.Find(tag).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
				attr, _ := sel.Attr("class")
				if sites.MatchesOne(attr, name) {
					found = sel
					return false
				}
				return true
			})
			if found != nil {
				return found
			}
		}
		return nil
	}

	var found *goquery.Selection
	scope.Find(tag).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		attr, _ := sel.Attr("class")
		if class.Matches(attr) {
			found = sel
			return false
		}
		return true
	})
	return found
}
