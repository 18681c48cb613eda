// Package sites holds the per-site extraction rule table. Each site's
// listing page is normalized into article stubs through a single generic
// extractor parameterized by these rules; sites whose listing does not
// follow the repeated-card shape carry a strategy tag selecting a
// special-case extractor instead.
package sites

import "strings"

// Strategy selects the extraction strategy for a site's listing page.
type Strategy string

const (
	// StrategyGeneric is the repeated-card listing shape.
	StrategyGeneric Strategy = "generic"

	// StrategyHeaderFeatured is a listing with one featured article in a
	// distinctive container outside the regular card grid.
	StrategyHeaderFeatured Strategy = "header_featured"

	// StrategyAbstractList is a definition-list abstract index grouped
	// under dated section headings.
	StrategyAbstractList Strategy = "abstract_list"
)

// Rule holds the extraction parameters for one site.
type Rule struct {
	// Name is the site identifier recorded on every stub.
	Name string

	// BaseURL is the site's base/listing URL; relative hrefs are
	// resolved against it.
	BaseURL string

	Strategy Strategy

	// Scope narrows extraction to the first matching element of the
	// listing page. Zero values mean the whole document.
	ScopeTag   string
	ScopeClass Selector
	ScopeID    string

	// ArticleTag/ArticleClass identify the link element of a card.
	ArticleTag   string
	ArticleClass Selector

	// WrapperTag/WrapperClass, when set, identify an outer card
	// container searched for the link element.
	WrapperTag   string
	WrapperClass Selector

	TitleTag   string
	TitleClass Selector

	// DateTag locates date nodes within a card; DateClass filters them.
	// DateAttr, when set, names a machine-readable timestamp attribute
	// read directly instead of parsing visible text.
	DateTag   string
	DateClass Selector
	DateAttr  string

	// DateIndex selects which matching date node to read (default 0).
	DateIndex int

	// SecondaryDateClass is consulted instead of DateClass when reading
	// the node at DateIndex > 0: those positions carry a differently
	// classed, human-readable date, so the attribute path never applies
	// to them.
	SecondaryDateClass Selector

	// Header* describe the featured article of header_featured sites.
	HeaderTag       string
	HeaderClass     Selector
	HeaderLinkClass Selector
	HeaderDateTag   string
	HeaderDateClass Selector

	// ContentTag/ContentClass select the article body on detail pages.
	ContentTag   string
	ContentClass Selector
}

// DateReadClass returns the class filter consulted when deciding how to
// read the located date node.
func (r *Rule) DateReadClass() Selector {
	if r.DateIndex > 0 && !r.SecondaryDateClass.IsZero() {
		return r.SecondaryDateClass
	}
	return r.DateClass
}

// Registry maps site identifiers to their rules.
type Registry struct {
	rules []*Rule
}

// NewRegistry returns the built-in rule table.
func NewRegistry() *Registry {
	return &Registry{rules: builtinRules()}
}

// ForURL returns the rule whose base URL is a prefix of (or contained
// in) the given URL, or nil when no site matches.
func (reg *Registry) ForURL(url string) *Rule {
	for _, r := range reg.rules {
		if strings.Contains(url, r.BaseURL) {
			return r
		}
	}
	return nil
}

// ByName returns the rule for a site identifier, or nil.
func (reg *Registry) ByName(name string) *Rule {
	for _, r := range reg.rules {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// All returns every registered rule.
func (reg *Registry) All() []*Rule { return reg.rules }

func builtinRules() []*Rule {
	return []*Rule{
		{
			Name:         "deepmind",
			BaseURL:      "https://deepmind.google",
			Strategy:     StrategyGeneric,
			ArticleTag:   "a",
			ArticleClass: AllOf("glue-card", "card"),
			TitleTag:     "p",
			TitleClass:   Exact("glue-headline"),
			DateTag:      "time",
			DateAttr:     "datetime",
			ContentTag:   "div",
			ContentClass: Exact("glue-page"),
		},
		{
			Name:         "anthropic",
			BaseURL:      "https://www.anthropic.com",
			Strategy:     StrategyGeneric,
			ArticleTag:   "a",
			ArticleClass: Exact("PostCard_post-card__z_Sqq"),
			TitleTag:     "h3",
			TitleClass:   Exact("PostCard_post-heading__Ob1pu"),
			DateTag:      "div",
			DateClass:    Exact("PostList_post-date__djrOA"),
			ContentTag:   "div",
			ContentClass: Exact("Body_body__XEXq7"),
		},
		{
			Name:         "openai",
			BaseURL:      "https://openai.com",
			Strategy:     StrategyGeneric,
			ScopeTag:     "div",
			ScopeClass:   AllOf("grid", "@sm:grid-cols-2", "@md:grid-cols-3", "gap-x-sm", "gap-y-2xl"),
			ArticleTag:   "a",
			TitleTag:     "div",
			TitleClass:   Exact("text-h5"),
			DateTag:      "time",
			DateAttr:     "datetime",
			ContentTag:   "article",
			ContentClass: AllOf("flex", "flex-col"),
		},
		{
			Name:         "google_research",
			BaseURL:      "https://research.google",
			Strategy:     StrategyGeneric,
			ScopeTag:     "ul",
			ScopeClass:   Exact("blog-posts-grid__cards"),
			ArticleTag:   "a",
			ArticleClass: Exact("glue-card"),
			TitleTag:     "span",
			TitleClass:   Exact("headline-5"),
			DateTag:      "p",
			DateClass:    Exact("glue-label"),
			ContentTag:   "div",
			ContentClass: Exact("glue-grid__col"),
		},
		{
			Name:         "huggingface",
			BaseURL:      "https://huggingface.co",
			Strategy:     StrategyGeneric,
			ScopeTag:     "div",
			ScopeClass:   Exact("col-span-1"),
			ArticleTag:   "a",
			ArticleClass: AllOf("flex", "flex-col"),
			TitleTag:     "h2",
			TitleClass:   Exact("font-semibold"),
			DateTag:      "span",
			DateClass:    Exact("truncate"),
			ContentTag:   "div",
			ContentClass: Exact("blog-content"),
		},
		{
			Name:         "theverge",
			BaseURL:      "https://www.theverge.com",
			Strategy:     StrategyGeneric,
			ArticleTag:   "a",
			ArticleClass: Exact("_1lkmsmo1"),
			TitleTag:     "a",
			TitleClass:   Exact("_1lkmsmo1"),
			DateTag:      "time",
			DateAttr:     "datetime",
			WrapperTag:   "div",
			WrapperClass: AnyOf("_184mfto4", "_1pm20r51", "_1dqvz267", "_1dqvz265"),
			ContentTag:   "div",
			ContentClass: Exact("duet--layout--entry-body"),
		},
		{
			Name:         "wired",
			BaseURL:      "https://www.wired.com",
			Strategy:     StrategyGeneric,
			ArticleTag:   "a",
			ArticleClass: Exact("summary-item__hed-link"),
			TitleTag:     "h3",
			TitleClass:   Exact("summary-item__hed"),
			DateTag:      "time",
			DateClass:    Exact("summary-item__publish-date"),
			WrapperTag:   "div",
			WrapperClass: Exact("summary-item__content"),
			ContentTag:   "div",
			ContentClass: Exact("ArticlePageChunks-fLyCVG"),
		},
		{
			Name:         "venturebeat",
			BaseURL:      "https://venturebeat.com",
			Strategy:     StrategyGeneric,
			ScopeTag:     "div",
			ScopeClass:   Exact("story-river"),
			ArticleTag:   "a",
			ArticleClass: Exact("ArticleListing__title-link"),
			TitleTag:     "a",
			TitleClass:   Exact("ArticleListing__title-link"),
			DateTag:      "time",
			DateAttr:     "datetime",
			WrapperTag:   "article",
			WrapperClass: Exact("ArticleListing"),
			ContentTag:   "div",
			ContentClass: Exact("article-content"),
		},
		{
			Name:         "techcrunch",
			BaseURL:      "https://techcrunch.com",
			Strategy:     StrategyGeneric,
			ArticleTag:   "a",
			ArticleClass: Exact("loop-card__title-link"),
			TitleTag:     "a",
			TitleClass:   Exact("loop-card__title-link"),
			DateTag:      "time",
			DateAttr:     "datetime",
			WrapperTag:   "div",
			WrapperClass: Exact("loop-card__content"),
			ContentTag:   "div",
			ContentClass: Exact("wp-block-post-content"),
		},
		{
			Name:         "aibusiness",
			BaseURL:      "https://aibusiness.com",
			Strategy:     StrategyGeneric,
			ScopeTag:     "div",
			ScopeClass:   Exact("LatestFeatured-ColumnList"),
			ArticleTag:   "a",
			ArticleClass: Exact("ListPreview-Title"),
			TitleTag:     "a",
			TitleClass:   Exact("ListPreview-Title"),
			DateTag:      "span",
			DateClass:    Exact("ListPreview-Date"),
			WrapperTag:   "div",
			WrapperClass: Exact("ListPreview-ContentWrapper"),
			ContentTag:   "div",
			ContentClass: Exact("ArticleBase-BodyContent"),
		},
		{
			Name:         "ilpost",
			BaseURL:      "https://www.ilpost.it",
			Strategy:     StrategyGeneric,
			ScopeTag:     "div",
			ScopeClass:   Exact("index_home-left__ikJqd"),
			ArticleTag:   "a",
			TitleTag:     "h2",
			TitleClass:   Exact("_article-title_vvjfb_7"),
			DateTag:      "time",
			DateClass:    Exact("_taxonomy-item__time_1moex_37"),
			WrapperTag:   "article",
			WrapperClass: Exact("_taxonomy-item_1moex_1"),
			ContentTag:   "div",
			ContentClass: Exact("contenuto"),
		},
		{
			Name:         "mistral",
			BaseURL:      "https://mistral.ai",
			Strategy:     StrategyGeneric,
			ScopeTag:     "div",
			ScopeID:      "news-section",
			ArticleTag:   "a",
			TitleTag:     "h3",
			DateTag:      "span",
			DateIndex:    1,
			WrapperTag:   "div",
			WrapperClass: Exact("blog-fade-in"),
			ContentTag:   "div",
			ContentClass: Exact("blog-rich-text"),
		},
		{
			Name:            "perplexity_ai",
			BaseURL:         "https://www.perplexity.ai",
			Strategy:        StrategyHeaderFeatured,
			HeaderTag:       "div",
			HeaderClass:     Exact("framer-1qu7j16-container"),
			HeaderLinkClass: Exact("framer-text"),
			ScopeTag:        "div",
			ScopeClass:      Exact("framer-1pk4ise"),
			ArticleTag:      "a",
			ArticleClass:    Exact("framer-fkCik"),
			TitleTag:        "h4",
			TitleClass:      Exact("framer-text"),
			DateTag:         "p",
			DateClass:       Exact("framer-text"),
			ContentTag:      "div",
			ContentClass:    Exact("framer-tef8j0"),
		},
		{
			Name:         "xai",
			BaseURL:      "https://x.ai",
			Strategy:     StrategyGeneric,
			ScopeTag:     "div",
			ScopeClass:   Exact("sm:gap-6"),
			ArticleTag:   "a",
			TitleTag:     "h4",
			TitleClass:   Exact("text-lg"),
			DateTag:      "span",
			DateClass:    Exact("mono-tag"),
			WrapperTag:   "div",
			WrapperClass: Exact("flex-col"),
			ContentTag:   "section",
			ContentClass: Exact("py-16"),
		},
		{
			Name:            "meta_ai",
			BaseURL:         "https://ai.meta.com",
			Strategy:        StrategyHeaderFeatured,
			HeaderTag:       "div",
			HeaderClass:     Exact("_amc_"),
			HeaderLinkClass: AllOf("_amcw", "_amd2"),
			HeaderDateTag:   "div",
			HeaderDateClass: Exact("_amun"),
			ScopeTag:        "div",
			ScopeClass:      Exact("_amd6"),
			ArticleTag:      "a",
			ArticleClass:    AllOf("_amcw", "_amdf"),
			TitleTag:        "a",
			TitleClass:      AllOf("_amcw", "_amdf"),
			DateTag:         "div",
			DateClass:       Exact("_amdj"),
			DateIndex:       1,
			WrapperTag:      "div",
			WrapperClass:    Exact("_amdc"),
			ContentTag:      "div",
			ContentClass:    Exact("_7h8s"),
		},
		{
			Name:         "arxiv",
			BaseURL:      "https://arxiv.org",
			Strategy:     StrategyAbstractList,
			ContentTag:   "blockquote",
			ContentClass: Exact("abstract"),
		},

		// Content-only entries: article pages linked from other listings
		// resolve here for body extraction.
		{
			Name:         "google_blog",
			BaseURL:      "https://blog.google",
			ContentTag:   "article",
			ContentClass: Exact("uni-article-wrapper"),
		},
		{
			Name:         "google_developers_blog",
			BaseURL:      "https://developers.googleblog.com",
			ContentTag:   "div",
			ContentClass: Exact("blog-detail-container"),
		},
	}
}
