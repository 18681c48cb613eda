package extract

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/pgherardini/ainewswire/internal/sites"
	"github.com/pgherardini/ainewswire/internal/types"
)

// headerDateLayout is the only format header-featured sites publish
// their featured date in. No fallback chain applies here.
const headerDateLayout = "January 2, 2006"

// ExtractHeaderFeatured handles listings with one featured article in a
// distinctive container outside the regular card grid. The featured
// stub is extracted first, then the generic extractor runs over the
// remaining grid.
func (e *LinkExtractor) ExtractHeaderFeatured(doc *goquery.Document, rule *sites.Rule, known KnownFunc) []*types.Stub {
	var stubs []*types.Stub

	if stub := e.extractHeader(doc, rule); stub != nil && !known(stub.URL) {
		stubs = append(stubs, stub)
	}

	return append(stubs, e.Extract(doc, rule, known)...)
}

func (e *LinkExtractor) extractHeader(doc *goquery.Document, rule *sites.Rule) *types.Stub {
	header := findFirst(doc.Selection, rule.HeaderTag, rule.HeaderClass)
	if header == nil {
		e.logger.Warn("featured header not found", "site", rule.Name)
		return nil
	}

	link := findFirst(header, "a", rule.HeaderLinkClass)
	if link == nil {
		return nil
	}
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return nil
	}

	stub := &types.Stub{
		URL:       NormalizeHref(rule.BaseURL, href),
		Title:     strings.TrimSpace(link.Text()),
		Source:    rule.Name,
		SourceURL: rule.BaseURL,
		FetchedAt: e.now(),
	}

	if rule.HeaderDateTag != "" {
		if node := findFirst(header, rule.HeaderDateTag, rule.HeaderDateClass); node != nil {
			if t, err := time.Parse(headerDateLayout, strings.TrimSpace(node.Text())); err == nil {
				stub.PublishDate = t.Format("2006-01-02")
			}
		}
	}

	return stub
}

// ExtractAbstractList handles abstract indexes organized as
// definition-list term/definition pairs grouped under dated section
// headings. Each dt yields an abstract link and an optional PDF link;
// the following dd yields title and authors. The extraction cap applies
// to the flat entry list across sections, not per section.
func (e *LinkExtractor) ExtractAbstractList(doc *goquery.Document, rule *sites.Rule, known KnownFunc) []*types.Stub {
	if len(doc.Selection.Nodes) == 0 {
		return nil
	}
	root := doc.Selection.Nodes[0]

	sections, err := htmlquery.QueryAll(root, "//dl[@id='articles']")
	if err != nil || len(sections) == 0 {
		return nil
	}

	var stubs []*types.Stub
	remaining := e.maxPerSite

	for _, section := range sections {
		if remaining == 0 {
			break
		}

		// The section heading dates every entry beneath it; a mismatch
		// leaves the whole section undated.
		sectionDate := ""
		if h3, _ := htmlquery.Query(section, ".//h3"); h3 != nil {
			sectionDate = parseSectionDate(htmlquery.InnerText(h3))
		}

		terms, err := htmlquery.QueryAll(section, ".//dt")
		if err != nil {
			continue
		}

		e.logger.Info("extracting articles", "count", min(len(terms), remaining), "site", rule.Name, "source_url", rule.BaseURL)

		for _, dt := range terms {
			if remaining == 0 {
				break
			}
			stub := e.extractAbstractEntry(dt, rule, sectionDate)
			if stub == nil {
				continue
			}
			remaining--
			if known(stub.URL) {
				continue
			}
			stubs = append(stubs, stub)
		}
	}

	return stubs
}

func (e *LinkExtractor) extractAbstractEntry(dt *html.Node, rule *sites.Rule, sectionDate string) *types.Stub {
	abs, _ := htmlquery.Query(dt, `.//a[@title="Abstract"]`)
	if abs == nil {
		return nil
	}
	href := htmlquery.SelectAttr(abs, "href")
	if href == "" {
		return nil
	}

	stub := &types.Stub{
		URL:         NormalizeHref(rule.BaseURL, href),
		PublishDate: sectionDate,
		Source:      rule.Name,
		SourceURL:   rule.BaseURL,
		FetchedAt:   e.now(),
	}

	if pdf, _ := htmlquery.Query(dt, `.//a[@title="Download PDF"]`); pdf != nil {
		if pdfHref := htmlquery.SelectAttr(pdf, "href"); pdfHref != "" {
			stub.PDFURL = NormalizeHref(rule.BaseURL, pdfHref)
		}
	}

	if dd := nextElementSibling(dt, "dd"); dd != nil {
		if titleNode, _ := htmlquery.Query(dd, `.//div[contains(@class, "list-title")]`); titleNode != nil {
			title := strings.TrimSpace(htmlquery.InnerText(titleNode))
			stub.Title = strings.TrimSpace(strings.TrimPrefix(title, "Title:"))
		}
		if authorsNode, _ := htmlquery.Query(dd, `.//div[contains(@class, "list-authors")]`); authorsNode != nil {
			links, _ := htmlquery.QueryAll(authorsNode, ".//a")
			for _, a := range links {
				if name := strings.TrimSpace(htmlquery.InnerText(a)); name != "" {
					stub.Authors = append(stub.Authors, name)
				}
			}
		}
	}

	return stub
}

// nextElementSibling walks forward to the next element node with the
// given tag name, skipping interleaved text nodes.
func nextElementSibling(n *html.Node, tag string) *html.Node {
	for sib := n.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type == html.ElementNode {
			if sib.Data == tag {
				return sib
			}
			return nil
		}
	}
	return nil
}
