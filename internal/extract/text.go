package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pgherardini/ainewswire/internal/sites"
)

// apostropheReplacer undoes the escaping some sites serve apostrophes
// with, and flattens hard spaces and newlines before whitespace
// collapsing.
var apostropheReplacer = strings.NewReplacer(
	`\'`, "'",
	" ", " ",
	"\n", " ",
)

// Text extracts the plain article body from a detail page: the first
// element matching tag and class, its visible text joined with single
// spaces. Returns false when no element matches; that is a recoverable
// per-article failure, not fatal to the batch.
func Text(doc *goquery.Document, tag string, class sites.Selector) (string, bool) {
	content := findFirst(doc.Selection, tag, class)
	if content == nil {
		return "", false
	}

	var parts []string
	for _, node := range content.Nodes {
		if t := visibleText(node); t != "" {
			parts = append(parts, t)
		}
	}

	text := apostropheReplacer.Replace(strings.Join(parts, " "))
	return strings.Join(strings.Fields(text), " "), true
}

// visibleText walks the node tree collecting trimmed text content,
// skipping script and style subtrees.
func visibleText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style || n.DataAtom == atom.Noscript) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}
