package output

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// noise is removed wholesale before a page is rendered for reading
const noise = "script, style, link, meta, noscript, iframe, svg, form, input, button, select, textarea, canvas"

// keptAttrs lists attributes that survive cleaning, per tag. The "*" entry
// applies to every element and keeps the hooks listing selectors rely on.
var keptAttrs = map[string][]string{
	"*":   {"data-component-type", "data-asin", "aria-label"},
	"a":   {"href", "title"},
	"img": {"src", "alt"},
}

// CleanHTML strips scripts, styles and form controls from a page and drops
// attributes that do not help a reader locate listings
func CleanHTML(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	doc.Find(noise).Remove()

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, node := range s.Nodes {
			node.Attr = filterAttrs(node)
		}
	})

	out, err := doc.Html()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func filterAttrs(node *html.Node) []html.Attribute {
	var kept []html.Attribute
	for _, attr := range node.Attr {
		if allowed(keptAttrs["*"], attr.Key) || allowed(keptAttrs[node.Data], attr.Key) {
			kept = append(kept, attr)
		}
	}
	return kept
}

func allowed(names []string, key string) bool {
	for _, n := range names {
		if n == key {
			return true
		}
	}
	return false
}
