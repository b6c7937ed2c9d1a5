// internal/engine/static/page.go
package static

import (
	"fmt"
	"io"
	"os"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/shelf/internal/engine"
	"github.com/law-makers/shelf/internal/engine/listing"
	"github.com/rs/zerolog/log"
)

// Page is a results page parsed from saved markup
type Page struct {
	// URL is the address the page was served from; relative links resolve against it
	URL string
	doc *goquery.Document
}

// Parse reads a results page from r
func Parse(r io.Reader, pageURL string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeParseError, "failed to parse HTML", fmt.Errorf("%w: %v", engine.ErrParseError, err))
	}
	return &Page{URL: pageURL, doc: doc}, nil
}

// ParseFile reads a results page saved on disk, typically a diagnostic dump
func ParseFile(path, pageURL string) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer f.Close()

	log.Debug().Str("file", path).Msg("Parsing saved page")
	return Parse(f, pageURL)
}

// Listings returns every result container on the page in document order
func (p *Page) Listings() []listing.Node {
	sel := p.doc.Find(listing.ResultContainerSelector)
	nodes := make([]listing.Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, NewNode(s))
	})
	return nodes
}

// Title returns the document title
func (p *Page) Title() string {
	return listing.CollapseText(p.doc.Find("title").First().Text())
}

// HTML renders the whole document back to markup
func (p *Page) HTML() (string, error) {
	return p.doc.Html()
}

// Extract runs ex over at most count listings of the page
func (p *Page) Extract(ex *listing.Extractor, count int, observe func(listing.Outcome)) listing.Batch {
	nodes := p.Listings()
	batch := ex.ExtractAll(nodes, count, observe)

	log.Debug().
		Str("url", p.URL).
		Int("listings", batch.Found).
		Int("considered", batch.Considered).
		Int("kept", len(batch.Records)).
		Msg("Saved page extracted")

	return batch
}
