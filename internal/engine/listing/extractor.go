package listing

import (
	"github.com/law-makers/shelf/pkg/models"
	"github.com/rs/zerolog/log"
)

// DefaultCurrency is prefixed to prices assembled from the split markup
const DefaultCurrency = "₹"

// Options configures an Extractor
type Options struct {
	// BaseURL is the results page URL; relative product links resolve against it
	BaseURL string
	// Currency is prefixed to prices read from the whole/fraction markup
	Currency string
}

// Extractor reads ProductRecords out of listing nodes
type Extractor struct {
	chains map[Field]Chain
}

// Trace records which strategy filled each field. Fields left at the
// sentinel map to an empty string.
type Trace map[Field]string

// Outcome describes what happened to one considered listing
type Outcome struct {
	Index  int // 1-based position on the page
	Record models.ProductRecord
	Trace  Trace
	Kept   bool
}

// Batch is the result of walking a page's listing nodes
type Batch struct {
	Records    []models.ProductRecord
	Outcomes   []Outcome
	Found      int
	Considered int
}

// New creates an Extractor with the default chains for every field
func New(opts Options) *Extractor {
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	return &Extractor{
		chains: map[Field]Chain{
			FieldTitle:   TitleChain(),
			FieldPrice:   PriceChain(opts.Currency),
			FieldRating:  RatingChain(),
			FieldReviews: ReviewsChain(),
			FieldURL:     URLChain(opts.BaseURL),
		},
	}
}

// Chain returns the strategy chain used for f
func (e *Extractor) Chain(f Field) Chain {
	return e.chains[f]
}

// Field returns the value of one field, or models.Sentinel
func (e *Extractor) Field(n Node, f Field) string {
	c, ok := e.chains[f]
	if !ok {
		return models.Sentinel
	}
	v, _ := c.Resolve(n)
	return v
}

// Extract builds the record for a single listing node
func (e *Extractor) Extract(n Node) (models.ProductRecord, Trace) {
	rec := models.EmptyRecord()
	trace := make(Trace, len(Fields))

	for _, f := range Fields {
		v, strategy := e.chains[f].Resolve(n)
		trace[f] = strategy
		switch f {
		case FieldTitle:
			rec.Title = v
		case FieldPrice:
			rec.Price = v
		case FieldRating:
			rec.Rating = v
		case FieldReviews:
			rec.ReviewCount = v
		case FieldURL:
			rec.URL = v
		}
	}
	return rec, trace
}

// ExtractAll walks at most maxCount nodes in page order and keeps the records
// that pass Keep. observe, when non-nil, sees every considered listing.
func (e *Extractor) ExtractAll(nodes []Node, maxCount int, observe func(Outcome)) Batch {
	batch := Batch{
		Found:      len(nodes),
		Considered: Considered(len(nodes), maxCount),
	}
	batch.Records = make([]models.ProductRecord, 0, batch.Considered)

	for i, n := range nodes[:batch.Considered] {
		rec, trace := e.Extract(n)
		out := Outcome{Index: i + 1, Record: rec, Trace: trace, Kept: Keep(rec)}

		log.Debug().
			Int("index", out.Index).
			Bool("kept", out.Kept).
			Str("title_strategy", trace[FieldTitle]).
			Str("price_strategy", trace[FieldPrice]).
			Str("url_strategy", trace[FieldURL]).
			Msg("Listing extracted")

		if out.Kept {
			batch.Records = append(batch.Records, rec)
		}
		batch.Outcomes = append(batch.Outcomes, out)
		if observe != nil {
			observe(out)
		}
	}

	return batch
}

// Considered returns how many of found listings a request for maxCount looks at
func Considered(found, maxCount int) int {
	if maxCount < 0 {
		maxCount = 0
	}
	if found < maxCount {
		return found
	}
	return maxCount
}

// Keep reports whether a record identifies a product: it needs a name or a link
func Keep(r models.ProductRecord) bool {
	return r.Title != models.Sentinel || r.URL != models.Sentinel
}

// NeedsDiagnostics reports whether a finished page should have its markup
// dumped for offline inspection
func NeedsDiagnostics(records []models.ProductRecord) bool {
	return len(records) == 0
}
