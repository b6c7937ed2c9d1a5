package models

import "time"

// Sentinel marks a field no extraction strategy could fill.
const Sentinel = "N/A"

// ProductRecord is one listing taken from a search-results page.
// Records are built once per listing and never mutated afterwards.
type ProductRecord struct {
	Title       string `json:"title"`
	Price       string `json:"price"`
	Rating      string `json:"rating"`
	ReviewCount string `json:"reviews"`
	URL         string `json:"url"`
}

// EmptyRecord returns a record with every field set to Sentinel.
func EmptyRecord() ProductRecord {
	return ProductRecord{
		Title:       Sentinel,
		Price:       Sentinel,
		Rating:      Sentinel,
		ReviewCount: Sentinel,
		URL:         Sentinel,
	}
}

// Query describes one search-and-export run
type Query struct {
	Keyword   string `json:"keyword" validate:"required"`
	Count     int    `json:"count" validate:"min=1,max=50"`
	OutputDir string `json:"output_dir,omitempty"`
}

// SearchResult is what a Searcher hands back for one results page
type SearchResult struct {
	Query         Query           `json:"query"`
	SearchURL     string          `json:"search_url"`
	Records       []ProductRecord `json:"records"`
	ListingsFound int             `json:"listings_found"`
	Considered    int             `json:"considered"`
	Diagnostic    string          `json:"diagnostic,omitempty"`
	FetchedAt     time.Time       `json:"fetched_at"`
	Elapsed       time.Duration   `json:"elapsed"`
}

// Empty reports whether the search produced no usable records
func (r *SearchResult) Empty() bool {
	return r == nil || len(r.Records) == 0
}

// ExtractMode selects how listing nodes are read from the rendered page
type ExtractMode string

const (
	// ModeLive queries every field through the browser's DOM
	ModeLive ExtractMode = "live"
	// ModeSnapshot copies each listing's markup once and queries it offline
	ModeSnapshot ExtractMode = "snapshot"
)
