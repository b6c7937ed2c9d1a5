package engine

import (
	"context"

	"github.com/law-makers/shelf/pkg/models"
)

// Searcher renders one search-results page and turns it into product records
type Searcher interface {
	// Search runs a single query. A page-level failure returns a result with no
	// records alongside the error.
	Search(ctx context.Context, q models.Query) (*models.SearchResult, error)

	// Name returns the name of the searcher implementation
	Name() string
}
