// Package reqctx carries a per-scrape identifier through a context so log
// lines and errors from one search can be correlated.
package reqctx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type key int

const scrapeKey key = 0

// Scrape identifies one search run
type Scrape struct {
	ID        string
	Keyword   string
	StartTime time.Time
}

// WithScrape returns a context carrying a fresh Scrape for keyword.
// An existing Scrape on ctx is kept.
func WithScrape(ctx context.Context, keyword string) context.Context {
	if _, ok := ctx.Value(scrapeKey).(*Scrape); ok {
		return ctx
	}
	return context.WithValue(ctx, scrapeKey, &Scrape{
		ID:        generateID(),
		Keyword:   keyword,
		StartTime: time.Now(),
	})
}

// FromContext returns the Scrape on ctx, or a placeholder with ID "unknown"
func FromContext(ctx context.Context) *Scrape {
	if s, ok := ctx.Value(scrapeKey).(*Scrape); ok {
		return s
	}
	return &Scrape{
		ID:        "unknown",
		StartTime: time.Now(),
	}
}

// Logger returns the global logger tagged with the scrape ID
func Logger(ctx context.Context) *zerolog.Logger {
	s := FromContext(ctx)
	logger := log.With().Str("scrape_id", s.ID).Logger()
	return &logger
}

func generateID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// ScrapeError wraps an error with the scrape that produced it
type ScrapeError struct {
	ScrapeID string
	Err      error
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	return fmt.Sprintf("[%s] %v", e.ScrapeID, e.Err)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// Wrap tags err with the scrape ID on ctx. A nil err stays nil.
func Wrap(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	return &ScrapeError{
		ScrapeID: FromContext(ctx).ID,
		Err:      err,
	}
}
