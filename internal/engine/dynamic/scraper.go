// internal/engine/dynamic/scraper.go
package dynamic

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/law-makers/shelf/internal/auth"
	"github.com/law-makers/shelf/internal/config"
	"github.com/law-makers/shelf/internal/engine"
	"github.com/law-makers/shelf/internal/engine/listing"
	"github.com/law-makers/shelf/internal/engine/static"
	"github.com/law-makers/shelf/internal/reqctx"
	"github.com/law-makers/shelf/internal/utils/headers"
	"github.com/law-makers/shelf/internal/utils/output"
	urlutil "github.com/law-makers/shelf/internal/utils/url"
	"github.com/law-makers/shelf/pkg/models"
)

// Observer receives progress while a page is extracted. Either hook may be nil.
type Observer struct {
	// OnListings is called once the listing containers are counted
	OnListings func(found, considered int)
	// OnOutcome is called for every considered listing in page order
	OnOutcome func(listing.Outcome)
}

// RunOptions adjusts a single search
type RunOptions struct {
	Mode          models.ExtractMode
	SessionName   string
	// Headers are sent with every request, over any saved with the session
	Headers       map[string]string
	DebugMarkdown bool
	Observer      Observer
}

// Scraper implements engine.Searcher with headless Chrome.
// Every Search starts its own browser and closes it before returning.
type Scraper struct {
	cfg  *config.Config
	opts RunOptions
}

// New creates a Scraper for cfg
func New(cfg *config.Config, opts RunOptions) *Scraper {
	if opts.Mode == "" {
		opts.Mode = models.ModeLive
	}
	return &Scraper{cfg: cfg, opts: opts}
}

// Name returns the name of this scraper
func (s *Scraper) Name() string {
	return "DynamicScraper"
}

// Search renders the results page for q and extracts up to q.Count records.
// A page with no usable records is not an error: the result is empty and its
// Diagnostic field names the saved page source.
func (s *Scraper) Search(ctx context.Context, q models.Query) (*models.SearchResult, error) {
	start := time.Now()
	q.Keyword = strings.TrimSpace(q.Keyword)
	ctx = reqctx.WithScrape(ctx, q.Keyword)
	logger := reqctx.Logger(ctx)

	m := s.cfg.Marketplace
	result := &models.SearchResult{
		Query:     q,
		SearchURL: urlutil.SearchURL(m.Host, q.Keyword),
		Records:   []models.ProductRecord{},
		FetchedAt: start,
	}
	defer func() { result.Elapsed = time.Since(start) }()

	if err := engine.ValidateQuery(q); err != nil {
		return result, reqctx.Wrap(ctx, err)
	}

	cookies, hdrs, err := s.sessionState()
	if err != nil {
		return result, reqctx.Wrap(ctx, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	logger.Debug().
		Str("url", result.SearchURL).
		Int("count", q.Count).
		Str("mode", string(s.opts.Mode)).
		Msg("Starting search")

	sess, err := NewSession(ctx, SessionOptions{
		ChromePath: s.cfg.ChromePath,
		Headless:   s.cfg.Headless,
		UserAgent:  s.cfg.UserAgent,
		Proxy:      s.cfg.Proxy,
		Cookies:    cookies,
		Headers:    hdrs,
	})
	if err != nil {
		return result, reqctx.Wrap(ctx, browserError(err))
	}
	defer sess.Close()

	if err := sess.Run(chromedp.Navigate(result.SearchURL)); err != nil {
		if ctx.Err() != nil {
			return result, reqctx.Wrap(ctx, engine.Classify("navigation aborted", ctx.Err()))
		}
		return result, reqctx.Wrap(ctx, engine.NewEngineError(engine.ErrCodeNavigation, "failed to open results page", err).
			WithDetail("url", result.SearchURL))
	}

	if err := sess.RunWithTimeout(s.cfg.WaitTimeout, chromedp.WaitReady(listing.ResultContainerSelector, chromedp.ByQuery)); err != nil {
		return result, reqctx.Wrap(ctx, s.waitError(ctx, err))
	}
	logger.Debug().Dur("elapsed", time.Since(start)).Msg("Results rendered")

	if err := sess.Run(chromedp.Sleep(s.cfg.SettleDelay)); err != nil {
		return result, reqctx.Wrap(ctx, engine.Classify("interrupted while the page settled", err))
	}

	var containers []*cdp.Node
	if err := sess.RunWithTimeout(s.cfg.WaitTimeout, chromedp.Nodes(listing.ResultContainerSelector, &containers, chromedp.ByQueryAll)); err != nil {
		return result, reqctx.Wrap(ctx, engine.Classify("failed to collect listings", err))
	}

	considered := listing.Considered(len(containers), q.Count)
	if s.opts.Observer.OnListings != nil {
		s.opts.Observer.OnListings(len(containers), considered)
	}
	logger.Info().Int("listings", len(containers)).Int("considered", considered).Msg("Listings found")

	nodes := s.listingNodes(sess.Context(), containers[:considered])

	ex := listing.New(listing.Options{BaseURL: result.SearchURL, Currency: m.Currency})
	batch := ex.ExtractAll(nodes, considered, s.opts.Observer.OnOutcome)

	if err := ctx.Err(); err != nil {
		return result, reqctx.Wrap(ctx, engine.Classify("search interrupted", err))
	}

	result.Records = batch.Records
	result.ListingsFound = len(containers)
	result.Considered = batch.Considered

	result.Diagnostic = s.diagnose(ctx, result.Records, result.SearchURL, func() (string, error) {
		var html string
		err := sess.RunWithTimeout(s.cfg.WaitTimeout, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
		return html, err
	})

	logger.Info().
		Int("kept", len(result.Records)).
		Dur("elapsed", time.Since(start)).
		Msg("Search completed")

	return result, nil
}

// listingNodes wraps the containers for extraction. In snapshot mode each
// container's markup is copied once and queried offline; a container that
// cannot be copied falls back to live queries.
func (s *Scraper) listingNodes(ctx context.Context, containers []*cdp.Node) []listing.Node {
	nodes := make([]listing.Node, 0, len(containers))
	for _, c := range containers {
		live := newLiveNode(ctx, c, s.cfg.LookupTimeout)
		if s.opts.Mode != models.ModeSnapshot {
			nodes = append(nodes, live)
			continue
		}

		html, err := live.outerHTML()
		if err == nil {
			var snap *static.Node
			if snap, err = static.FromFragment(html); err == nil {
				nodes = append(nodes, snap)
				continue
			}
		}
		logger := reqctx.Logger(ctx)
		logger.Debug().Err(err).Msg("Snapshot failed, reading listing live")
		nodes = append(nodes, live)
	}
	return nodes
}

// diagnose dumps the page source when records is empty and returns the file
// path. It returns an empty string when records were kept or the dump could
// not be written; source is only called when a dump is needed.
func (s *Scraper) diagnose(ctx context.Context, records []models.ProductRecord, pageURL string, source func() (string, error)) string {
	if !listing.NeedsDiagnostics(records) {
		return ""
	}
	logger := reqctx.Logger(ctx)

	html, err := source()
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to read page source")
		return ""
	}

	d, err := output.SaveDiagnostic(s.cfg.DebugFile, html, pageURL, s.opts.DebugMarkdown)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to save page source")
		return ""
	}
	logger.Warn().Str("file", d.HTMLPath).Msg("No products extracted, page source saved")
	return d.HTMLPath
}

// sessionState returns the cookies and headers to install before navigating
func (s *Scraper) sessionState() ([]*network.CookieParam, map[string]string, error) {
	if s.opts.SessionName == "" {
		return nil, s.opts.Headers, nil
	}
	session, err := auth.LoadSession(s.opts.SessionName)
	if err != nil {
		return nil, nil, engine.NewEngineError(engine.ErrCodeSessionError, "failed to load session", err).
			WithDetail("session", s.opts.SessionName)
	}
	return auth.CookieParams(session.Cookies), headers.Merge(session.Headers, s.opts.Headers), nil
}

// waitError distinguishes a page that never showed results from a run the
// caller abandoned
func (s *Scraper) waitError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return engine.Classify("search interrupted", ctx.Err())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return engine.NewEngineError(engine.ErrCodeTimeout,
			fmt.Sprintf("no listings appeared within %s", s.cfg.WaitTimeout),
			engine.ErrTimeout)
	}
	return engine.Classify("failed waiting for listings", err)
}

func browserError(err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return engine.NewEngineError(engine.ErrCodeBrowser, "install Chrome or set SHELF_CHROME_PATH",
			fmt.Errorf("%w: %v", engine.ErrBrowserNotFound, err))
	}
	return engine.Classify("failed to start browser", err)
}

var _ engine.Searcher = (*Scraper)(nil)
