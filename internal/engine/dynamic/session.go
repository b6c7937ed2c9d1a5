// internal/engine/dynamic/session.go
package dynamic

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// stealthScript runs before any page script and hides the automation flag
// that storefronts check before serving a captcha
const stealthScript = `Object.defineProperty(navigator, 'webdriver', { get: () => undefined });`

// SessionOptions configures one browser session
type SessionOptions struct {
	ChromePath string
	Headless   bool
	UserAgent  string
	Proxy      string
	// Cookies are installed before the first navigation
	Cookies []*network.CookieParam
	// Headers are sent with every request the tab makes
	Headers map[string]string
}

// Session is a single browser with one tab. It is created for one scrape and
// must be closed on every exit path.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

// allocatorOptions builds the Chrome command line for opts
func allocatorOptions(opts SessionOptions) []chromedp.ExecAllocatorOption {
	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-client-side-phishing-detection", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-prompt-on-repost", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("log-level", "3"),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.WindowSize(1920, 1080),
	}

	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	if path := FindChrome(opts.ChromePath); path != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(path)}, allocOpts...)
	}

	if opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	if opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.Proxy))
	}

	return allocOpts
}

// NewSession starts a browser, installs the stealth script and any cookies.
// Cancelling parent tears the browser down.
func NewSession(parent context.Context, opts SessionOptions) (*Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocatorOptions(opts)...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	s := &Session{ctx: ctx, cancel: cancel, allocCancel: allocCancel}

	tasks := chromedp.Tasks{
		network.Enable(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
	}
	if len(opts.Cookies) > 0 {
		tasks = append(tasks, network.SetCookies(opts.Cookies))
	}
	if len(opts.Headers) > 0 {
		extra := make(network.Headers, len(opts.Headers))
		for k, v := range opts.Headers {
			extra[k] = v
		}
		tasks = append(tasks, network.SetExtraHTTPHeaders(extra))
	}

	// The first Run launches the browser process
	if err := chromedp.Run(ctx, tasks); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	log.Debug().
		Bool("headless", opts.Headless).
		Bool("proxy", opts.Proxy != "").
		Int("cookies", len(opts.Cookies)).
		Int("headers", len(opts.Headers)).
		Msg("Browser session started")

	return s, nil
}

// Context returns the tab context used to run actions
func (s *Session) Context() context.Context {
	return s.ctx
}

// Run executes actions on the tab
func (s *Session) Run(actions ...chromedp.Action) error {
	return chromedp.Run(s.ctx, actions...)
}

// RunWithTimeout executes actions with their own deadline
func (s *Session) RunWithTimeout(timeout time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

// Close shuts the browser down. It is safe to call more than once.
func (s *Session) Close() {
	if s == nil {
		return
	}
	s.cancel()
	s.allocCancel()
	log.Debug().Msg("Browser session closed")
}
