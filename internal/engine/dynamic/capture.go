// internal/engine/dynamic/capture.go
package dynamic

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/law-makers/shelf/internal/auth"
	"github.com/rs/zerolog/log"
)

// CaptureCookies opens a visible browser on startURL and waits for ready to
// return, giving the user time to set a delivery location or sign in. The
// cookies present at that point are returned.
func CaptureCookies(ctx context.Context, opts SessionOptions, startURL string, ready func() error) ([]auth.Cookie, error) {
	opts.Headless = false

	sess, err := NewSession(ctx, opts)
	if err != nil {
		return nil, browserError(err)
	}
	defer sess.Close()

	if err := sess.Run(chromedp.Navigate(startURL)); err != nil {
		return nil, fmt.Errorf("failed to navigate: %w", err)
	}

	if err := ready(); err != nil {
		return nil, err
	}

	var cookies []*network.Cookie
	err = sess.Run(chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		cookies, err = network.GetCookies().Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to extract cookies: %w", err)
	}
	if len(cookies) == 0 {
		return nil, fmt.Errorf("no cookies found")
	}

	log.Info().Int("cookie_count", len(cookies)).Msg("Cookies captured")
	return auth.FromBrowser(cookies), nil
}
