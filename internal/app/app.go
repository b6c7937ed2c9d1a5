// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/law-makers/shelf/internal/config"
	"github.com/law-makers/shelf/internal/engine"
	"github.com/law-makers/shelf/internal/engine/dynamic"
	"github.com/law-makers/shelf/internal/engine/listing"
	"github.com/law-makers/shelf/internal/engine/static"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds configuration and the logger shared by all CLI commands.
//
// It is created once at startup. Browsers are not started here: each search
// owns its browser for exactly the duration of the search.
type Application struct {
	Config    *config.Config
	Logger    *zerolog.Logger
	startTime time.Time
}

// New creates and initializes a new Application.
//
// It configures the global zerolog logger from cfg: console output on stderr
// by default, JSON lines with cfg.JSONLog, error level unless debug logging
// was requested.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	zerolog.SetGlobalLevel(logLevel(cfg.LogLevel))

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(logWriter).With().Timestamp().Logger()
	logger := log.Logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Str("marketplace", cfg.Marketplace.Host).
		Dur("wait_timeout", cfg.WaitTimeout).
		Dur("settle_delay", cfg.SettleDelay).
		Msg("Application initialized")

	return &Application{
		Config:    cfg,
		Logger:    &logger,
		startTime: time.Now(),
	}, nil
}

func logLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	default:
		// info is treated as non-verbose; console output is reserved for the CLI
		return zerolog.ErrorLevel
	}
}

// Searcher returns a browser-backed searcher configured for one run
func (a *Application) Searcher(opts dynamic.RunOptions) engine.Searcher {
	return dynamic.New(a.Config, opts)
}

// Extractor returns a listing extractor for pages served from pageURL
func (a *Application) Extractor(pageURL string) *listing.Extractor {
	return listing.New(listing.Options{
		BaseURL:  pageURL,
		Currency: a.Config.Marketplace.Currency,
	})
}

// ParseSaved loads a saved results page. Links resolve against the
// storefront root when the page's own address is unknown.
func (a *Application) ParseSaved(path string) (*static.Page, error) {
	return static.ParseFile(path, a.Config.Marketplace.BaseURL())
}

// Close releases application resources and logs the uptime.
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Debug().Dur("uptime", a.Uptime()).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
