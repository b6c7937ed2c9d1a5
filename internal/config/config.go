package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Browser
	Timeout    time.Duration
	UserAgent  string
	Proxy      string
	ChromePath string
	Headless   bool

	// Page readiness
	WaitTimeout   time.Duration
	SettleDelay   time.Duration
	LookupTimeout time.Duration

	Marketplace Marketplace
	DebugFile   string
}

// environment mirrors the SHELF_* variables
type environment struct {
	UserAgent   string        `env:"SHELF_USER_AGENT"`
	Proxy       string        `env:"SHELF_PROXY"`
	ChromePath  string        `env:"SHELF_CHROME_PATH"`
	Headless    bool          `env:"SHELF_HEADLESS" envDefault:"true"`
	Marketplace string        `env:"SHELF_MARKETPLACE" envDefault:"in"`
	WaitTimeout time.Duration `env:"SHELF_WAIT_TIMEOUT" envDefault:"10s"`
	SettleDelay time.Duration `env:"SHELF_SETTLE_DELAY" envDefault:"3s"`
}

// Default returns a Config populated from defaults only
func Default() *Config {
	m, _ := LookupMarketplace(DefaultMarketplace)
	return &Config{
		LogLevel:      DefaultLogLevel,
		JSONLog:       DefaultJSONLog,
		Timeout:       DefaultTimeout,
		UserAgent:     DefaultUserAgent,
		Headless:      DefaultHeadless,
		WaitTimeout:   DefaultWaitTimeout,
		SettleDelay:   DefaultSettleDelay,
		LookupTimeout: DefaultLookupTimeout,
		Marketplace:   m,
		DebugFile:     DefaultDebugFile,
	}
}

// Load builds a Config by combining defaults, environment variables, and CLI flags.
// Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := Default()

	var e environment
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	if e.UserAgent != "" {
		cfg.UserAgent = e.UserAgent
	}
	cfg.Proxy = e.Proxy
	cfg.ChromePath = e.ChromePath
	cfg.Headless = e.Headless
	cfg.WaitTimeout = e.WaitTimeout
	cfg.SettleDelay = e.SettleDelay

	marketplace := e.Marketplace

	// Read CLI flags if provided
	if cmd != nil {
		if f := cmd.Flags().Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := cmd.Flags().Lookup("proxy"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.Proxy = s
			}
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				d, err := time.ParseDuration(s)
				if err != nil {
					return nil, fmt.Errorf("invalid --timeout %q: %w", s, err)
				}
				cfg.Timeout = d
			}
		}
		if f := cmd.Flags().Lookup("marketplace"); f != nil {
			if s := f.Value.String(); s != "" {
				marketplace = s
			}
		}
		if f := cmd.Flags().Lookup("json"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := cmd.Flags().Lookup("quiet"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "error"
			}
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
	}

	m, err := LookupMarketplace(marketplace)
	if err != nil {
		return nil, err
	}
	cfg.Marketplace = m

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
