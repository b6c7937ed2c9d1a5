package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel      = "info"
	DefaultJSONLog       = false
	DefaultUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultTimeout       = 90 * time.Second
	DefaultHeadless      = true
	DefaultMarketplace   = "in"
	DefaultWaitTimeout   = 10 * time.Second
	DefaultSettleDelay   = 3 * time.Second
	DefaultLookupTimeout = 1 * time.Second
	DefaultDebugFile     = "debug.html"
	DefaultFormat        = "xlsx"

	DefaultCount = 10
	MinCount     = 1
	MaxCount     = 50
)
