package shared

import "time"

// HTTP Client Configuration
const (
	DefaultHTTPTimeout     = 120 * time.Second
	DefaultProbeTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Session Configuration
const (
	SessionCookieName = "hf_token"
	SessionCookieAge  = 30 * 24 * time.Hour
	ProfileCacheTTL   = 1 * time.Minute
)

// Hosting Configuration
const (
	MaxSlugLength = 96
)
