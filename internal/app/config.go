package app

import "time"

// Config holds runtime configuration for the application.
type Config struct {
	// Fetching
	UserAgent   string
	HTTPTimeout time.Duration

	// Cache
	CacheDir    string
	CacheMaxAge time.Duration
	CacheClear  bool

	// Storage
	StoreDir string

	// Providers
	SmartRecruitersAPIKey string

	// Browser fallback
	BrowserEnabled  bool
	BrowserHeadless bool

	// Behavior
	Verbose bool
}
