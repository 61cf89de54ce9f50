package inkwell

import "time"

// SiteConfig holds all configuration for an inkwell site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author display name

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/entries.db")

	AdminUsername string // Author login name, seeded into credentials at startup when set
	AdminPassword string // Author password, seeded alongside AdminUsername

	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	RecentWindow    int           // Articles shown on the home page (default 10)
	ListingCacheTTL time.Duration // Listing cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/entries.db"
	}
	if c.RecentWindow == 0 {
		c.RecentWindow = 10
	}
	if c.ListingCacheTTL == 0 {
		c.ListingCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
