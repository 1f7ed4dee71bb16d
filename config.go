package tintero

// SiteConfig holds all configuration for a tintero site. No store
// reads global state; everything flows through this struct at
// construction time.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:5000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name

	Addr string // Listen address (default ":5000")

	ContentDir   string // Posts directory (default "content")
	StatsPath    string // Visit ledger JSON path (default "data/stats.json")
	SettingsPath string // Feature toggle JSON path (default "data/config.json")
	CommentsDir  string // Comment files directory, shared with the comment service (default "data/comments")

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:5000"
	}
	if c.Addr == "" {
		c.Addr = ":5000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.StatsPath == "" {
		c.StatsPath = "data/stats.json"
	}
	if c.SettingsPath == "" {
		c.SettingsPath = "data/config.json"
	}
	if c.CommentsDir == "" {
		c.CommentsDir = "data/comments"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets,
// including uploads (default "static").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
