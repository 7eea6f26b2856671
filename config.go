package atelier

import "time"

// SiteConfig holds all configuration for an atelier site.
type SiteConfig struct {
	Name        string // Site name (default "Atelier")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/site.db")
	ProfilePath  string // YAML profile path (default "profile.yaml")

	AdminUsername string // Admin login username (default "admin")
	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	// Generation endpoint settings for the chat relay. An empty APIKey
	// disables the relay: /api/chat answers with the missing-credential error.
	GenAPIKey   string
	GenModel    string // default "gemini-2.0-flash-exp"
	GenEndpoint string // default Google generative language API base

	PostCacheTTL time.Duration // Post cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Atelier"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.ProfilePath == "" {
		c.ProfilePath = "profile.yaml"
	}
	if c.AdminUsername == "" {
		c.AdminUsername = "admin"
	}
	if c.GenModel == "" {
		c.GenModel = "gemini-2.0-flash-exp"
	}
	if c.GenEndpoint == "" {
		c.GenEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
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

// WithProfile injects an already-loaded profile instead of reading
// SiteConfig.ProfilePath at startup.
func WithProfile(p Profile) Option {
	return func(a *App) {
		a.Profile = p
		a.profileSet = true
	}
}
