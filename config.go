package carehub

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/eringen/carehub/content"
)

// SiteConfig holds all configuration for a carehub site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (default "CareHub")
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description"` // Site description for RSS and meta tags

	Addr            string `mapstructure:"addr"`             // Listen address (default ":3000")
	CatalogPath     string `mapstructure:"catalog_path"`     // YAML catalog; empty uses the embedded one
	StrictCatalog   bool   `mapstructure:"strict_catalog"`   // Refuse to start on dangling references
	DefaultReviewer string `mapstructure:"default_reviewer"` // Shown on posts without a reviewer

	AnalyticsEnabled       bool   `mapstructure:"analytics_enabled"`        // Record page views (default off)
	AnalyticsDatabasePath  string `mapstructure:"analytics_database_path"`  // SQLite path (default "data/analytics.db")
	AnalyticsRetentionDays int    `mapstructure:"analytics_retention_days"` // Default 365

	AdminPassword string `mapstructure:"admin_password"` // Enables /admin/ when set
	SessionSecret string `mapstructure:"session_secret"` // Required with AdminPassword
	CookieSecure  bool   `mapstructure:"cookie_secure"`  // Set true for HTTPS
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "CareHub"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DefaultReviewer == "" {
		c.DefaultReviewer = "Dr. Sarah Johnson, MD"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.AnalyticsRetentionDays == 0 {
		c.AnalyticsRetentionDays = 365
	}
}

// AdminEnabled reports whether the admin area is served.
func (c SiteConfig) AdminEnabled() bool {
	return c.AdminPassword != ""
}

// Option configures additional App behavior.
type Option func(*App)

// WithCatalog serves cat instead of loading SiteConfig.CatalogPath.
func WithCatalog(cat *content.Catalog) Option {
	return func(a *App) {
		a.Catalog = cat
	}
}

// WithLogger sets the structured logger (default zap.NewNop).
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithRegistry sets the Prometheus registry metrics are registered on and
// served from. Each App gets its own registry by default.
func WithRegistry(r *prometheus.Registry) Option {
	return func(a *App) {
		a.registry = r
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for site-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
