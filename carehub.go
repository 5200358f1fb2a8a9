// Package carehub serves a content-marketing site of condition guides, blog
// articles, lab panels and care programs, built with Go, Echo, and templ.
//
// Pages are assembled from an immutable content.Catalog by the Build*
// functions and rendered by templ components supplied through ViewFuncs,
// so the package itself never imports its templates. The App adds the
// middleware stack, RSS feed, metrics, optional page-view analytics and a
// small admin area on top.
package carehub

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/eringen/carehub/analytics"
	"github.com/eringen/carehub/content"
)

// ViewFuncs holds the templ components the App calls when rendering pages.
type ViewFuncs struct {
	Home           func(page HomePage) templ.Component
	BlogIndex      func(page BlogIndexPage) templ.Component
	BlogPost       func(page BlogPage) templ.Component
	ConditionIndex func(page ConditionIndexPage) templ.Component
	ConditionList  func(page ConditionIndexPage) templ.Component // results only, for partial=list
	Condition      func(page ConditionPage) templ.Component
	CareIndex      func(page CareIndexPage) templ.Component
	Care           func(page CarePage) templ.Component
	LabsIndex      func(page LabsIndexPage) templ.Component
	Labs           func(page LabsPage) templ.Component
	BridgeCTA      func(cta BridgeCTA) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminAnalytics func(page AnalyticsPage) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central carehub application. It wires together the catalog,
// article cache, handlers, middleware, and templates.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Catalog  *content.Catalog
	Articles *ArticleCache
	Views    ViewFuncs
	Logger   *zap.Logger

	analyticsStore *analytics.Store
	stopCleanup    func()
	registry       *prometheus.Registry
	metrics        *metrics
	customRoutes   []func(*App)
	staticDir      string
	initialized    bool
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		Logger:    zap.NewNop(),
		registry:  prometheus.NewRegistry(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init loads the catalog, opens the analytics store when enabled, and
// registers middleware and routes. Start calls it; tests call it directly and
// drive a.Echo with httptest. Calling it again is a no-op.
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	if a.Config.AdminEnabled() && a.Config.SessionSecret == "" {
		return fmt.Errorf("carehub: SessionSecret is required when AdminPassword is set")
	}

	if a.Catalog == nil {
		cat, err := loadCatalog(a.Config.CatalogPath)
		if err != nil {
			return fmt.Errorf("carehub: load catalog: %w", err)
		}
		a.Catalog = cat
	}
	if err := a.checkCatalog(); err != nil {
		return err
	}

	a.Articles = NewArticleCache(a.Views.BridgeCTA)
	a.metrics = newMetrics(a.registry)

	if a.Config.AnalyticsEnabled {
		store, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("carehub: init analytics: %w", err)
		}
		a.analyticsStore = store
		a.stopCleanup = store.StartCleanupScheduler(a.Config.AnalyticsRetentionDays, 24*time.Hour, a.Logger)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.initialized = true
	return nil
}

func loadCatalog(path string) (*content.Catalog, error) {
	if path == "" {
		return content.Default()
	}
	return content.LoadFile(path)
}

// checkCatalog logs every dangling reference, or fails in strict mode.
func (a *App) checkCatalog() error {
	err := a.Catalog.Validate()
	if err == nil {
		return nil
	}
	if a.Config.StrictCatalog {
		return fmt.Errorf("carehub: catalog has dangling references: %w", err)
	}
	for _, ref := range content.RefErrors(err) {
		a.Logger.Warn("dangling catalog reference",
			zap.String("from", ref.From),
			zap.String("field", ref.Field),
			zap.String("slug", ref.Slug),
		)
	}
	return nil
}

// Start initializes the app and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Logger.Info("listening",
		zap.String("addr", a.Config.Addr),
		zap.String("url", a.Config.URL),
		zap.Bool("analytics", a.analyticsStore != nil),
	)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server, waiting for in-flight requests until ctx ends.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Assets shipped with the binary, then the site's own static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embeddedFS))))
	for _, name := range embeddedAssetNames {
		e.GET("/public/"+name, embeddedHandler)
	}
	e.Static("/public", a.staticDir)

	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlogIndex)
	e.GET("/blog/:slug/", a.handleBlogPost)
	e.GET("/conditions/", a.handleConditionIndex)
	e.GET("/conditions/:slug/", a.handleCondition)
	e.GET("/care/", a.handleCareIndex)
	e.GET("/care/:slug/", a.handleCare)
	e.GET("/labs/", a.handleLabsIndex)
	e.GET("/labs/:slug/", a.handleLabs)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/healthz", a.handleHealthz)
	e.GET("/metrics", a.handleMetrics())

	if !a.Config.AdminEnabled() {
		return
	}
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin, loginRateLimiter(5, time.Minute))
	e.POST("/admin/logout/", handleAdminLogout)

	if a.analyticsStore != nil {
		admin := e.Group("/admin/analytics", requireAdmin)
		analytics.NewHandler(a.analyticsStore, a.Logger).RegisterRoutes(admin)
	}
}

// Close releases the analytics store and stops its cleanup scheduler.
func (a *App) Close() error {
	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	if a.analyticsStore != nil {
		return a.analyticsStore.Close()
	}
	return nil
}
