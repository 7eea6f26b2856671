// Package atelier is a personal portfolio and blog engine built with Go,
// Echo, and templ. It serves the site pages, an admin surface for post and
// gallery curation, a JSON content API that browser-side sync layers mirror
// against, and a chat relay that proxies visitor questions to a hosted
// generation endpoint.
//
// Users provide their own templ components via the ViewFuncs struct, and
// atelier handles handler logic, middleware, and database operations.
package atelier

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds user-provided templ components that the engine calls when
// rendering pages. This is the inversion-of-control mechanism that lets the
// site own and customize all templates.
type ViewFuncs struct {
	Home           func(profile Profile, posts []Post, settings SiteSettings, cfg SiteConfig) templ.Component
	Post           func(post Post, cfg SiteConfig) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(posts []Post, settings SiteSettings, images []Image, message string, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central atelier application. It wires together the store,
// cache, chat assistant, handlers, middleware, and user-provided templates.
type App struct {
	Config    SiteConfig
	Profile   Profile
	Echo      *echo.Echo
	Store     *Store
	Cache     *PostCache
	Assistant *Assistant
	Views     ViewFuncs

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
	profileSet   bool
}

// New creates a new atelier App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, middleware, routes, and starts the
// server. It blocks until the server stops.
func (a *App) Start() error {
	if err := a.setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// setup performs everything Start does short of listening. Split out so
// tests can exercise a fully wired App against httptest.
func (a *App) setup() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("atelier: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("atelier: SessionSecret is required")
	}

	if !a.profileSet {
		profile, err := LoadProfile(a.Config.ProfilePath)
		if err != nil {
			return fmt.Errorf("atelier: load profile: %w", err)
		}
		a.Profile = profile
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("atelier: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	a.Assistant = NewAssistant(a.Config.GenAPIKey, a.Config.GenModel, a.Config.GenEndpoint)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded engine assets (widget script + stylesheet) are served under
	// /public/ and fall through to the site's static dir for everything else.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/chat.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public pages
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/blog/:id/", a.handlePost)

	// Admin pages
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/post/:id/", a.handleAdminDelete)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)

	// JSON content API mirrored by the browser sync layer. GETs are public;
	// mutations require an admin session.
	e.GET("/api/posts", a.handleAPIListPosts)
	e.POST("/api/posts", a.handleAPISavePost)
	e.DELETE("/api/posts/:id", a.handleAPIDeletePost)
	e.GET("/api/config", a.handleAPIGetConfig)
	e.PATCH("/api/config", a.handleAPIPatchConfig)
	e.POST("/api/upload", a.handleAPIUpload)
	e.POST("/api/chat", a.handleAPIChat)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("atelier: required environment variable %s is not set", key)
	}
	return v
}
