// Package tintero is a file-backed personal blog engine built with Go,
// Echo, and templ. Posts live as markdown files with front matter,
// visit statistics and feature toggles as JSON documents, and reader
// comments in a decoupled comment service sharing the same filesystem.
//
// Users provide their own templ components via the ViewFuncs struct;
// tintero owns the handler logic, middleware, and persistence.
package tintero

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/lromero/tintero/comments"
	"github.com/lromero/tintero/content"
	"github.com/lromero/tintero/settings"
	"github.com/lromero/tintero/stats"
)

// ViewFuncs holds user-provided templ components that the engine calls
// when rendering pages. This is the inversion-of-control mechanism
// that keeps all templates in the calling layer.
type ViewFuncs struct {
	Home           func(res content.Result, q content.Query, siteURL string) templ.Component
	Post           func(post content.Post, body templ.Component, related []content.Post, commentsEnabled bool, siteURL string) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(posts []content.Post, report stats.Report, message string, csrfToken string) templ.Component
	AdminEdit      func(post content.Post, isNew bool, csrfToken string) templ.Component
	AdminComments  func(pending []comments.Comment, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central tintero application. It wires together the
// stores, handlers, middleware, and user-provided templates.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Content  *content.Store
	Stats    *stats.Store
	Comments *comments.Store
	Settings *settings.Store
	Views    ViewFuncs

	loginLimiter *loginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new tintero App with the given configuration and view
// functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "static",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the stores, middleware, and routes, then starts
// the server.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("tintero: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("tintero: SessionSecret is required")
	}

	contentStore, err := content.NewStore(a.Config.ContentDir)
	if err != nil {
		return fmt.Errorf("tintero: init content store: %w", err)
	}
	a.Content = contentStore

	commentStore, err := comments.NewStore(a.Config.CommentsDir)
	if err != nil {
		return fmt.Errorf("tintero: init comment store: %w", err)
	}
	a.Comments = commentStore

	a.Stats = stats.NewStore(a.Config.StatsPath)
	a.Settings = settings.NewStore(a.Config.SettingsPath)
	a.loginLimiter = newLoginLimiter(5, loginWindow)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/static", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/post/:slug/", a.handlePost)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/new/", a.handleAdminEdit)
	e.GET("/admin/edit/:slug/", a.handleAdminEdit)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/post/:slug/", a.handleAdminDelete)
	e.GET("/admin/comments/", a.handleAdminComments)
	e.POST("/admin/comments/:slug/approve/", a.handleCommentApprove)
	e.POST("/admin/comments/:slug/delete/", a.handleCommentDelete)
	e.POST("/admin/settings/", a.handleAdminSettings)
	e.POST("/admin/upload/", a.handleUpload)
	e.GET("/admin/backup/", a.handleBackup)
	e.GET("/admin/export-stats/", a.handleExportStats)
}

// EnvOr returns the value of the environment variable key, or fallback
// if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or
// fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("tintero: required environment variable %s is not set", key)
	}
	return v
}
