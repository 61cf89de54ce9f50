// Package inkwell is a single-author blog engine built with Go, Echo, and
// templ. Articles are stored in SQLite, each under exactly one category;
// the author signs in with a bcrypt-verified credential to create and edit
// articles and categories.
//
// The embedding program supplies its own templ components via ViewFuncs and
// inkwell handles the handler logic, middleware, and database operations.
package inkwell

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds user-provided templ components that the engine calls when
// rendering pages. This is the inversion-of-control mechanism that lets the
// embedding site own all of its templates.
type ViewFuncs struct {
	Home             func(articles []ArticleView, categories []Category, cfg SiteConfig) templ.Component
	Entry            func(article ArticleView, cfg SiteConfig) templ.Component
	EntryForm        func(article ArticleView, categories []Category, csrfToken string) templ.Component
	Categories       func(categories []Category, csrfToken string) templ.Component
	CategoryArticles func(name string, articles []ArticleView) templ.Component
	CategoryForm     func(category Category, csrfToken string) templ.Component
	Login            func(showError bool, csrfToken string) templ.Component
	ImageList        func(images []Image, csrfToken string) templ.Component
	NotFound         func() templ.Component
	ServerError      func() templ.Component
}

// App is the central inkwell application. It wires together the store, cache,
// credential verifier, handlers, middleware, and user-provided templates.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Cache    *ListingCache
	Verifier *Verifier
	Views    ViewFuncs

	customRoutes []func(*App)
	staticDir    string
}

// New creates a new inkwell App with the given configuration and view functions.
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
// server.
func (a *App) Start() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("inkwell: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("inkwell: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewListingCache(store, a.Config.RecentWindow, a.Config.ListingCacheTTL)
	a.Verifier = NewVerifier(store)

	// Credentials are provisioned out-of-band, before the server accepts
	// requests; no handler can create or change them.
	if a.Config.AdminUsername != "" && a.Config.AdminPassword != "" {
		if err := store.SeedCredential(context.Background(), a.Config.AdminUsername, a.Config.AdminPassword); err != nil {
			return fmt.Errorf("inkwell: seed credential: %w", err)
		}
	}

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

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public reads
	e.GET("/", a.handleHome)
	e.GET("/entry/:id/", a.handleEntry)
	e.GET("/category/", a.handleCategories)
	e.GET("/category/:name/", a.handleCategory)

	// Author session
	e.GET("/login/", a.handleLoginForm)
	e.POST("/login/", a.handleLogin)
	e.POST("/logout/", handleLogout)

	// Author writes
	e.GET("/entry/add/", a.handleEntryAdd)
	e.POST("/entry/add/", a.handleEntrySave)
	e.GET("/entry/:id/edit/", a.handleEntryEdit)
	e.POST("/entry/:id/edit/", a.handleEntryUpdate)
	e.GET("/category/new/", a.handleCategoryNew)
	e.POST("/category/new/", a.handleCategoryCreate)
	e.GET("/category/:name/edit/", a.handleCategoryEdit)
	e.POST("/category/:name/edit/", a.handleCategoryRename)

	// Image admin
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)
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

// MustEnv returns the value of the environment variable key, or fatally exits
// if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("inkwell: required environment variable %s is not set", key)
	}
	return v
}
