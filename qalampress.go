// Package qalampress is a small blog publishing platform: a JSON API
// over a SQLite content store, a shared-secret admin gate for the
// write paths, and a public rendering layer that serves
// server-generated SEO pages and a sitemap. Posts are bilingual
// (English and Urdu) and the rendered pages switch text direction
// accordingly.
package qalampress

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/qalamkar/qalampress/media"
)

// App wires together the store, blog service, media backend,
// middleware, and routes.
type App struct {
	Config  Config
	Echo    *echo.Echo
	Log     zerolog.Logger
	Store   *Store
	Service *Service
	Media   media.Uploader

	limiter *AttemptLimiter
}

// Option configures additional App behavior.
type Option func(*App)

// WithMediaUploader overrides the media backend the config would
// otherwise select.
func WithMediaUploader(u media.Uploader) Option {
	return func(a *App) {
		a.Media = u
	}
}

// New builds a fully wired App. The SQLite database is opened (and
// created if absent) here, so an App that constructs without error is
// ready to serve.
func New(cfg Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		Config:  cfg,
		Echo:    echo.New(),
		Log:     NewLogger(cfg.LogLevel, cfg.LogPretty),
		limiter: NewAttemptLimiter(10, time.Minute),
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	store, err := NewStore(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	a.Store = store
	a.Service = NewService(store)

	if a.Media == nil {
		uploader, err := newMediaUploader(cfg)
		if err != nil {
			return nil, err
		}
		a.Media = uploader
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

func newMediaUploader(cfg Config) (media.Uploader, error) {
	switch cfg.MediaBackend {
	case "s3":
		return media.NewS3(context.Background(), media.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	case "http":
		return media.NewHTTP(cfg.MediaUploadURL, cfg.MediaAPIKey), nil
	default:
		return media.NewDisk(cfg.uploadsRoot()), nil
	}
}

// uploadsRoot is where the disk media backend writes and where
// /uploads/* is served from.
func (c *Config) uploadsRoot() string {
	if c.StaticRoot != "" {
		return c.StaticRoot
	}
	return "public"
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/healthz", a.handleHealth)

	api := e.Group("/api")
	api.GET("/posts", a.handleListPosts)
	api.GET("/posts/slug/:slug", a.handleGetPostBySlug)
	api.GET("/posts/:id", a.handleGetPost)
	api.POST("/posts", a.handleCreatePost, a.adminGate)
	api.PUT("/posts/:id", a.handleUpdatePost, a.adminGate)
	api.DELETE("/posts/:id", a.handleDeletePost, a.adminGate)
	api.POST("/posts/upload-image", a.handleUploadImage, a.adminGate)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/post/:slug", a.handlePostPage)

	e.GET("/", a.handleIndex)
	e.GET("/admin", a.handleAdminPanel, a.adminGate)

	a.setupStatic()
}

// Start runs the HTTP server until Shutdown is called.
func (a *App) Start() error {
	a.Log.Info().Str("addr", a.Config.Addr).Str("media", a.Config.MediaBackend).Msg("server starting")
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully and closes the store.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if a.Store != nil {
		if cerr := a.Store.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
