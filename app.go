// @title           Link Redirector API
// @version         1.0
// @description     Resolves short codes to their target URLs and redirects.

// @contact.name   API Support
// @contact.email  info@bentech.app

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/vit0-9/link_redirector/config"
	_ "github.com/vit0-9/link_redirector/docs"
	"github.com/vit0-9/link_redirector/handlers"
	"github.com/vit0-9/link_redirector/pkg/logging"
	"github.com/vit0-9/link_redirector/pkg/metrics"
	"github.com/vit0-9/link_redirector/pkg/resolver"
	"github.com/vit0-9/link_redirector/pkg/store"
)

// App encapsulates all the components of the application
type App struct {
	Router           *gin.Engine
	RedirectHandlers *handlers.RedirectHandlers
	HealthHandler    *handlers.HealthHandler
	Metrics          *metrics.Metrics

	cfg    *config.Config
	store  store.Store
	logger logrus.FieldLogger
	server *http.Server
}

// NewApp wires the resolver around an already constructed store. The store
// is shared by every request for the lifetime of the App.
func NewApp(cfg *config.Config, linkStore store.Store, logger logrus.FieldLogger) (*App, error) {
	if linkStore == nil {
		return nil, errors.New("nil lookup store")
	}

	m := metrics.New()
	res := resolver.New(linkStore,
		resolver.WithFallbackURL(cfg.FallbackURL),
		resolver.WithLookupTimeout(cfg.LookupTimeout),
		resolver.WithLogger(logger),
		resolver.WithObserver(m),
	)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	router := gin.New()
	router.Use(logging.GinMiddleware(logger), gin.Recovery())

	app := &App{
		Router:           router,
		RedirectHandlers: handlers.NewRedirectHandlers(res),
		HealthHandler:    handlers.NewHealthHandler(linkStore),
		Metrics:          m,
		cfg:              cfg,
		store:            linkStore,
		logger:           logger,
	}

	app.setupRoutes()
	app.server = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return app, nil
}

// setupRoutes defines all the application routes
func (app *App) setupRoutes() {
	apiV1 := app.Router.Group("/api/v1")
	{
		apiV1.GET("/health", app.HealthHandler.HealthCheckHandler)
		apiV1.GET("/ready", app.HealthHandler.ReadinessHandler)
		apiV1.GET("/resolve", app.RedirectHandlers.ResolvePreviewHandler)
		apiV1.GET("/metrics", gin.WrapH(app.Metrics.Handler()))
	}

	// Docs stay off unless asked for.
	if app.cfg.DocsEnabled {
		app.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	}

	app.Router.GET("/", app.RedirectHandlers.RedirectHandler)
	app.Router.GET("/:path", app.RedirectHandlers.RedirectHandler)
	app.Router.GET("/r/:path", app.RedirectHandlers.RedirectHandler)
}

// Start runs the HTTP server until Shutdown is called.
func (app *App) Start() error {
	app.logger.WithField("addr", app.server.Addr).Info("API server starting")
	if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and releases the store.
func (app *App) Shutdown(ctx context.Context) error {
	shutdownErr := app.server.Shutdown(ctx)
	if err := app.store.Close(); err != nil && shutdownErr == nil {
		shutdownErr = errors.Wrap(err, "close store")
	}
	return shutdownErr
}
