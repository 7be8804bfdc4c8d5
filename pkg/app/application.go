package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"canteen/pkg/auth"
	"canteen/pkg/config"
	"canteen/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

// Routes is implemented by every service handler mounted on the application router.
type Routes interface {
	RegisterRoutes(*httprouter.Router)
}

// Options tune the middleware stack wrapped around a service's routes.
type Options struct {
	Verifier middleware.TokenVerifier
	// Roles restricts every application route to these roles. Empty means any
	// authenticated caller.
	Roles     []auth.Role
	RateLimit bool
}

type Application struct {
	cfg           *config.Config
	server        *http.Server
	rateLimiter   *middleware.RateLimiter
	healthHandler http.Handler
	appHandler    http.Handler
	onShutdown    []func() error
}

func NewApplication(cfg *config.Config, appHandler Routes, opts Options) *Application {
	a := &Application{cfg: cfg}
	a.setHealthHandler()
	a.setAppHandler(appHandler, opts)
	a.setAppServer()
	return a
}

// OnShutdown registers fn to run after the HTTP server has stopped.
func (a *Application) OnShutdown(fn func() error) {
	a.onShutdown = append(a.onShutdown, fn)
}

func (a *Application) Handler() http.Handler {
	return a.server.Handler
}

func (a *Application) setHealthHandler() {
	healthRouter := httprouter.New()
	ping := func(ctx context.Context) error {
		if a.cfg.Client == nil || a.cfg.Client.Mongo == nil {
			return errors.New("mongo client not connected")
		}
		return a.cfg.Client.Mongo.Ping(ctx, nil)
	}
	NewHealthHandler(ping, a.cfg.Log).RegisterRoutes(healthRouter)

	var healthHTTPHandler http.Handler = healthRouter
	healthHTTPHandler = middleware.RequestLogging(a.cfg.Log)(healthHTTPHandler)
	healthHTTPHandler = middleware.Recovery(a.cfg.Log)(healthHTTPHandler)
	a.healthHandler = healthHTTPHandler
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
}

func (a *Application) setAppHandler(appHandler Routes, opts Options) {
	appRouter := httprouter.New()
	appHandler.RegisterRoutes(appRouter)

	// Order: Recovery → Logging → MaxSize → Auth → Roles → RateLimit → Timeout → Router
	var appHTTPHandler http.Handler = appRouter
	appHTTPHandler = middleware.RequestTimeout(a.cfg.RequestTimeout)(appHTTPHandler)
	if opts.RateLimit {
		a.rateLimiter = middleware.NewRateLimiter(
			a.cfg.RateLimitRequests,
			a.cfg.RateLimitWindow,
			middleware.SubjectKey,
			a.cfg.Log,
		)
		appHTTPHandler = middleware.RateLimit(a.rateLimiter)(appHTTPHandler)
	}
	if len(opts.Roles) > 0 {
		appHTTPHandler = middleware.RequireRole(a.cfg.Log, opts.Roles...)(appHTTPHandler)
	}
	if opts.Verifier != nil {
		appHTTPHandler = middleware.Authenticate(opts.Verifier, a.cfg.Log)(appHTTPHandler)
	}
	appHTTPHandler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(appHTTPHandler)
	appHTTPHandler = middleware.RequestLogging(a.cfg.Log)(appHTTPHandler)
	appHTTPHandler = middleware.Recovery(a.cfg.Log)(appHTTPHandler)
	a.appHandler = appHTTPHandler
	a.cfg.Log.Info("Application endpoints configured",
		"authenticated", opts.Verifier != nil,
		"roles", opts.Roles,
		"rate_limited", opts.RateLimit,
	)
}

func (a *Application) setAppServer() {
	mux := http.NewServeMux()
	mux.Handle("/health", a.healthHandler)
	mux.Handle("/ready", a.healthHandler)
	mux.Handle("/", a.appHandler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	for _, fn := range a.onShutdown {
		if err := fn(); err != nil {
			a.cfg.Log.Error("Shutdown hook failed", "error", err)
		}
	}

	a.cfg.Log.Info("Server stopped gracefully")
}
