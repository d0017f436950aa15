package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/jwt"
	"github.com/simp-lee/logger"

	"github.com/edubridge/admingate/internal/config"
	"github.com/edubridge/admingate/internal/middleware"
	"github.com/edubridge/admingate/internal/module/auth"
	"github.com/edubridge/admingate/internal/module/catalog"
	"github.com/edubridge/admingate/internal/resource"
	"github.com/edubridge/admingate/internal/store"
	"github.com/edubridge/admingate/internal/upstream"
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine *gin.Engine
	logger *logger.Logger
	cfg    *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, the upstream client, one store per dashboard
// collection, the auth and catalog modules, middleware, and routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	// 1. Setup logger.
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}
	if !cfg.Auth.Enabled {
		log.Warn("auth disabled: admin routes are unauthenticated")
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	// 2. Upstream client for the platform backend.
	client := upstream.New(cfg.Upstream.BaseURL, cfg.UpstreamTimeout())

	// 3. One store per collection, each feeding a generic catalog module.
	modules := []Module{
		catalog.NewModule(store.New(client, resource.AdmissionRequests)),
		catalog.NewModule(store.New(client, resource.BlogCategories)),
		catalog.NewModule(store.New(client, resource.CampusCourses)),
		catalog.NewModule(store.New(client, resource.SkillsCourses)),
		catalog.NewModule(store.New(client, resource.Internships)),
		catalog.NewModule(store.New(client, resource.Leads)),
		catalog.NewModule(store.New(client, resource.Testimonials)),
		catalog.NewModule(store.New(client, resource.Accounts)),
	}

	// 4. Session tokens and the admin gate, when auth is enabled.
	var authModule *auth.AuthModule
	var adminGuard gin.HandlerFunc
	if cfg.Auth.Enabled {
		jwtSvc, err := jwt.New(cfg.Auth.JWTSecret)
		if err != nil {
			return nil, fmt.Errorf("setup jwt service: %w", err)
		}
		authSvc := auth.NewService(jwtSvc, client, cfg.TokenExpiry())
		authModule = auth.NewModule(auth.NewHandler(authSvc))
		adminGuard = auth.RequireAdmin(jwtSvc)
	}

	// 5. Create Gin engine with custom middleware (not gin.Default()).
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	// In release mode, when no allowlist is configured, default to deny
	// cross-origin requests.
	corsConfig := resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS.AllowOrigins)

	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TrustUpstream: false,
		}),
		middleware.Logger(log.Logger),
		middleware.CORSWithConfig(corsConfig),
	)

	// 6. Register all routes.
	if err := RegisterRoutes(engine, &RouteDeps{
		Modules:    modules,
		Auth:       authModule,
		AdminGuard: adminGuard,
		Upstream:   client,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		engine: engine,
		logger: log,
		cfg:    cfg,
	}, nil
}

func resolveCORSConfig(mode string, configuredAllowOrigins []string) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()

	if len(configuredAllowOrigins) > 0 {
		corsConfig.AllowOrigins = configuredAllowOrigins
		return corsConfig
	}

	if mode == gin.ReleaseMode {
		corsConfig.AllowOrigins = []string{}
	}

	return corsConfig
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It performs graceful shutdown with a 5-second timeout.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine)

	// Listen for SIGINT / SIGTERM.
	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log().Info("server started",
			slog.String("addr", addr),
			slog.String("upstream", a.cfg.Upstream.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error

	select {
	case <-ctx.Done():
		a.log().Info("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.log().Error("server shutdown error", slog.Any("error", err))
		}
	}

	a.log().Info("server stopped")
	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}

	return runErr
}

// log returns the app logger's slog handle, falling back to the default.
func (a *App) log() *slog.Logger {
	if a.logger != nil {
		return a.logger.Logger
	}
	return slog.Default()
}
