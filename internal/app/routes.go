package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edubridge/admingate/internal/module/auth"
	"github.com/edubridge/admingate/internal/pkg"
	"github.com/edubridge/admingate/internal/upstream"
)

// RouteDeps holds all dependencies needed to register routes.
type RouteDeps struct {
	// Modules are the per-resource catalog modules.
	Modules []Module
	// Auth is the login module; nil when auth is disabled.
	Auth *auth.AuthModule
	// AdminGuard protects the admin group; nil when auth is disabled.
	AdminGuard gin.HandlerFunc
	// Upstream is used by the health check.
	Upstream *upstream.Client
}

// RegisterRoutes registers all application routes on the given gin.Engine.
func RegisterRoutes(r *gin.Engine, deps *RouteDeps) error {
	if r == nil {
		return errors.New("router is nil")
	}
	if deps == nil {
		return errors.New("route dependencies are nil")
	}
	if len(deps.Modules) == 0 {
		return errors.New("at least one module is required")
	}
	if deps.Upstream == nil {
		return errors.New("upstream client is required")
	}

	r.GET("/health", healthHandler(deps.Upstream))

	api := r.Group("/api/v1")

	if deps.Auth != nil {
		deps.Auth.RegisterRoutes(api)
	}

	admin := api.Group("/admin")
	if deps.AdminGuard != nil {
		admin.Use(deps.AdminGuard)
	}

	for i, m := range deps.Modules {
		if m == nil {
			return fmt.Errorf("module at index %d is nil", i)
		}
		m.RegisterRoutes(admin)
	}

	r.NoRoute(noRouteHandler())

	return nil
}

// healthHandler pings the backend and reports gateway status. The gateway
// itself is stateless, so the only dependency worth checking is upstream
// connectivity.
func healthHandler(client *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		upstreamStatus := "ok"
		status := "ok"
		code := http.StatusOK

		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := client.Ping(ctx); err != nil {
			upstreamStatus = "error"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status": status,
			"components": gin.H{
				"upstream": upstreamStatus,
			},
		})
	}
}

// noRouteHandler returns the JSON 404 envelope for unknown paths.
func noRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		msg := "not found"
		if !strings.HasPrefix(c.Request.URL.Path, "/api/") {
			msg = "not found; dashboard API lives under /api/v1"
		}
		c.JSON(http.StatusNotFound, pkg.Response{Code: http.StatusNotFound, Message: msg})
	}
}
