package auth

import "github.com/gin-gonic/gin"

// AuthModule registers the authentication routes.
type AuthModule struct {
	handler *AuthHandler
}

// NewModule creates a new AuthModule with the given handler.
// Panics if h is nil.
func NewModule(h *AuthHandler) *AuthModule {
	if h == nil {
		panic("auth.NewModule: handler must not be nil")
	}
	return &AuthModule{handler: h}
}

// RegisterRoutes registers auth API routes. Login is deliberately outside
// the admin group so it stays reachable without a session.
func (m *AuthModule) RegisterRoutes(api *gin.RouterGroup) {
	grp := api.Group("/auth")
	grp.POST("/login", m.handler.Login)
}
