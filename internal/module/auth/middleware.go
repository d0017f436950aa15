package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/jwt"

	"github.com/edubridge/admingate/internal/domain"
	"github.com/edubridge/admingate/internal/pkg"
)

const userIDContextKey = "auth_user_id"

// RequireAdmin returns a middleware that admits only requests carrying a
// valid Bearer session token with the admin role.
func RequireAdmin(jwtSvc jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			pkg.Error(c, domain.NewAppError(domain.CodeUnauthorized, "missing bearer token", nil))
			c.Abort()
			return
		}

		parsed, err := jwtSvc.ValidateAndParse(token)
		if err != nil {
			pkg.Error(c, domain.NewAppError(domain.CodeUnauthorized, "invalid or expired token", err))
			c.Abort()
			return
		}

		if !hasAdminRole(parsed) {
			pkg.Error(c, domain.ErrForbidden)
			c.Abort()
			return
		}

		c.Set(userIDContextKey, parsed.UserID)
		c.Next()
	}
}

// GetUserID extracts the session's user id from the gin.Context.
// Returns an empty string if no session is set.
func GetUserID(c *gin.Context) string {
	if v, exists := c.Get(userIDContextKey); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func hasAdminRole(token *jwt.Token) bool {
	for _, role := range token.Roles {
		if role == "admin" {
			return true
		}
	}
	return false
}
