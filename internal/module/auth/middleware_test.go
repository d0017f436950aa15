package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/jwt"

	"github.com/edubridge/admingate/internal/pkg"
)

// validatingJWTService controls ValidateAndParse for middleware testing.
type validatingJWTService struct {
	fakeJWTService
	validated *jwt.Token
	validErr  error
}

func (v *validatingJWTService) ValidateAndParse(string) (*jwt.Token, error) {
	return v.validated, v.validErr
}

func setupGuardedRouter(jwtSvc jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	admin := r.Group("/api/v1/admin", RequireAdmin(jwtSvc))
	admin.GET("/ping", func(c *gin.Context) {
		pkg.Success(c, gin.H{"user_id": GetUserID(c)})
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	adminToken := &jwt.Token{
		UserID:    "u1",
		Roles:     []string{"admin"},
		ExpiresAt: time.Now().Add(time.Hour),
	}

	tests := []struct {
		name       string
		jwtSvc     jwt.Service
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid admin token",
			jwtSvc:     &validatingJWTService{validated: adminToken},
			authHeader: "Bearer good-token",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			jwtSvc:     &validatingJWTService{validated: adminToken},
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			jwtSvc:     &validatingJWTService{validated: adminToken},
			authHeader: "Token abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			jwtSvc:     &validatingJWTService{validErr: errors.New("expired")},
			authHeader: "Bearer stale-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "non-admin role",
			jwtSvc: &validatingJWTService{validated: &jwt.Token{
				UserID: "u2", Roles: []string{"student"}, ExpiresAt: time.Now().Add(time.Hour),
			}},
			authHeader: "Bearer student-token",
			wantStatus: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupGuardedRouter(tt.jwtSvc)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/ping", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (body %s)", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	t.Run("set by middleware", func(t *testing.T) {
		r := setupGuardedRouter(&validatingJWTService{validated: &jwt.Token{
			UserID: "u1", Roles: []string{"admin"}, ExpiresAt: time.Now().Add(time.Hour),
		}})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if got := w.Body.String(); !strings.Contains(got, `"user_id":"u1"`) {
			t.Errorf("response %s does not carry the session user id", got)
		}
	})

	t.Run("empty without session", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		if got := GetUserID(c); got != "" {
			t.Errorf("GetUserID = %q; want empty", got)
		}
	})
}
