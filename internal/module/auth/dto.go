package auth

import "github.com/edubridge/admingate/internal/domain"

// LoginRequest represents the input for dashboard login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
}

// SessionResponse represents the session issued after a successful admin
// login.
type SessionResponse struct {
	Token     string          `json:"token"`
	ExpiresAt int64           `json:"expires_at"`
	User      domain.AuthUser `json:"user"`
}
