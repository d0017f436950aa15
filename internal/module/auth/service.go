// Package auth implements dashboard sign-in. Credential verification is
// delegated to the platform backend's /auth/login endpoint; this service
// only decides whether the authenticated user may use the dashboard and
// issues the gateway session token. Only the "admin" role is admitted;
// any other role is rejected even when the backend accepted the
// credentials.
package auth

import (
	"context"
	"time"

	"github.com/simp-lee/jwt"

	"github.com/edubridge/admingate/internal/domain"
)

// Service defines the dashboard authentication operations.
type Service interface {
	Login(ctx context.Context, email, password string) (*SessionResponse, error)
}

// Verifier is the upstream credential check. *upstream.Client satisfies it.
type Verifier interface {
	Login(ctx context.Context, email, password string) (*domain.AuthUser, error)
}

// authService implements Service.
type authService struct {
	jwtSvc      jwt.Service
	verifier    Verifier
	tokenExpiry time.Duration
}

// NewService creates a new auth Service.
func NewService(jwtSvc jwt.Service, verifier Verifier, tokenExpiry time.Duration) Service {
	return &authService{
		jwtSvc:      jwtSvc,
		verifier:    verifier,
		tokenExpiry: tokenExpiry,
	}
}

// Login verifies credentials against the backend and issues a session token
// when the user holds the admin role.
func (s *authService) Login(ctx context.Context, email, password string) (*SessionResponse, error) {
	user, err := s.verifier.Login(ctx, email, password)
	if err != nil {
		// Don't reveal whether the account exists: an upstream not-found
		// reads the same as a bad password.
		if domain.IsNotFound(err) || domain.IsUnauthorized(err) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if user.Role != "admin" {
		return nil, domain.ErrForbidden
	}

	token, err := s.jwtSvc.GenerateToken(user.ID, []string{"admin"}, s.tokenExpiry)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to generate token", err)
	}

	parsedToken, parseErr := s.jwtSvc.ParseToken(token)
	if parseErr != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to parse generated token", parseErr)
	}

	return &SessionResponse{
		Token:     token,
		ExpiresAt: parsedToken.ExpiresAt.Unix(),
		User:      *user,
	}, nil
}
