// Package upstream implements the REST client for the platform backend.
//
// The backend wraps most responses in a {statusCode, data, message, success}
// envelope, but not all deployments do; Client unwraps the "data" key when it
// is present and otherwise returns the payload as-is, so callers see the same
// shape either way.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/edubridge/admingate/internal/domain"
)

// Client issues REST calls against the configured backend base URL.
// No retries and no per-request timeout are applied beyond the optional
// client-wide timeout; a failed call surfaces as a *domain.AppError.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL. A zero timeout means no
// client-side timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping reports whether the backend is reachable. Any HTTP response counts;
// the health check cares about connectivity, not the status of "/".
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, "build request", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.NewAppError(domain.CodeUpstream, "backend unreachable", err)
	}
	resp.Body.Close()
	return nil
}

// envelope is the backend's standard response wrapper.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

// Get issues GET {path}?{query} and returns the unwrapped payload.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post issues POST {path} with a JSON body and returns the unwrapped payload.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Patch issues PATCH {path} with a JSON body and returns the unwrapped payload.
func (c *Client) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, path, nil, body)
}

// Delete issues DELETE {path}. The backend confirms with a 2xx and no
// required body.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// Login posts credentials to /auth/login and returns the upstream user.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthUser, error) {
	payload, err := c.Post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	// Some deployments return {user: {...}}, others the user object directly.
	var wrapped struct {
		User *upstreamUser `json:"user"`
	}
	if err := json.Unmarshal(payload, &wrapped); err == nil && wrapped.User != nil {
		return wrapped.User.normalized(), nil
	}

	var user upstreamUser
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, domain.NewAppError(domain.CodeUpstream, "unexpected login response", err)
	}
	return user.normalized(), nil
}

// upstreamUser tolerates both "id" and the backend's "_id" key.
type upstreamUser struct {
	domain.AuthUser
	MongoID string `json:"_id"`
}

func (u *upstreamUser) normalized() *domain.AuthUser {
	user := u.AuthUser
	if user.ID == "" {
		user.ID = u.MongoID
	}
	return &user
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, domain.NewAppError(domain.CodeInternal, "encode request body", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeUpstream,
			fmt.Sprintf("failed to %s %s", strings.ToLower(method), path), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeUpstream, "read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, method, path, raw)
	}

	return unwrap(raw), nil
}

// unwrap extracts the "data" payload from an enveloped response. When the
// body is not an envelope (no "data" key), the raw payload is returned so
// unwrapped backends behave identically.
func unwrap(raw []byte) json.RawMessage {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil {
		return env.Data
	}
	return raw
}

// statusError maps a non-2xx response to the error taxonomy, preferring the
// server-supplied envelope message over the generic "failed to {verb} {path}".
func statusError(status int, method, path string, raw []byte) error {
	msg := fmt.Sprintf("failed to %s %s", strings.ToLower(method), path)
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		msg = env.Message
	}

	code := domain.CodeUpstream
	switch status {
	case http.StatusNotFound:
		code = domain.CodeNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		code = domain.CodeValidation
	case http.StatusUnauthorized:
		code = domain.CodeUnauthorized
	case http.StatusForbidden:
		code = domain.CodeForbidden
	}
	return domain.NewAppError(code, msg, nil)
}
