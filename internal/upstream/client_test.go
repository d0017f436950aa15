package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/edubridge/admingate/internal/domain"
)

func TestClient_UnwrapsEnvelope(t *testing.T) {
	payload := map[string]any{"_id": "r1", "name": "Asha"}

	t.Run("wrapped response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"statusCode": 200, "data": payload, "message": "success", "success": true,
			})
		}))
		defer srv.Close()

		raw, err := New(srv.URL, 0).Get(context.Background(), "/admin/leads/r1", nil)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		var got map[string]any
		if err := json.Unmarshal(raw, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got["_id"] != "r1" || got["name"] != "Asha" {
			t.Errorf("got %v; want inner data object", got)
		}
	})

	t.Run("bare response behaves identically", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(payload)
		}))
		defer srv.Close()

		raw, err := New(srv.URL, 0).Get(context.Background(), "/admin/leads/r1", nil)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		var got map[string]any
		if err := json.Unmarshal(raw, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got["_id"] != "r1" {
			t.Errorf("got %v; want the raw object", got)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		raw, err := New(srv.URL, 0).Get(context.Background(), "/x", nil)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if len(raw) != 0 {
			t.Errorf("raw = %q; want empty", raw)
		}
	})
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"404 not found", http.StatusNotFound, domain.IsNotFound},
		{"400 validation", http.StatusBadRequest, domain.IsValidation},
		{"422 validation", http.StatusUnprocessableEntity, domain.IsValidation},
		{"401 unauthorized", http.StatusUnauthorized, domain.IsUnauthorized},
		{"403 forbidden", http.StatusForbidden, domain.IsForbidden},
		{"500 upstream", http.StatusInternalServerError, domain.IsUpstream},
		{"503 upstream", http.StatusServiceUnavailable, domain.IsUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := New(srv.URL, 0).Get(context.Background(), "/admin/leads", nil)
			if err == nil {
				t.Fatal("want error, got nil")
			}
			if !tt.check(err) {
				t.Errorf("error %v not mapped for status %d", err, tt.status)
			}
		})
	}
}

func TestClient_ErrorMessage(t *testing.T) {
	t.Run("server message preferred", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{"message": "lead not found", "success": false})
		}))
		defer srv.Close()

		_, err := New(srv.URL, 0).Get(context.Background(), "/admin/leads/x", nil)
		if got := domain.Message(err, "fallback"); got != "lead not found" {
			t.Errorf("message = %q; want server-supplied message", got)
		}
	})

	t.Run("generic message when body has none", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		err := New(srv.URL, 0).Delete(context.Background(), "/admin/leads/x")
		if got := domain.Message(err, "fallback"); got != "failed to delete /admin/leads/x" {
			t.Errorf("message = %q", got)
		}
	})
}

func TestClient_RequestShape(t *testing.T) {
	var gotMethod, gotPath, gotQuery, gotContentType string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"ok": true}})
	}))
	defer srv.Close()

	c := New(srv.URL+"/", 0) // trailing slash must not double up

	if _, err := c.Patch(context.Background(), "/admin/leads/l1", map[string]any{"status": "contacted"}); err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/admin/leads/l1" {
		t.Errorf("got %s %s", gotMethod, gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotBody["status"] != "contacted" {
		t.Errorf("body = %v", gotBody)
	}

	params := url.Values{}
	params.Set("status", "new")
	if _, err := c.Get(context.Background(), "/admin/leads", params); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotQuery != "status=new" {
		t.Errorf("query = %q; want status=new", gotQuery)
	}
}

func TestClient_Login(t *testing.T) {
	user := map[string]any{"_id": "u1", "name": "Admin", "email": "a@b.com", "role": "admin"}

	t.Run("nested user object", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/auth/login" {
				t.Errorf("path = %q", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"user": user, "token": "ignored"}})
		}))
		defer srv.Close()

		got, err := New(srv.URL, 0).Login(context.Background(), "a@b.com", "secret")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if got.ID != "u1" || got.Role != "admin" {
			t.Errorf("user = %+v", got)
		}
	})

	t.Run("bare user object", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"data": user})
		}))
		defer srv.Close()

		got, err := New(srv.URL, 0).Login(context.Background(), "a@b.com", "secret")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if got.Email != "a@b.com" {
			t.Errorf("user = %+v", got)
		}
	})

	t.Run("bad credentials", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"message": "invalid credentials"})
		}))
		defer srv.Close()

		_, err := New(srv.URL, 0).Login(context.Background(), "a@b.com", "wrong")
		if !domain.IsUnauthorized(err) {
			t.Errorf("err = %v; want unauthorized", err)
		}
	})
}

func TestClient_Ping(t *testing.T) {
	t.Run("any response counts as reachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		if err := New(srv.URL, 0).Ping(context.Background()); err != nil {
			t.Errorf("Ping: %v", err)
		}
	})

	t.Run("unreachable backend", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		err := New(srv.URL, time.Second).Ping(context.Background())
		if !domain.IsUpstream(err) {
			t.Errorf("err = %v; want upstream error", err)
		}
	})
}
