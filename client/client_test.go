package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/connective/backend/models"
)

func writeEnvelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func writeEnvelopeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}

func TestLoginStoresTokenForLaterCalls(t *testing.T) {
	var sawAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/auth/login":
			var req models.LoginRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("failed to decode login body: %v", err)
			}
			if req.Email != "alice@example.com" {
				t.Errorf("login email = %s", req.Email)
			}
			writeEnvelope(w, http.StatusOK, map[string]any{
				"access_token": "tok-123",
				"user":         models.User{ID: "alice", Email: req.Email},
			})
		case r.URL.Path == "/api/conversations":
			sawAuth = r.Header.Get("Authorization")
			writeEnvelope(w, http.StatusOK, []models.Conversation{})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	user, err := c.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != "alice" {
		t.Errorf("user.ID = %s, want alice", user.ID)
	}

	if _, err := c.ListConversations(ctx); err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if sawAuth != "Bearer tok-123" {
		t.Errorf("Authorization header = %q, want Bearer tok-123", sawAuth)
	}
}

func TestClientSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelopeError(w, http.StatusUnauthorized, "invalid email or password")
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "alice@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid email or password") {
		t.Errorf("error %q should carry the server message", err)
	}
}

func TestMarkReadSkipsEmptySet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected for empty mark-read, got %s %s", r.Method, r.URL.Path)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.MarkRead(context.Background(), nil); err != nil {
		t.Fatalf("MarkRead with empty set failed: %v", err)
	}
}
