// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"givehub/internal/session"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

// Cookie-less requests never reach Valkey, so a store with a nil client
// is safe for routing tests that stay unauthenticated.
func newTestRouter() http.Handler {
	store := session.NewStore(nil, false)
	return New(store, nil, nil, nil, nil)
}

func TestRouterHealthRoute(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("GET /health: got %d, want 200", w.Code)
	}
}

func TestRouterProtectedRoutesRequireAuth(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		method string
		path   string
	}{
		{"GET", "/api/auth/me"},
		{"POST", "/api/text-post-image"},
		{"POST", "/api/posts"},
		{"DELETE", "/api/posts/" + "11111111-1111-1111-1111-111111111111"},
		{"POST", "/api/auth/2fa/setup"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without session: got %d, want 401", tt.method, tt.path, w.Code)
		}
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("GET /nope: got %d, want 404", w.Code)
	}
}
