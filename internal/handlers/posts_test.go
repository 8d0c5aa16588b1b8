// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"givehub/internal/middleware"
	"givehub/internal/models"
)

func postsRouter(env *testEnv) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.LoadSession(env.Sessions))
	r.With(middleware.RequireAuth, middleware.Require2FA).
		Post("/api/posts", env.Posts.Create)
	r.With(middleware.RequireAuth, middleware.Require2FA).
		Delete("/api/posts/{id}", env.Posts.Delete)
	r.Get("/api/posts/{id}", env.Posts.Get)
	r.Get("/api/organizations/{id}/posts", env.Posts.ListByOrganization)
	return r
}

func TestCreatePost(t *testing.T) {
	env := newTestEnv(t)
	org, _ := env.seedThemedOrg(t, "#2E5C8A")
	_, cookie := env.seedUser(t, models.RoleMember, nil)
	router := postsRouter(env)

	body := `{"title":"Food drive this weekend","body":"Bring **canned goods** to the warehouse.","organization_id":"` + org.ID.String() + `"}`
	rr := postJSON(t, router, "/api/posts", body, cookie)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (body: %s)", rr.Code, rr.Body.String())
	}

	var post struct {
		ID                 string `json:"id"`
		Kind               string `json:"kind"`
		Title              string `json:"title"`
		ImageURL           string `json:"image_url"`
		BackgroundColorHex string `json:"background_color_hex"`
		BodyHTML           string `json:"body_html"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &post); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if post.Kind != "text" {
		t.Errorf("kind: got %q, want text", post.Kind)
	}
	if post.ImageURL == "" {
		t.Error("expected image_url on text post")
	}
	if !strings.EqualFold(post.BackgroundColorHex, "2e5c8a") {
		t.Errorf("background_color_hex: got %q", post.BackgroundColorHex)
	}
	if !strings.Contains(post.BodyHTML, "<strong>canned goods</strong>") {
		t.Errorf("body_html %q missing rendered markdown", post.BodyHTML)
	}
	if env.Renderer.launches != 1 {
		t.Errorf("launches: got %d, want 1", env.Renderer.launches)
	}

	// The generated card and its thumbnail landed in storage.
	if len(env.Storage.uploads) != 2 {
		t.Errorf("uploads: got %d, want 2", len(env.Storage.uploads))
	}
}

func TestCreatePostGenerationFailureWritesNoRow(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.seedUser(t, models.RoleMember, nil)
	router := postsRouter(env)

	// Organization does not exist, so generation fails before the insert.
	body := `{"title":"Hello","body":"","organization_id":"11111111-1111-1111-1111-111111111111"}`
	rr := postJSON(t, router, "/api/posts", body, cookie)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404 (body: %s)", rr.Code, rr.Body.String())
	}

	var count int
	if err := env.DB.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if count != 0 {
		t.Errorf("posts rows: got %d, want 0", count)
	}
}

func TestCreatePostValidation(t *testing.T) {
	env := newTestEnv(t)
	org, _ := env.seedThemedOrg(t, "#2E5C8A")
	_, cookie := env.seedUser(t, models.RoleMember, nil)
	router := postsRouter(env)

	body := `{"title":"","body":"text","organization_id":"` + org.ID.String() + `"}`
	rr := postJSON(t, router, "/api/posts", body, cookie)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rr.Code)
	}
	if env.Renderer.launches != 0 {
		t.Errorf("launches: got %d, want 0", env.Renderer.launches)
	}
}

func TestDeletePost(t *testing.T) {
	env := newTestEnv(t)
	org, _ := env.seedThemedOrg(t, "#2E5C8A")
	_, cookie := env.seedUser(t, models.RoleMember, nil)
	router := postsRouter(env)

	body := `{"title":"Short-lived","body":"","organization_id":"` + org.ID.String() + `"}`
	rr := postJSON(t, router, "/api/posts", body, cookie)
	if rr.Code != http.StatusCreated {
		t.Fatalf("seed post: status %d", rr.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created post: %v", err)
	}
	if len(env.Storage.uploads) != 2 {
		t.Fatalf("uploads before delete: got %d, want 2", len(env.Storage.uploads))
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/"+created.ID, nil)
	req.AddCookie(cookie)
	del := httptest.NewRecorder()
	router.ServeHTTP(del, req)

	if del.Code != http.StatusOK {
		t.Fatalf("delete status: got %d, want 200 (body: %s)", del.Code, del.Body.String())
	}

	// The card and thumbnail were removed from storage along with the row.
	if len(env.Storage.uploads) != 0 {
		t.Errorf("uploads after delete: got %d, want 0", len(env.Storage.uploads))
	}
	var count int
	if err := env.DB.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if count != 0 {
		t.Errorf("posts rows after delete: got %d, want 0", count)
	}
}

func TestDeletePostPermissions(t *testing.T) {
	env := newTestEnv(t)
	org, _ := env.seedThemedOrg(t, "#2E5C8A")
	_, authorCookie := env.seedUser(t, models.RoleMember, nil)
	router := postsRouter(env)

	body := `{"title":"Contested","body":"","organization_id":"` + org.ID.String() + `"}`
	rr := postJSON(t, router, "/api/posts", body, authorCookie)
	if rr.Code != http.StatusCreated {
		t.Fatalf("seed post: status %d", rr.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created post: %v", err)
	}

	// An unrelated member cannot delete someone else's post.
	_, strangerCookie := env.seedUser(t, models.RoleMember, nil)
	req := httptest.NewRequest(http.MethodDelete, "/api/posts/"+created.ID, nil)
	req.AddCookie(strangerCookie)
	denied := httptest.NewRecorder()
	router.ServeHTTP(denied, req)
	if denied.Code != http.StatusForbidden {
		t.Fatalf("stranger delete: got %d, want 403", denied.Code)
	}

	// A manager of the post's organization can.
	_, managerCookie := env.seedUser(t, models.RoleManager, &org.ID)
	req = httptest.NewRequest(http.MethodDelete, "/api/posts/"+created.ID, nil)
	req.AddCookie(managerCookie)
	allowed := httptest.NewRecorder()
	router.ServeHTTP(allowed, req)
	if allowed.Code != http.StatusOK {
		t.Errorf("manager delete: got %d, want 200 (body: %s)", allowed.Code, allowed.Body.String())
	}
}

func TestListPostsByOrganization(t *testing.T) {
	env := newTestEnv(t)
	org, _ := env.seedThemedOrg(t, "#2E5C8A")
	_, cookie := env.seedUser(t, models.RoleMember, nil)
	router := postsRouter(env)

	for _, title := range []string{"First update", "Second update", "Third update"} {
		body := `{"title":"` + title + `","body":"","organization_id":"` + org.ID.String() + `"}`
		if rr := postJSON(t, router, "/api/posts", body, cookie); rr.Code != http.StatusCreated {
			t.Fatalf("seed post %q: status %d", title, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/organizations/"+org.ID.String()+"/posts?limit=2", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}

	var resp struct {
		Posts []struct {
			Title string `json:"title"`
		} `json:"posts"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Posts) != 2 {
		t.Fatalf("posts: got %d, want 2 (limit)", len(resp.Posts))
	}
	// Newest first.
	if resp.Posts[0].Title != "Third update" {
		t.Errorf("first post: got %q, want %q", resp.Posts[0].Title, "Third update")
	}
}

func TestGetPost(t *testing.T) {
	env := newTestEnv(t)
	org, _ := env.seedThemedOrg(t, "#2E5C8A")
	_, cookie := env.seedUser(t, models.RoleMember, nil)
	router := postsRouter(env)

	body := `{"title":"Lookup me","body":"","organization_id":"` + org.ID.String() + `"}`
	rr := postJSON(t, router, "/api/posts", body, cookie)
	if rr.Code != http.StatusCreated {
		t.Fatalf("seed post: status %d", rr.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created post: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/posts/"+created.ID, nil)
	get := httptest.NewRecorder()
	router.ServeHTTP(get, req)

	if get.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", get.Code)
	}

	// Unknown post.
	req = httptest.NewRequest(http.MethodGet, "/api/posts/22222222-2222-2222-2222-222222222222", nil)
	miss := httptest.NewRecorder()
	router.ServeHTTP(miss, req)
	if miss.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", miss.Code)
	}
}
