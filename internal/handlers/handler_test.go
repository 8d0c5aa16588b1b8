// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable. The
// browser and object storage are faked so no Chrome or S3 is needed.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"givehub/internal/cache"
	"givehub/internal/database"
	"givehub/internal/models"
	"givehub/internal/session"
	"givehub/internal/store"
	"givehub/internal/textpost"
)

// fakeRenderer satisfies textpost.Renderer with a canned JPEG.
type fakeRenderer struct {
	mu       sync.Mutex
	launches int
	data     []byte
	err      error
}

func (f *fakeRenderer) RenderJPEG(_ context.Context, _ string, _, _ int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.launches++
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

// fakeStorage satisfies textpost.Uploader in memory.
type fakeStorage struct {
	mu      sync.Mutex
	uploads map[string][]byte
}

func (f *fakeStorage) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	f.uploads[key] = data
	return nil
}

func (f *fakeStorage) FileURL(key string) string {
	return "https://media.test/" + key
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.uploads, key)
	return nil
}

func (f *fakeStorage) ExtractKey(rawURL string) (string, bool) {
	const prefix = "https://media.test/"
	if strings.HasPrefix(rawURL, prefix) {
		return rawURL[len(prefix):], true
	}
	return "", false
}

// sampleJPEG produces a decodable 1080x1080 JPEG for the fake renderer.
func sampleJPEG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 1080, 1080))
	for y := 0; y < 1080; y++ {
		for x := 0; x < 1080; x++ {
			img.Set(x, y, color.RGBA{R: 46, G: 92, B: 138, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode sample image: %v", err)
	}
	return buf.Bytes()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "givehub")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "givehub")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and cache keys.
		for _, pattern := range []string{"session:*", "theme_color:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	Valkey     *redis.Client
	Sessions   *session.Store
	UserStore  *store.UserStore
	OrgStore   *store.OrganizationStore
	ThemeStore *store.ThemeStore
	PostStore  *store.PostStore
	ThemeCache *cache.ThemeColorCache
	Renderer   *fakeRenderer
	Storage    *fakeStorage
	Generator  *textpost.Service
	Auth       *Auth
	TextPosts  *TextPostImages
	Posts      *Posts
	Orgs       *Organizations
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk, false)
	userStore := store.NewUserStore(db)
	orgStore := store.NewOrganizationStore(db)
	themeStore := store.NewThemeStore(db)
	postStore := store.NewPostStore(db)
	themeCache := cache.NewThemeColorCache(vk, 1*time.Minute)

	renderer := &fakeRenderer{data: sampleJPEG(t)}
	storage := &fakeStorage{}
	resolver := textpost.NewThemeResolver(orgStore, themeStore, themeCache)
	generator := textpost.NewService(resolver, textpost.NewLayout(""), renderer, storage)

	// Start from clean tables; posts first because of FK ordering.
	for _, table := range []string{"posts", "users", "organizations", "themes"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("clean %s: %v", table, err)
		}
	}

	return &testEnv{
		DB:         db,
		Valkey:     vk,
		Sessions:   sessions,
		UserStore:  userStore,
		OrgStore:   orgStore,
		ThemeStore: themeStore,
		PostStore:  postStore,
		ThemeCache: themeCache,
		Renderer:   renderer,
		Storage:    storage,
		Generator:  generator,
		Auth:       NewAuth(sessions, userStore),
		TextPosts:  NewTextPostImages(generator),
		Posts:      NewPosts(postStore, generator, storage),
		Orgs:       NewOrganizations(orgStore, themeStore, themeCache),
	}
}

// seedThemedOrg creates a theme and an organization using it.
func (env *testEnv) seedThemedOrg(t *testing.T, primaryColor string) (*models.Organization, *models.Theme) {
	t.Helper()

	theme, err := env.ThemeStore.Create(&models.Theme{
		Name:         "Test Theme",
		PrimaryColor: &primaryColor,
	})
	if err != nil {
		t.Fatalf("create theme: %v", err)
	}

	org, err := env.OrgStore.Create(&models.Organization{
		Name:    "River Valley Food Bank",
		Mission: "No neighbor goes hungry.",
		ThemeID: &theme.ID,
	})
	if err != nil {
		t.Fatalf("create organization: %v", err)
	}
	return org, theme
}

// seedUser creates a user and an authenticated (2FA-complete) session,
// returning the user and the session cookie to attach to requests.
func (env *testEnv) seedUser(t *testing.T, role models.Role, orgID *uuid.UUID) (*models.User, *http.Cookie) {
	t.Helper()

	email := uuid.NewString() + "@givehub.local"
	user, err := env.UserStore.Create(email, "secret123", "Test User", role, orgID)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	w := httptest.NewRecorder()
	_, err = env.Sessions.Create(context.Background(), w, &session.Data{
		UserID:         user.ID,
		Email:          user.Email,
		DisplayName:    user.DisplayName,
		Role:           string(user.Role),
		OrganizationID: user.OrganizationID,
		TwoFADone:      true,
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return user, c
		}
	}
	t.Fatal("session cookie not set")
	return nil, nil
}
