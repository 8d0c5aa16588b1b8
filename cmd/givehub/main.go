// Package main is the entry point for the GiveHub API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"givehub/internal/browser"
	"givehub/internal/cache"
	"givehub/internal/config"
	"givehub/internal/database"
	"givehub/internal/handlers"
	"givehub/internal/router"
	"givehub/internal/session"
	"givehub/internal/storage"
	"givehub/internal/store"
	"givehub/internal/textpost"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize session store backed by Valkey.
	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	orgStore := store.NewOrganizationStore(db)
	themeStore := store.NewThemeStore(db)
	postStore := store.NewPostStore(db)

	// Connect to S3-compatible object storage. Text post image generation
	// needs it, so a missing configuration is fatal outside development.
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient == nil {
		slog.Error("s3 storage not configured; set S3_ACCESS_KEY and S3_SECRET_KEY")
		os.Exit(1)
	}
	slog.Info("s3 storage connected",
		"endpoint", cfg.S3Endpoint,
		"bucket", cfg.S3Bucket,
	)

	// Theme color cache keeps resolved organization colors in Valkey.
	themeCache := cache.NewThemeColorCache(valkeyClient, cache.DefaultThemeTTL)

	// Headless Chrome renderer for title cards.
	renderer := browser.NewChromeRenderer(cfg.ChromePath)

	// Text post image generation pipeline.
	resolver := textpost.NewThemeResolver(orgStore, themeStore, themeCache)
	layout := textpost.NewLayout(cfg.FontURL)
	generator := textpost.NewService(resolver, layout, renderer, storageClient)

	// Create handler groups with their dependencies.
	authHandlers := handlers.NewAuth(sessionStore, userStore)
	textPostHandlers := handlers.NewTextPostImages(generator)
	postHandlers := handlers.NewPosts(postStore, generator, storageClient)
	orgHandlers := handlers.NewOrganizations(orgStore, themeStore, themeCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, authHandlers, textPostHandlers, postHandlers, orgHandlers)

	// Create the HTTP server with sensible timeouts.
	// WriteTimeout must accommodate image generation, which launches a
	// headless browser and uploads to object storage (typically 2-10s).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
