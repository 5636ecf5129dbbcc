// Package main is the entry point for the catalogd server.
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

	"catalogd/internal/cache"
	"catalogd/internal/config"
	"catalogd/internal/database"
	"catalogd/internal/fetcher"
	"catalogd/internal/handlers"
	"catalogd/internal/hub"
	"catalogd/internal/ingest"
	"catalogd/internal/middleware"
	"catalogd/internal/router"
	"catalogd/internal/store"
)

func main() {
	// Structured logger — outputs to stdout at debug level.
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
		"upstream", cfg.UpstreamBaseURL,
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

	// Connect to Valkey (Redis-compatible cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	listings := cache.NewListingCache(valkeyClient, cache.DefaultListingTTL)

	// Initialize data stores.
	categoryStore := store.NewCategoryStore(db)
	productStore := store.NewProductStore(db)
	catalog := store.NewCatalog(categoryStore, productStore)

	// Upstream catalog fetcher.
	upstream := fetcher.New(fetcher.Config{
		BaseURL:   cfg.UpstreamBaseURL,
		Lang:      cfg.UpstreamLocale,
		Curr:      cfg.UpstreamCurr,
		BaseStore: cfg.UpstreamStore,
		Timeout:   cfg.FetchTimeout,
	})

	// Broadcast hub for connected observers.
	broadcastHub := hub.New()
	defer broadcastHub.CloseAll()

	// Catalog sync pipeline.
	ingestor := ingest.New(upstream, catalog, broadcastHub)

	// Background syncs are scoped to this context so shutdown ends a
	// running sync cleanly.
	syncCtx, cancelSyncs := context.WithCancel(context.Background())
	defer cancelSyncs()

	// Create handler groups with their dependencies.
	api := handlers.NewAPI(categoryStore, productStore, broadcastHub, listings)
	syncHandlers := handlers.NewSync(syncCtx, ingestor, listings)
	wsHandlers := handlers.NewWS(broadcastHub)

	// Rate limit sync triggers per client IP.
	syncLimiter := middleware.NewRateLimiter(cfg.SyncRateLimit, time.Minute)
	defer syncLimiter.Stop()

	// Set up the Chi router with all middleware and routes.
	r := router.New(api, syncHandlers, wsHandlers, syncLimiter)

	// Create the HTTP server with sensible timeouts. WriteTimeout is zero
	// because the websocket endpoint holds connections open indefinitely;
	// per-write deadlines are enforced by the hub.
	srv := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
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

	// Cancel any in-flight background sync; it ends with a clean
	// parsing_finished event.
	cancelSyncs()

	// Disconnect observers so Shutdown does not wait on open websockets.
	broadcastHub.CloseAll()

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
