package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/deadlock-hub/internal/api"
	"github.com/dom/deadlock-hub/internal/cache"
	"github.com/dom/deadlock-hub/internal/catalog"
	"github.com/dom/deadlock-hub/internal/config"
	"github.com/dom/deadlock-hub/internal/repository/postgres"
	"github.com/dom/deadlock-hub/internal/service"
	"github.com/dom/deadlock-hub/internal/web"
	"github.com/dom/deadlock-hub/internal/websocket"
)

const shutdownTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("ERROR [main] %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	cacheClient := cache.New(cfg.RedisURL)
	defer cacheClient.Close()

	cat, err := catalog.New(cfg.AssetBaseURL)
	if err != nil {
		return fmt.Errorf("failed to build catalog: %w", err)
	}
	if dups := cat.DuplicateNames(); len(dups) > 0 {
		log.Printf("WARN [main] %d item names are shared by several ids, run `itemaudit dups` for details", len(dups))
	}

	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	services := service.NewServices(postgres.NewRepositories(db), cfg, cat, cacheClient, hub)
	if !cfg.SteamEnabled() {
		log.Println("STEAM_API_KEY not set: leaderboards serve synthetic data only")
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      api.NewRouter(services, hub, renderer, db, cacheClient, cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s (%s)", cfg.Port, cfg.Environment)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Println("Server stopped")
	return nil
}
