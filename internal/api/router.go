package api

import (
	"net/http"

	"github.com/dom/deadlock-hub/internal/api/handlers"
	"github.com/dom/deadlock-hub/internal/api/middleware"
	"github.com/dom/deadlock-hub/internal/cache"
	"github.com/dom/deadlock-hub/internal/config"
	"github.com/dom/deadlock-hub/internal/service"
	"github.com/dom/deadlock-hub/internal/web"
	"github.com/dom/deadlock-hub/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/gorm"
)

func NewRouter(services *service.Services, hub *websocket.Hub, renderer *web.Renderer, db *gorm.DB, cacheClient *cache.Client, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg, db, cacheClient)
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	leaderboardHandler := handlers.NewLeaderboardHandler(services.Leaderboard)
	playerHandler := handlers.NewPlayerHandler(services.Player)
	catalogHandler := handlers.NewCatalogHandler(services.Catalog)
	forumHandler := handlers.NewForumHandler(services.Forum)
	wsHandler := handlers.NewWebSocketHandler(hub, cfg.CORSAllowedOrigins)
	pageHandler := handlers.NewPageHandler(renderer, services.Auth, services.Player)

	r.Get("/health", healthHandler.Check)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/leaderboards/{region}", leaderboardHandler.Get)

		r.Route("/auth", func(r chi.Router) {
			r.Get("/steam", authHandler.SteamLogin)
			r.Get("/steam/callback", authHandler.SteamCallback)
			r.With(middleware.OptionalAuth(services.Auth)).Get("/login/ko", authHandler.Session)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/logout", authHandler.Logout)
			})
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", catalogHandler.ListItems)
			r.Get("/{id}", catalogHandler.GetItem)
		})
		r.Get("/heroes", catalogHandler.ListHeroes)

		r.Route("/forum/threads", func(r chi.Router) {
			r.Get("/", forumHandler.ListThreads)
			r.Get("/{id}", forumHandler.GetThread)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/", forumHandler.CreateThread)
				r.Post("/{id}/posts", forumHandler.Reply)
			})
		})

		// WebSocket endpoint
		r.With(middleware.OptionalAuth(services.Auth)).Get("/ws", wsHandler.Handle)
	})

	r.Route("/api/player/{steamId}", func(r chi.Router) {
		r.Get("/stats", playerHandler.Stats)
		r.Get("/recent", playerHandler.Recent)
	})

	// HTML pages
	r.Handle("/static/*", http.StripPrefix("/static/", web.Static()))
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(services.Auth))
		r.Get("/", pageHandler.Home)
		r.Get("/leaderboards/{region}", pageHandler.Leaderboard)
		r.Get("/players/{steamId}", pageHandler.Player)
		r.NotFound(pageHandler.NotFound)
	})

	return r
}
