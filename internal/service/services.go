package service

import (
	"github.com/dom/deadlock-hub/internal/cache"
	"github.com/dom/deadlock-hub/internal/catalog"
	"github.com/dom/deadlock-hub/internal/config"
	"github.com/dom/deadlock-hub/internal/leaderboard"
	"github.com/dom/deadlock-hub/internal/repository"
	"github.com/dom/deadlock-hub/internal/stats"
	"github.com/dom/deadlock-hub/internal/steam"
)

type Services struct {
	Auth        *AuthService
	Leaderboard *LeaderboardService
	Player      *PlayerService
	Forum       *ForumService
	Catalog     *catalog.Catalog
}

func NewServices(
	repos *repository.Repositories,
	cfg *config.Config,
	cat *catalog.Catalog,
	cacheClient *cache.Client,
	publisher PostPublisher,
	synthOpts ...leaderboard.Option,
) *Services {
	steamClient := steam.NewClient(cfg.SteamAPIKey, cfg.SteamAPIBaseURL, cacheClient)
	openID := steam.NewOpenID(cfg.SteamOpenIDURL, cfg.PublicURL)
	statsClient := stats.NewClient(cfg.StatsAPIBaseURL, cacheClient, cfg.StatsCacheTTL)

	// No key, no outbound calls from the leaderboard.
	var enricher *leaderboard.Enricher
	if steamClient.Configured() {
		enricher = leaderboard.NewEnricher(NewSteamProfileSource(steamClient), leaderboard.DefaultProfilePool, cfg.EnrichmentTimeout)
	}

	return &Services{
		Auth:        NewAuthService(repos.User, repos.Session, steamClient, openID, cfg),
		Leaderboard: NewLeaderboardService(leaderboard.NewSynthesizer(cat.HeroNames(), synthOpts...), enricher),
		Player:      NewPlayerService(statsClient, steamClient, cat),
		Forum:       NewForumService(repos.Thread, repos.Post, repos.User, publisher),
		Catalog:     cat,
	}
}
