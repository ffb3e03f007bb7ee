package service

import (
	"context"
	"encoding/json"

	"github.com/dom/deadlock-hub/internal/catalog"
	"github.com/dom/deadlock-hub/internal/domain"
	"github.com/dom/deadlock-hub/internal/stats"
	"github.com/dom/deadlock-hub/internal/steam"
)

const (
	DefaultRecentMatches = 20
	MaxRecentMatches     = 50
)

// MatchView is a match history entry with every id resolved for display.
type MatchView struct {
	MatchID      int64                  `json:"matchId"`
	HeroID       int64                  `json:"heroId"`
	Hero         string                 `json:"hero"`
	HeroImageURL string                 `json:"heroImageUrl,omitempty"`
	StartTime    int64                  `json:"startTime"`
	DurationS    int                    `json:"durationSeconds"`
	Kills        int                    `json:"kills"`
	Deaths       int                    `json:"deaths"`
	Assists      int                    `json:"assists"`
	NetWorth     int                    `json:"netWorth"`
	LastHits     int                    `json:"lastHits"`
	Won          bool                   `json:"won"`
	Items        []domain.MatchItemView `json:"items"`
}

type PlayerService struct {
	statsClient *stats.Client
	steamClient *steam.Client
	catalog     *catalog.Catalog
}

func NewPlayerService(statsClient *stats.Client, steamClient *steam.Client, cat *catalog.Catalog) *PlayerService {
	return &PlayerService{
		statsClient: statsClient,
		steamClient: steamClient,
		catalog:     cat,
	}
}

func (s *PlayerService) Stats(ctx context.Context, steamID string) (json.RawMessage, error) {
	if !steam.ValidSteamID64(steamID) {
		return nil, domain.ErrInvalidSteamID
	}
	return s.statsClient.PlayerStats(ctx, steamID)
}

func (s *PlayerService) RecentMatches(ctx context.Context, steamID string, limit int) ([]MatchView, error) {
	if !steam.ValidSteamID64(steamID) {
		return nil, domain.ErrInvalidSteamID
	}
	if limit <= 0 || limit > MaxRecentMatches {
		limit = DefaultRecentMatches
	}

	matches, err := s.statsClient.RecentMatches(ctx, steamID, limit)
	if err != nil {
		return nil, err
	}

	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, s.matchView(m))
	}
	return views, nil
}

func (s *PlayerService) matchView(m stats.Match) MatchView {
	view := MatchView{
		MatchID:   m.MatchID,
		HeroID:    m.HeroID,
		Hero:      s.catalog.ResolveHeroName(m.HeroID),
		StartTime: m.StartTime,
		DurationS: m.DurationS,
		Kills:     m.Kills,
		Deaths:    m.Deaths,
		Assists:   m.Assists,
		NetWorth:  m.NetWorth,
		LastHits:  m.LastHits,
		Won:       m.Won(),
		Items:     make([]domain.MatchItemView, 0, len(m.Items)),
	}
	if hero, ok := s.catalog.LookupHero(m.HeroID); ok {
		view.HeroImageURL = s.catalog.HeroImageURL(hero)
	}
	for _, id := range m.Items {
		view.Items = append(view.Items, s.catalog.ItemView(id))
	}
	return view
}

// Summary returns the Steam profile for the player page. Without an API key
// it returns steam.ErrNotConfigured.
func (s *PlayerService) Summary(ctx context.Context, steamID string) (*steam.PlayerSummary, error) {
	if !steam.ValidSteamID64(steamID) {
		return nil, domain.ErrInvalidSteamID
	}
	return s.steamClient.PlayerSummary(ctx, steamID)
}
