// Package stats is a client for the community player-stats API.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dom/deadlock-hub/internal/cache"
)

// steamID64Base is the offset between a SteamID64 and its 32-bit account id.
const steamID64Base = 76561197960265728

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrUpstream       = errors.New("stats api unavailable")
)

// Match is one entry of a player's match history as the API reports it.
type Match struct {
	MatchID     int64   `json:"match_id"`
	HeroID      int64   `json:"hero_id"`
	StartTime   int64   `json:"start_time"`
	DurationS   int     `json:"match_duration_s"`
	Kills       int     `json:"player_kills"`
	Deaths      int     `json:"player_deaths"`
	Assists     int     `json:"player_assists"`
	NetWorth    int     `json:"net_worth"`
	LastHits    int     `json:"last_hits"`
	PlayerTeam  int     `json:"player_team"`
	MatchResult int     `json:"match_result"`
	Items       []int64 `json:"items"`
}

// Won reports whether the player's team won.
func (m Match) Won() bool {
	return m.MatchResult == m.PlayerTeam
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Client
	ttl        time.Duration
}

func NewClient(baseURL string, cache *cache.Client, ttl time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      cache,
		ttl:        ttl,
	}
}

// AccountID converts a SteamID64 to the 32-bit account id the API keys on.
func AccountID(steamID64 string) (uint32, error) {
	id, err := strconv.ParseUint(steamID64, 10, 64)
	if err != nil || id < steamID64Base || id-steamID64Base > 1<<32-1 {
		return 0, fmt.Errorf("invalid steam id %q", steamID64)
	}
	return uint32(id - steamID64Base), nil
}

// PlayerStats returns the per-hero stats document unchanged.
func (c *Client) PlayerStats(ctx context.Context, steamID64 string) (json.RawMessage, error) {
	accountID, err := AccountID(steamID64)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("stats:hero-stats:%d", accountID)
	if raw, ok, err := c.cache.Get(ctx, cacheKey); err == nil && ok {
		return json.RawMessage(raw), nil
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/v1/players/%d/hero-stats", c.baseURL, accountID))
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: invalid json", ErrUpstream)
	}

	if err := c.cache.Set(ctx, cacheKey, string(body), c.ttl); err != nil {
		log.Printf("WARN [stats.PlayerStats] failed to cache account %d: %v", accountID, err)
	}
	return json.RawMessage(body), nil
}

// RecentMatches returns up to limit matches, newest first.
func (c *Client) RecentMatches(ctx context.Context, steamID64 string, limit int) ([]Match, error) {
	accountID, err := AccountID(steamID64)
	if err != nil {
		return nil, err
	}

	var matches []Match
	cacheKey := fmt.Sprintf("stats:match-history:%d", accountID)
	hit, _ := c.cache.GetJSON(ctx, cacheKey, &matches)
	if !hit {
		body, err := c.get(ctx, fmt.Sprintf("%s/v1/players/%d/match-history", c.baseURL, accountID))
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(body, &matches); err != nil {
			return nil, fmt.Errorf("%w: failed to decode match history: %v", ErrUpstream, err)
		}
		if err := c.cache.SetJSON(ctx, cacheKey, matches, c.ttl); err != nil {
			log.Printf("WARN [stats.RecentMatches] failed to cache account %d: %v", accountID, err)
		}
	}

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrPlayerNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, 8<<20))
}
