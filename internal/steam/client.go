// Package steam talks to the Steam Web API and Steam's OpenID provider.
package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/dom/deadlock-hub/internal/cache"
)

const summaryCacheTTL = 30 * time.Minute

var (
	ErrNotConfigured  = errors.New("steam api key not configured")
	ErrPlayerNotFound = errors.New("steam player not found")
)

var steamID64Pattern = regexp.MustCompile(`^7656\d{13}$`)

// ValidSteamID64 reports whether s looks like a SteamID64.
func ValidSteamID64(s string) bool {
	return steamID64Pattern.MatchString(s)
}

type PlayerSummary struct {
	SteamID                  string `json:"steamid"`
	PersonaName              string `json:"personaname"`
	ProfileURL               string `json:"profileurl"`
	Avatar                   string `json:"avatar"`
	AvatarMedium             string `json:"avatarmedium"`
	AvatarFull               string `json:"avatarfull"`
	PersonaState             int    `json:"personastate"`
	CommunityVisibilityState int    `json:"communityvisibilitystate"`
	CountryCode              string `json:"loccountrycode,omitempty"`
	TimeCreated              int64  `json:"timecreated,omitempty"`
}

type playerSummariesResponse struct {
	Response struct {
		Players []PlayerSummary `json:"players"`
	} `json:"response"`
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *cache.Client
}

// NewClient builds a Web API client. cache may be nil.
func NewClient(apiKey, baseURL string, cache *cache.Client) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cache: cache,
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// GetPlayerSummaries fetches up to 100 summaries in one call.
func (c *Client) GetPlayerSummaries(ctx context.Context, steamIDs ...string) ([]PlayerSummary, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if len(steamIDs) == 0 {
		return nil, nil
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("steamids", strings.Join(steamIDs, ","))
	reqURL := fmt.Sprintf("%s/ISteamUser/GetPlayerSummaries/v2/?%s", c.baseURL, q.Encode())

	body, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var resp playerSummariesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode player summaries: %w", err)
	}
	return resp.Response.Players, nil
}

// PlayerSummary returns one player's summary, served from cache when
// possible.
func (c *Client) PlayerSummary(ctx context.Context, steamID string) (*PlayerSummary, error) {
	cacheKey := "steam:summary:" + steamID

	var cached PlayerSummary
	if ok, err := c.cache.GetJSON(ctx, cacheKey, &cached); err == nil && ok {
		return &cached, nil
	}

	players, err := c.GetPlayerSummaries(ctx, steamID)
	if err != nil {
		return nil, err
	}
	for i := range players {
		if players[i].SteamID == steamID {
			if err := c.cache.SetJSON(ctx, cacheKey, players[i], summaryCacheTTL); err != nil {
				log.Printf("WARN [steam.PlayerSummary] failed to cache %s: %v", steamID, err)
			}
			return &players[i], nil
		}
	}
	return nil, ErrPlayerNotFound
}

func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("steam api error %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}
