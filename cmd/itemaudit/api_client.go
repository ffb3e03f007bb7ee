package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dom/deadlock-hub/internal/catalog"
)

// APIClient talks to a running server.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching the server

type MatchItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Resolved bool   `json:"resolved"`
}

type Match struct {
	MatchID int64       `json:"matchId"`
	HeroID  int64       `json:"heroId"`
	Hero    string      `json:"hero"`
	Items   []MatchItem `json:"items"`
}

type recentResponse struct {
	Success bool    `json:"success"`
	Matches []Match `json:"matches"`
}

func (c *APIClient) RecentMatches(steamID string, limit int) ([]Match, error) {
	url := fmt.Sprintf("%s/api/player/%s/recent?limit=%d", c.baseURL, steamID, limit)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("request failed (%d): %s", resp.StatusCode, body)
	}

	var result recentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Matches, nil
}

type matchReport struct {
	itemsChecked     int
	unresolvedItems  map[int64]string
	unresolvedHeroes map[int64]string
}

// checkMatches flags ids the server could not resolve, and ids it resolved
// to a different name than the local table.
func checkMatches(cat *catalog.Catalog, matches []Match) matchReport {
	report := matchReport{
		unresolvedItems:  make(map[int64]string),
		unresolvedHeroes: make(map[int64]string),
	}
	for _, m := range matches {
		if _, ok := cat.LookupHero(m.HeroID); !ok || cat.ResolveHeroName(m.HeroID) != m.Hero {
			report.unresolvedHeroes[m.HeroID] = m.Hero
		}
		for _, it := range m.Items {
			report.itemsChecked++
			if !it.Resolved || cat.ResolveItemName(it.ID) != it.Name {
				report.unresolvedItems[it.ID] = it.Name
			}
		}
	}
	return report
}
