package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dom/deadlock-hub/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_RecentMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/player/76561197960287930/recent", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(recentResponse{
			Success: true,
			Matches: []Match{{MatchID: 1, HeroID: 11, Hero: "Infernus"}},
		})
	}))
	defer srv.Close()

	matches, err := NewAPIClient(srv.URL).RecentMatches("76561197960287930", 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Infernus", matches[0].Hero)
}

func TestAPIClient_RecentMatchesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Player stats are unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewAPIClient(srv.URL).RecentMatches("76561197960287930", 5)
	assert.ErrorContains(t, err, "502")
}

func TestCheckMatches(t *testing.T) {
	cat := catalog.MustNew("https://assets.example")

	report := checkMatches(cat, []Match{
		{
			HeroID: 11,
			Hero:   "Infernus",
			Items: []MatchItem{
				{ID: 715762406, Name: "Basic Magazine", Resolved: true},
				{ID: 999999999, Name: "Unknown Item (999999999)", Resolved: false},
			},
		},
		{HeroID: 9999, Hero: "Hero_9999"},
	})

	assert.Equal(t, 2, report.itemsChecked)
	assert.Equal(t, map[int64]string{999999999: "Unknown Item (999999999)"}, report.unresolvedItems)
	assert.Equal(t, map[int64]string{9999: "Hero_9999"}, report.unresolvedHeroes)
}
