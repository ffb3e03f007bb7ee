package stats

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSteamID = "76561197960287930" // account 22202

func newStatsServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/players/22202/hero-stats", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"hero_id":11,"matches_played":40,"wins":22}]`)
	})
	mux.HandleFunc("/v1/players/22202/match-history", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"match_id":3,"hero_id":11,"player_kills":9,"player_team":1,"match_result":1,"items":[715762406,999]},
			{"match_id":2,"hero_id":6,"player_team":0,"match_result":1},
			{"match_id":1,"hero_id":9999}
		]`)
	})
	mux.HandleFunc("/v1/players/1/hero-stats", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAccountID(t *testing.T) {
	id, err := AccountID(testSteamID)
	require.NoError(t, err)
	assert.Equal(t, uint32(22202), id)

	for _, bad := range []string{"", "abc", "123", "99999999999999999999"} {
		_, err := AccountID(bad)
		assert.Error(t, err, bad)
	}
}

func TestClient_PlayerStats(t *testing.T) {
	srv := newStatsServer(t)
	client := NewClient(srv.URL, nil, time.Minute)

	raw, err := client.PlayerStats(context.Background(), testSteamID)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"hero_id":11,"matches_played":40,"wins":22}]`, string(raw))
}

func TestClient_PlayerStats_Errors(t *testing.T) {
	srv := newStatsServer(t)
	client := NewClient(srv.URL, nil, time.Minute)

	_, err := client.PlayerStats(context.Background(), "76561197960265729") // account 1
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = client.PlayerStats(context.Background(), "76561197960265730") // account 2, unknown
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	_, err = client.PlayerStats(context.Background(), "not-a-steam-id")
	assert.Error(t, err)
}

func TestClient_RecentMatches(t *testing.T) {
	srv := newStatsServer(t)
	client := NewClient(srv.URL, nil, time.Minute)

	matches, err := client.RecentMatches(context.Background(), testSteamID, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, int64(3), matches[0].MatchID)
	assert.Equal(t, []int64{715762406, 999}, matches[0].Items)
	assert.True(t, matches[0].Won())
	assert.False(t, matches[1].Won())

	all, err := client.RecentMatches(context.Background(), testSteamID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
