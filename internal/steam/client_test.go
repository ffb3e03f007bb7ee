package steam

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSummaryServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.URL.Path != "/ISteamUser/GetPlayerSummaries/v2/" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("key") != "test-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		var resp playerSummariesResponse
		for _, id := range strings.Split(r.URL.Query().Get("steamids"), ",") {
			if id == "76561197960287930" {
				resp.Response.Players = append(resp.Response.Players, PlayerSummary{
					SteamID:     id,
					PersonaName: "Rabscuttle",
					AvatarFull:  "https://avatars.test/full.jpg",
					CountryCode: "US",
				})
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_PlayerSummary(t *testing.T) {
	var hits int32
	srv := newSummaryServer(t, &hits)
	client := NewClient("test-key", srv.URL+"/", nil)

	summary, err := client.PlayerSummary(context.Background(), "76561197960287930")
	require.NoError(t, err)
	assert.Equal(t, "Rabscuttle", summary.PersonaName)
	assert.Equal(t, "https://avatars.test/full.jpg", summary.AvatarFull)
	assert.Equal(t, "US", summary.CountryCode)

	_, err = client.PlayerSummary(context.Background(), "76561197960000000")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestClient_NotConfigured(t *testing.T) {
	var hits int32
	srv := newSummaryServer(t, &hits)
	client := NewClient("", srv.URL, nil)

	assert.False(t, client.Configured())
	_, err := client.PlayerSummary(context.Background(), "76561197960287930")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestClient_UpstreamError(t *testing.T) {
	var hits int32
	srv := newSummaryServer(t, &hits)
	client := NewClient("wrong-key", srv.URL, nil)

	_, err := client.GetPlayerSummaries(context.Background(), "76561197960287930")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestValidSteamID64(t *testing.T) {
	assert.True(t, ValidSteamID64("76561197960287930"))
	assert.False(t, ValidSteamID64("7656119796028793"))
	assert.False(t, ValidSteamID64("12345678901234567"))
	assert.False(t, ValidSteamID64("7656119796028793a"))
}
