package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dom/deadlock-hub/internal/api/handlers"
	"github.com/dom/deadlock-hub/internal/api/middleware"
	"github.com/dom/deadlock-hub/internal/config"
	"github.com/dom/deadlock-hub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func TestAuthHandler_SteamLogin(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.WithoutDatabase())

	resp, err := noRedirectClient().Get(ts.APIURL("/auth/steam"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)

	assert.Equal(t, "/openid/login", loc.Path)
	assert.Equal(t, "checkid_setup", loc.Query().Get("openid.mode"))
	assert.Equal(t, "http://localhost:3000/api/v1/auth/steam/callback", loc.Query().Get("openid.return_to"))
	assert.Equal(t, "http://localhost:3000", loc.Query().Get("openid.realm"))
}

func TestAuthHandler_SessionAnonymous(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.WithoutDatabase())

	tests := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"garbage token", "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.AuthRequest(t, http.MethodGet, ts.APIURL("/auth/login/ko"), tt.token, "")
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			var result handlers.SessionResponse
			testutil.AssertStatusCode(t, resp, http.StatusOK)
			testutil.AssertJSONResponse(t, resp, &result)
			assert.False(t, result.Success)
			assert.Nil(t, result.User)
		})
	}
}

func TestAuthHandler_SessionSignedIn(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().
		WithPersonaName("Kirin").
		WithAvatar("https://avatars.steam.test/kirin.jpg").
		BuildAndAuthenticate(t, ts)

	t.Run("bearer header", func(t *testing.T) {
		req := testutil.AuthRequest(t, http.MethodGet, ts.APIURL("/auth/login/ko"), token, "")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var result handlers.SessionResponse
		testutil.AssertJSONResponse(t, resp, &result)
		require.True(t, result.Success)
		assert.Equal(t, user.ID.String(), result.User.ID)
		assert.Equal(t, user.SteamID, result.User.SteamID)
		assert.Equal(t, "Kirin", result.User.Name)
		assert.Equal(t, "https://avatars.steam.test/kirin.jpg", result.User.AvatarURL)
	})

	t.Run("session cookie", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, ts.APIURL("/auth/login/ko"), nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var result handlers.SessionResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.True(t, result.Success)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	ts := testutil.NewTestServer(t)
	user, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("requires auth", func(t *testing.T) {
		resp, err := http.Post(ts.APIURL("/auth/logout"), "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("clears sessions and cookie", func(t *testing.T) {
		req := testutil.AuthRequest(t, http.MethodPost, ts.APIURL("/auth/logout"), token, "")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var cleared bool
		for _, c := range resp.Cookies() {
			if c.Name == middleware.SessionCookie {
				cleared = c.MaxAge < 0
			}
		}
		assert.True(t, cleared, "session cookie should be expired")

		_, err = ts.Repos.Session.GetByUserID(context.Background(), user.ID)
		assert.Error(t, err)
	})
}

// openIDStub plays the Steam OpenID provider's check_authentication step.
func openIDStub(t *testing.T, valid bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "check_authentication", r.PostForm.Get("openid.mode"))
		if valid {
			w.Write([]byte("ns:http://specs.openid.net/auth/2.0\nis_valid:true\n"))
			return
		}
		w.Write([]byte("ns:http://specs.openid.net/auth/2.0\nis_valid:false\n"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func callbackQuery(steamID string) string {
	q := url.Values{}
	q.Set("openid.ns", "http://specs.openid.net/auth/2.0")
	q.Set("openid.mode", "id_res")
	q.Set("openid.return_to", "http://localhost:3000/api/v1/auth/steam/callback")
	q.Set("openid.claimed_id", "https://steamcommunity.com/openid/id/"+steamID)
	q.Set("openid.identity", "https://steamcommunity.com/openid/id/"+steamID)
	q.Set("openid.sig", "c2lnbmF0dXJl")
	return q.Encode()
}

func TestAuthHandler_SteamCallback(t *testing.T) {
	stub := openIDStub(t, true)
	ts := testutil.NewTestServer(t, testutil.WithConfig(func(c *config.Config) {
		c.SteamOpenIDURL = stub.URL
	}))

	resp, err := noRedirectClient().Get(ts.APIURL("/auth/steam/callback?" + callbackQuery(testSteamID)))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)
	assert.NotEmpty(t, session.Value)

	user, err := ts.Repos.User.GetBySteamID(context.Background(), testSteamID)
	require.NoError(t, err)
	// no API key: the account falls back to the bare steam id
	assert.Equal(t, testSteamID, user.PersonaName)

	userID, err := ts.Services.Auth.UserIDFromToken(session.Value)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestAuthHandler_SteamCallbackRejected(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
		query string
	}{
		{"provider says invalid", false, callbackQuery(testSteamID)},
		{"cancelled at steam", true, "openid.mode=cancel"},
		{"foreign claimed id", true, strings.Replace(callbackQuery(testSteamID), "steamcommunity.com", "evil.example", 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := openIDStub(t, tt.valid)
			ts := testutil.NewTestServer(t, testutil.WithoutDatabase(), testutil.WithConfig(func(c *config.Config) {
				c.SteamOpenIDURL = stub.URL
			}))

			resp, err := noRedirectClient().Get(ts.APIURL("/auth/steam/callback?" + tt.query))
			require.NoError(t, err)
			defer resp.Body.Close()
			testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Steam login failed")
		})
	}
}
