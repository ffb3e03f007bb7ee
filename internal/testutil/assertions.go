package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/dom/deadlock-hub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	assert.Contains(t, string(body), expectedMessage, "error message mismatch")
}

// AssertRowsRanked verifies rows carry consecutive ranks starting at first
func AssertRowsRanked(t *testing.T, rows []domain.LeaderboardRow, first int) {
	t.Helper()
	for i, row := range rows {
		assert.Equal(t, first+i, row.Rank, "row %d", i)
	}
}

// AssertUniqueSteamIDs verifies no two rows share a steam id
func AssertUniqueSteamIDs(t *testing.T, rows []domain.LeaderboardRow) {
	t.Helper()
	seen := make(map[string]int, len(rows))
	for i, row := range rows {
		if prev, ok := seen[row.SteamID]; ok {
			t.Errorf("rows %d and %d share steam id %s", prev, i, row.SteamID)
		}
		seen[row.SteamID] = i
	}
}
