package steam

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testReturnTo = "https://deadlock.test/api/v1/auth/steam/callback"

func newOpenIDServer(t *testing.T, valid bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "check_authentication", r.PostForm.Get("openid.mode"))
		if valid {
			io.WriteString(w, "ns:http://specs.openid.net/auth/2.0\nis_valid:true\n")
			return
		}
		io.WriteString(w, "ns:http://specs.openid.net/auth/2.0\nis_valid:false\n")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func callbackParams(claimedID string) url.Values {
	return url.Values{
		"openid.ns":         {openIDNamespace},
		"openid.mode":       {"id_res"},
		"openid.return_to":  {testReturnTo},
		"openid.claimed_id": {claimedID},
		"openid.identity":   {claimedID},
		"openid.sig":        {"c2lnbmF0dXJl"},
	}
}

func TestOpenID_AuthURL(t *testing.T) {
	o := NewOpenID("https://steamcommunity.com/openid/login", "https://deadlock.test/")

	u, err := url.Parse(o.AuthURL(testReturnTo))
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "checkid_setup", q.Get("openid.mode"))
	assert.Equal(t, testReturnTo, q.Get("openid.return_to"))
	assert.Equal(t, "https://deadlock.test", q.Get("openid.realm"))
}

func TestOpenID_Verify(t *testing.T) {
	tests := []struct {
		name    string
		valid   bool
		params  url.Values
		want    string
		wantErr error
	}{
		{
			name:   "valid assertion",
			valid:  true,
			params: callbackParams("https://steamcommunity.com/openid/id/76561197960287930"),
			want:   "76561197960287930",
		},
		{
			name:    "rejected by steam",
			valid:   false,
			params:  callbackParams("https://steamcommunity.com/openid/id/76561197960287930"),
			wantErr: ErrAssertionRejected,
		},
		{
			name:    "foreign claimed id",
			valid:   true,
			params:  callbackParams("https://evil.example/openid/id/76561197960287930"),
			wantErr: ErrInvalidAssertion,
		},
		{
			name:  "cancelled login",
			valid: true,
			params: url.Values{
				"openid.mode": {"cancel"},
			},
			wantErr: ErrInvalidAssertion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newOpenIDServer(t, tt.valid)
			o := NewOpenID(srv.URL, "https://deadlock.test")

			got, err := o.Verify(context.Background(), tt.params, testReturnTo)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenID_ReturnToMismatch(t *testing.T) {
	o := NewOpenID("http://unused.invalid", "https://deadlock.test")
	params := callbackParams("https://steamcommunity.com/openid/id/76561197960287930")
	params.Set("openid.return_to", "https://other.example/callback")

	_, err := o.Verify(context.Background(), params, testReturnTo)
	assert.ErrorIs(t, err, ErrInvalidAssertion)
}
