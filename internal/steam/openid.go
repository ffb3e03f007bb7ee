package steam

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const openIDNamespace = "http://specs.openid.net/auth/2.0"

var (
	ErrInvalidAssertion  = errors.New("invalid openid assertion")
	ErrAssertionRejected = errors.New("openid assertion rejected by steam")
)

var claimedIDPattern = regexp.MustCompile(`^https?://steamcommunity\.com/openid/id/(7656\d{13})/?$`)

// OpenID performs the Steam login handshake (OpenID 2.0, identifier select).
type OpenID struct {
	loginURL   string
	realm      string
	httpClient *http.Client
}

func NewOpenID(loginURL, realm string) *OpenID {
	return &OpenID{
		loginURL:   loginURL,
		realm:      strings.TrimRight(realm, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthURL is where the browser is sent to sign in. Steam redirects back to
// returnTo, which must live under the realm.
func (o *OpenID) AuthURL(returnTo string) string {
	q := url.Values{}
	q.Set("openid.ns", openIDNamespace)
	q.Set("openid.mode", "checkid_setup")
	q.Set("openid.return_to", returnTo)
	q.Set("openid.realm", o.realm)
	q.Set("openid.identity", "http://specs.openid.net/auth/2.0/identifier_select")
	q.Set("openid.claimed_id", "http://specs.openid.net/auth/2.0/identifier_select")
	return o.loginURL + "?" + q.Encode()
}

// Verify checks the callback parameters with Steam and returns the
// authenticated SteamID64.
func (o *OpenID) Verify(ctx context.Context, params url.Values, expectedReturnTo string) (string, error) {
	if params.Get("openid.mode") != "id_res" {
		return "", fmt.Errorf("%w: mode %q", ErrInvalidAssertion, params.Get("openid.mode"))
	}
	if !strings.HasPrefix(params.Get("openid.return_to"), expectedReturnTo) {
		return "", fmt.Errorf("%w: return_to mismatch", ErrInvalidAssertion)
	}

	m := claimedIDPattern.FindStringSubmatch(params.Get("openid.claimed_id"))
	if m == nil {
		return "", fmt.Errorf("%w: unexpected claimed_id", ErrInvalidAssertion)
	}
	steamID := m[1]

	form := url.Values{}
	for key, values := range params {
		if strings.HasPrefix(key, "openid.") && len(values) > 0 {
			form.Set(key, values[0])
		}
	}
	form.Set("openid.mode", "check_authentication")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.loginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openid verification failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openid verification returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("failed to read verification response: %w", err)
	}

	for _, line := range strings.Split(string(body), "\n") {
		if strings.TrimSpace(line) == "is_valid:true" {
			return steamID, nil
		}
	}
	return "", ErrAssertionRejected
}
