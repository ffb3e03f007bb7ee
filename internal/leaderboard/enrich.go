package leaderboard

import (
	"context"
	"log"
	"time"

	"github.com/dom/deadlock-hub/internal/domain"
)

const (
	// EnrichedRows is how many rows at the top of each page may carry a real
	// profile.
	EnrichedRows = 3

	DefaultEnrichTimeout = 3 * time.Second
)

// Profile is the slice of a real player summary overlaid on a synthetic row.
type Profile struct {
	SteamID     string
	Name        string
	AvatarURL   string
	CountryCode string
}

// ProfileSource fetches a real player profile by SteamID64.
type ProfileSource interface {
	FetchProfile(ctx context.Context, steamID string) (Profile, error)
}

type Enricher struct {
	source  ProfileSource
	pool    []string
	timeout time.Duration
}

func NewEnricher(source ProfileSource, pool []string, timeout time.Duration) *Enricher {
	if len(pool) == 0 {
		pool = DefaultProfilePool
	}
	if timeout <= 0 {
		timeout = DefaultEnrichTimeout
	}
	return &Enricher{
		source:  source,
		pool:    append([]string(nil), pool...),
		timeout: timeout,
	}
}

// Enrich overlays real profiles on the first EnrichedRows rows, one
// sequential call per row. A failed call leaves its row untouched; nothing is
// retried. It returns how many rows were overlaid.
func (e *Enricher) Enrich(ctx context.Context, page int, rows []domain.LeaderboardRow) int {
	overlaid := 0
	for i := 0; i < EnrichedRows && i < len(rows); i++ {
		steamID := e.pool[((page-1)*EnrichedRows+i)%len(e.pool)]

		callCtx, cancel := context.WithTimeout(ctx, e.timeout)
		profile, err := e.source.FetchProfile(callCtx, steamID)
		cancel()
		if err != nil {
			log.Printf("WARN [leaderboard.Enrich] steamID=%s: %v", steamID, err)
			continue
		}

		overlay(&rows[i], profile)
		overlaid++
	}
	return overlaid
}

func overlay(row *domain.LeaderboardRow, p Profile) {
	if p.Name != "" {
		row.PlayerName = p.Name
	}
	if p.AvatarURL != "" {
		row.AvatarURL = p.AvatarURL
	}
	if p.SteamID != "" {
		row.SteamID = p.SteamID
	}
	if flag := countryFlag(p.CountryCode); flag != "" {
		row.CountryFlag = flag
	}
	row.IsRealProfile = true
}

// countryFlag converts an ISO 3166-1 alpha-2 code to its regional
// indicator emoji.
func countryFlag(code string) string {
	if len(code) != 2 {
		return ""
	}
	var out []rune
	for _, c := range code {
		switch {
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		case c < 'A' || c > 'Z':
			return ""
		}
		out = append(out, 0x1F1E6+(c-'A'))
	}
	return string(out)
}
