package service

import (
	"context"
	"fmt"
	"log"

	"github.com/dom/deadlock-hub/internal/domain"
	"github.com/dom/deadlock-hub/internal/leaderboard"
	"github.com/dom/deadlock-hub/internal/steam"
)

type LeaderboardQuery struct {
	Region domain.Region
	Page   int
	Limit  int
	Filter leaderboard.Filter
}

type LeaderboardResult struct {
	Page              domain.LeaderboardPage
	SteamDataIncluded bool
}

type LeaderboardService struct {
	synth    *leaderboard.Synthesizer
	enricher *leaderboard.Enricher
}

// NewLeaderboardService wires enrichment only when enricher is non-nil.
func NewLeaderboardService(synth *leaderboard.Synthesizer, enricher *leaderboard.Enricher) *LeaderboardService {
	return &LeaderboardService{
		synth:    synth,
		enricher: enricher,
	}
}

// GetLeaderboard builds the requested page, overlays real profiles when
// enrichment is wired, then applies the page-local filters. A failure during
// enrichment never reaches the caller: the page is rebuilt without it.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, q LeaderboardQuery) (*LeaderboardResult, error) {
	page, err := s.synth.GeneratePage(q.Region, q.Page, q.Limit)
	if err != nil {
		return nil, err
	}

	included := false
	if s.enricher != nil {
		var overlaid int
		overlaid, err = s.enrich(ctx, q.Page, page.Rows)
		if err != nil {
			log.Printf("ERROR [leaderboard.GetLeaderboard] region=%s page=%d: enrichment failed, serving synthetic page: %v", q.Region, q.Page, err)
			page, err = s.synth.GeneratePage(q.Region, q.Page, q.Limit)
			if err != nil {
				return nil, err
			}
		} else {
			included = overlaid > 0
		}
	}

	page.Rows = q.Filter.Apply(page.Rows)

	return &LeaderboardResult{
		Page:              page,
		SteamDataIncluded: included,
	}, nil
}

func (s *LeaderboardService) enrich(ctx context.Context, page int, rows []domain.LeaderboardRow) (overlaid int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during enrichment: %v", r)
		}
	}()
	return s.enricher.Enrich(ctx, page, rows), nil
}

// steamProfiles adapts the Steam client to leaderboard.ProfileSource.
type steamProfiles struct {
	client *steam.Client
}

func NewSteamProfileSource(client *steam.Client) leaderboard.ProfileSource {
	return steamProfiles{client: client}
}

func (p steamProfiles) FetchProfile(ctx context.Context, steamID string) (leaderboard.Profile, error) {
	summary, err := p.client.PlayerSummary(ctx, steamID)
	if err != nil {
		return leaderboard.Profile{}, err
	}
	return leaderboard.Profile{
		SteamID:     summary.SteamID,
		Name:        summary.PersonaName,
		AvatarURL:   summary.AvatarFull,
		CountryCode: summary.CountryCode,
	}, nil
}
