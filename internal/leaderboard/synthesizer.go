// Package leaderboard builds the ranked player pages shown on the site.
//
// There is no backing ranking store: pages are synthesized. Rank and steam
// id are pure functions of (region, page, pageSize, row index); hero picks,
// subrank, score jitter and win/loss counts come from a per-call random
// source.
package leaderboard

import (
	"fmt"
	"math/rand/v2"

	"github.com/dom/deadlock-hub/internal/domain"
)

const (
	// TotalCount is the advertised size of every regional ladder.
	TotalCount = 1000

	DefaultPageSize = 50
	MaxPageSize     = 100

	topScore  = 12000
	scoreStep = 5
	maxJitter = 4
)

type Synthesizer struct {
	heroes []string
	seed   func() uint64
}

type Option func(*Synthesizer)

// WithSeed makes the random fields reproducible. Used by tests.
func WithSeed(seed uint64) Option {
	return func(s *Synthesizer) {
		s.seed = func() uint64 { return seed }
	}
}

// NewSynthesizer takes the hero names rows may list as played.
func NewSynthesizer(heroes []string, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		heroes: append([]string(nil), heroes...),
		seed:   rand.Uint64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GeneratePage builds one page of the region's ladder. Pages past the end of
// the ladder come back with no rows and the usual pagination block.
func (s *Synthesizer) GeneratePage(region domain.Region, page, pageSize int) (domain.LeaderboardPage, error) {
	if regionDigit(region) == 0 {
		return domain.LeaderboardPage{}, domain.ErrInvalidRegion
	}
	if page < 1 {
		return domain.LeaderboardPage{}, domain.ErrInvalidPage
	}
	if pageSize < 1 {
		return domain.LeaderboardPage{}, domain.ErrInvalidLimit
	}

	totalPages := (TotalCount-1)/pageSize + 1
	result := domain.LeaderboardPage{
		Rows: []domain.LeaderboardRow{},
		Pagination: domain.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalCount:  TotalCount,
			PerPage:     pageSize,
		},
	}
	// checked before computing the offset, which would overflow for huge pages
	if page > totalPages {
		return result, nil
	}

	rng := rand.New(rand.NewPCG(s.seed(), uint64(regionDigit(region))<<32|uint64(page)))

	offset := (page - 1) * pageSize
	rows := make([]domain.LeaderboardRow, 0, min(pageSize, TotalCount-offset))
	for i := 0; i < pageSize; i++ {
		rank := offset + i + 1
		if rank > TotalCount {
			break
		}
		rows = append(rows, s.buildRow(rng, region, page, i, rank))
	}
	result.Rows = rows
	return result, nil
}

func (s *Synthesizer) buildRow(rng *rand.Rand, region domain.Region, page, rowIndex, rank int) domain.LeaderboardRow {
	idx := rank - 1

	wins := 40 + rng.IntN(160)
	return domain.LeaderboardRow{
		Rank:         rank,
		PlayerName:   playerName(region, rank),
		AvatarURL:    avatarPool[(idx+regionDigit(region))%len(avatarPool)],
		SteamID:      SyntheticSteamID(region, page, rowIndex),
		CountryFlag:  pick(flagPools[region], idx),
		HeroesPlayed: s.pickHeroes(rng, 1+(rank+page)%3),
		Medal:        medalForRank(rank),
		Subrank:      domain.MinSubrank + rng.IntN(domain.MaxSubrank-domain.MinSubrank+1),
		Score:        topScore - scoreStep*idx - rng.IntN(maxJitter+1),
		Wins:         wins,
		Losses:       rng.IntN(wins),
	}
}

// SyntheticSteamID is 7656119 + region digit + 4-digit page + 5-digit row
// index: 17 digits like a real SteamID64, unique per (region, page, index).
func SyntheticSteamID(region domain.Region, page, rowIndex int) string {
	return fmt.Sprintf("7656119%d%04d%05d", regionDigit(region), page, rowIndex)
}

// playerName cycles the region's pool by ladder position and suffixes
// _2, _3, ... once the pool has been used up.
func playerName(region domain.Region, rank int) string {
	if region == domain.RegionAsia && rank == 1 {
		return PinnedAsiaName
	}
	pool := namePools[region]
	idx := rank - 1
	name := pool[idx%len(pool)]
	if cycle := idx / len(pool); cycle > 0 {
		name = fmt.Sprintf("%s_%d", name, cycle+1)
	}
	return name
}

func (s *Synthesizer) pickHeroes(rng *rand.Rand, n int) []string {
	if len(s.heroes) == 0 {
		return []string{}
	}
	n = min(n, len(s.heroes))
	perm := rng.Perm(len(s.heroes))
	out := make([]string, n)
	for i := range out {
		out[i] = s.heroes[perm[i]]
	}
	return out
}

func pick(pool []string, idx int) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[idx%len(pool)]
}
