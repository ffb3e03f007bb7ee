package leaderboard

import (
	"math"
	"strings"
	"testing"

	"github.com/dom/deadlock-hub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHeroes = []string{"Abrams", "Grey Talon", "Haze", "Infernus", "Mo & Krill", "Seven", "Vindicta"}

func TestParseRegion(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Region
		wantErr bool
	}{
		{in: "europe", want: domain.RegionEurope},
		{in: "asia", want: domain.RegionAsia},
		{in: "north-america", want: domain.RegionNorthAmerica},
		{in: "ASIA", wantErr: true},
		{in: " europe", wantErr: true},
		{in: "north_america", wantErr: true},
		{in: "mars", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRegion(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidRegion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGeneratePage_DeterministicCore(t *testing.T) {
	// different seeds: random fields differ, rank and steam id must not
	a := NewSynthesizer(testHeroes, WithSeed(1))
	b := NewSynthesizer(testHeroes, WithSeed(2))

	for _, region := range domain.AllRegions {
		for _, page := range []int{1, 2, 7} {
			pa, err := a.GeneratePage(region, page, 25)
			require.NoError(t, err)
			pb, err := b.GeneratePage(region, page, 25)
			require.NoError(t, err)

			require.Len(t, pb.Rows, len(pa.Rows))
			for i := range pa.Rows {
				assert.Equal(t, pa.Rows[i].Rank, pb.Rows[i].Rank)
				assert.Equal(t, pa.Rows[i].SteamID, pb.Rows[i].SteamID)
				assert.Equal(t, pa.Rows[i].PlayerName, pb.Rows[i].PlayerName)
				assert.Equal(t, pa.Rows[i].Medal, pb.Rows[i].Medal)
			}
		}
	}
}

func TestGeneratePage_SameSeedIsReproducible(t *testing.T) {
	s := NewSynthesizer(testHeroes, WithSeed(99))

	first, err := s.GeneratePage(domain.RegionEurope, 3, 40)
	require.NoError(t, err)
	second, err := s.GeneratePage(domain.RegionEurope, 3, 40)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGeneratePage_RankAndSteamID(t *testing.T) {
	s := NewSynthesizer(testHeroes, WithSeed(7))

	page, err := s.GeneratePage(domain.RegionNorthAmerica, 3, 20)
	require.NoError(t, err)
	require.Len(t, page.Rows, 20)

	seen := make(map[string]bool)
	for i, row := range page.Rows {
		assert.Equal(t, 40+i+1, row.Rank)
		assert.Len(t, row.SteamID, 17)
		assert.True(t, strings.HasPrefix(row.SteamID, "76561193"), row.SteamID)
		assert.False(t, seen[row.SteamID], "duplicate steam id %s", row.SteamID)
		seen[row.SteamID] = true
	}
	assert.Equal(t, "76561193000300000", page.Rows[0].SteamID)
	assert.Equal(t, "76561193000300019", page.Rows[19].SteamID)
}

func TestSyntheticSteamID_UniqueAcrossRegionsAndPages(t *testing.T) {
	seen := make(map[string]bool)
	for _, region := range domain.AllRegions {
		for page := 1; page <= 20; page++ {
			for idx := 0; idx < MaxPageSize; idx++ {
				id := SyntheticSteamID(region, page, idx)
				require.False(t, seen[id], "collision on %s", id)
				seen[id] = true
			}
		}
	}
}

func TestGeneratePage_Pagination(t *testing.T) {
	s := NewSynthesizer(testHeroes, WithSeed(1))

	tests := []struct {
		name      string
		page      int
		pageSize  int
		wantRows  int
		wantPages int
	}{
		{name: "first page", page: 1, pageSize: 50, wantRows: 50, wantPages: 20},
		{name: "uneven last page", page: 11, pageSize: 99, wantRows: 10, wantPages: 11},
		{name: "past the end", page: 30, pageSize: 50, wantRows: 0, wantPages: 20},
		{name: "single row pages", page: 1000, pageSize: 1, wantRows: 1, wantPages: 1000},
		{name: "one past single row pages", page: 1001, pageSize: 1, wantRows: 0, wantPages: 1000},
		{name: "huge page", page: 1<<58 + 1, pageSize: 64, wantRows: 0, wantPages: 16},
		{name: "max page", page: math.MaxInt, pageSize: MaxPageSize, wantRows: 0, wantPages: 10},
		{name: "huge page size", page: 1, pageSize: math.MaxInt, wantRows: TotalCount, wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.GeneratePage(domain.RegionEurope, tt.page, tt.pageSize)
			require.NoError(t, err)
			assert.Len(t, page.Rows, tt.wantRows)
			for i, row := range page.Rows {
				assert.Equal(t, (tt.page-1)*tt.pageSize+i+1, row.Rank)
				assert.Len(t, row.SteamID, 17)
			}
			assert.Equal(t, domain.Pagination{
				CurrentPage: tt.page,
				TotalPages:  tt.wantPages,
				TotalCount:  TotalCount,
				PerPage:     tt.pageSize,
			}, page.Pagination)
		})
	}
}

func TestGeneratePage_InvalidInput(t *testing.T) {
	s := NewSynthesizer(testHeroes)

	_, err := s.GeneratePage(domain.Region("mars"), 1, 50)
	assert.ErrorIs(t, err, domain.ErrInvalidRegion)

	_, err = s.GeneratePage(domain.RegionAsia, 0, 50)
	assert.ErrorIs(t, err, domain.ErrInvalidPage)

	_, err = s.GeneratePage(domain.RegionAsia, 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidLimit)
}

func TestGeneratePage_PinnedAsiaName(t *testing.T) {
	s := NewSynthesizer(testHeroes, WithSeed(3))

	page, err := s.GeneratePage(domain.RegionAsia, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Rows[0].Rank)
	assert.Equal(t, PinnedAsiaName, page.Rows[0].PlayerName)

	eu, err := s.GeneratePage(domain.RegionEurope, 1, 50)
	require.NoError(t, err)
	assert.NotEqual(t, PinnedAsiaName, eu.Rows[0].PlayerName)
}

func TestPlayerName_SuffixAfterPoolExhausted(t *testing.T) {
	pool := namePools[domain.RegionEurope]
	n := len(pool)

	assert.Equal(t, pool[0], playerName(domain.RegionEurope, 1))
	assert.Equal(t, pool[n-1], playerName(domain.RegionEurope, n))
	assert.Equal(t, pool[0]+"_2", playerName(domain.RegionEurope, n+1))
	assert.Equal(t, pool[1]+"_3", playerName(domain.RegionEurope, 2*n+2))

	// names stay unique across the whole ladder
	seen := make(map[string]bool)
	for rank := 1; rank <= TotalCount; rank++ {
		name := playerName(domain.RegionAsia, rank)
		require.False(t, seen[name], "duplicate name %s at rank %d", name, rank)
		seen[name] = true
	}
}

func TestGeneratePage_RowBounds(t *testing.T) {
	s := NewSynthesizer(testHeroes)

	page, err := s.GeneratePage(domain.RegionEurope, 2, MaxPageSize)
	require.NoError(t, err)

	prevScore := topScore + 1
	for _, row := range page.Rows {
		assert.GreaterOrEqual(t, len(row.HeroesPlayed), 1)
		assert.LessOrEqual(t, len(row.HeroesPlayed), 3)
		assert.Equal(t, 1+(row.Rank+2)%3, len(row.HeroesPlayed))
		for _, h := range row.HeroesPlayed {
			assert.Contains(t, testHeroes, h)
		}
		assert.GreaterOrEqual(t, row.Subrank, domain.MinSubrank)
		assert.LessOrEqual(t, row.Subrank, domain.MaxSubrank)
		assert.Less(t, row.Score, prevScore)
		prevScore = row.Score
		assert.GreaterOrEqual(t, row.Wins, 0)
		assert.GreaterOrEqual(t, row.Losses, 0)
		assert.Contains(t, domain.AllMedals, row.Medal)
		assert.NotEmpty(t, row.AvatarURL)
		assert.NotEmpty(t, row.CountryFlag)
		assert.False(t, row.IsRealProfile)
	}
}

func TestMedalForRank(t *testing.T) {
	assert.Equal(t, domain.MedalEternus, medalForRank(1))
	assert.Equal(t, domain.MedalEternus, medalForRank(50))
	assert.Equal(t, domain.MedalAscendant, medalForRank(51))
	assert.Equal(t, domain.MedalEmissary, medalForRank(850))
	assert.Equal(t, domain.MedalRitualist, medalForRank(1000))
}
