package leaderboard

import (
	"strings"
	"testing"

	"github.com/dom/deadlock-hub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowsWith(heroes ...[]string) []domain.LeaderboardRow {
	rows := make([]domain.LeaderboardRow, len(heroes))
	for i, h := range heroes {
		rows[i] = domain.LeaderboardRow{Rank: i + 1, HeroesPlayed: h, Medal: medalForRank((i + 1) * 60)}
	}
	return rows
}

func TestFilter_Inactive(t *testing.T) {
	rows := rowsWith([]string{"Haze"}, []string{"Seven"})

	for _, f := range []Filter{{}, {Hero: "all", Medal: "all"}, {Hero: "ALL"}} {
		assert.False(t, f.Active())
		assert.Equal(t, rows, f.Apply(rows))
	}
}

func TestFilter_Hero(t *testing.T) {
	rows := rowsWith(
		[]string{"Grey Talon", "Haze"},
		[]string{"Seven"},
		[]string{"Mo & Krill"},
		[]string{"Infernus", "Abrams"},
	)

	tests := []struct {
		hero      string
		wantRanks []int
	}{
		{hero: "haze", wantRanks: []int{1}},
		{hero: "grey-talon", wantRanks: []int{1}},
		{hero: "GREYTALON", wantRanks: []int{1}},
		{hero: "mo&krill", wantRanks: []int{3}},
		{hero: "krill", wantRanks: []int{3}},
		{hero: "abrams", wantRanks: []int{4}},
		{hero: "paradox", wantRanks: nil},
	}

	for _, tt := range tests {
		t.Run(tt.hero, func(t *testing.T) {
			got := Filter{Hero: tt.hero}.Apply(rows)
			var ranks []int
			for _, r := range got {
				ranks = append(ranks, r.Rank)
			}
			assert.Equal(t, tt.wantRanks, ranks)
		})
	}
}

func TestFilter_MedalOnGeneratedPage(t *testing.T) {
	s := NewSynthesizer(testHeroes, WithSeed(5))
	page, err := s.GeneratePage(domain.RegionEurope, 1, 100)
	require.NoError(t, err)

	for _, medal := range []string{"Eternus", "eternus", "ETERNUS"} {
		got := Filter{Medal: medal}.Apply(page.Rows)
		assert.Len(t, got, 50)
		assert.LessOrEqual(t, len(got), len(page.Rows))
		for _, row := range got {
			assert.True(t, strings.EqualFold(string(row.Medal), "Eternus"))
		}
	}

	assert.Empty(t, Filter{Medal: "Ritualist"}.Apply(page.Rows))
	assert.Empty(t, Filter{Medal: "Etern"}.Apply(page.Rows))
}

func TestFilter_Combined(t *testing.T) {
	rows := rowsWith([]string{"Haze"}, []string{"Haze"}, []string{"Seven"})
	rows[1].Medal = domain.MedalEternus

	got := Filter{Hero: "haze", Medal: "eternus"}.Apply(rows)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Rank)
}
