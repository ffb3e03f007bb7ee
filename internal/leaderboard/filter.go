package leaderboard

import (
	"strings"
	"unicode"

	"github.com/dom/deadlock-hub/internal/domain"
)

// FilterAll disables a filter.
const FilterAll = "all"

type Filter struct {
	Hero  string `json:"hero"`
	Medal string `json:"medal"`
}

func (f Filter) heroActive() bool {
	return f.Hero != "" && !strings.EqualFold(f.Hero, FilterAll)
}

func (f Filter) medalActive() bool {
	return f.Medal != "" && !strings.EqualFold(f.Medal, FilterAll)
}

func (f Filter) Active() bool {
	return f.heroActive() || f.medalActive()
}

// Apply drops rows that don't match. It only sees the rows it is given, so a
// filtered page is usually shorter than the page size.
func (f Filter) Apply(rows []domain.LeaderboardRow) []domain.LeaderboardRow {
	if !f.Active() {
		return rows
	}

	hero := normalizeHero(f.Hero)
	out := make([]domain.LeaderboardRow, 0, len(rows))
	for _, row := range rows {
		if f.medalActive() && !strings.EqualFold(string(row.Medal), strings.TrimSpace(f.Medal)) {
			continue
		}
		if f.heroActive() && !playedHero(row.HeroesPlayed, hero) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func playedHero(heroes []string, normalized string) bool {
	for _, h := range heroes {
		if strings.Contains(normalizeHero(h), normalized) {
			return true
		}
	}
	return false
}

// normalizeHero lowercases and drops everything but letters and digits, so
// "grey-talon", "Grey Talon" and "GREYTALON" all compare equal.
func normalizeHero(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
