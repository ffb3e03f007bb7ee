package leaderboard

import (
	"github.com/dom/deadlock-hub/internal/domain"
)

// ParseRegion maps a URL slug to its region. Only the exact slugs are
// accepted; "north_america" stays an internal name.
func ParseRegion(slug string) (domain.Region, error) {
	for _, r := range domain.AllRegions {
		if r.Slug() == slug {
			return r, nil
		}
	}
	return "", domain.ErrInvalidRegion
}

// regionDigit is the region code embedded in synthetic steam ids.
func regionDigit(r domain.Region) int {
	switch r {
	case domain.RegionEurope:
		return 1
	case domain.RegionAsia:
		return 2
	case domain.RegionNorthAmerica:
		return 3
	}
	return 0
}
