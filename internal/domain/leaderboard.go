package domain

// Region is a leaderboard region.
type Region string

const (
	RegionEurope       Region = "europe"
	RegionAsia         Region = "asia"
	RegionNorthAmerica Region = "north_america"
)

var AllRegions = []Region{RegionEurope, RegionAsia, RegionNorthAmerica}

// Slug is the form used in URLs.
func (r Region) Slug() string {
	if r == RegionNorthAmerica {
		return "north-america"
	}
	return string(r)
}

func (r Region) DisplayName() string {
	switch r {
	case RegionEurope:
		return "Europe"
	case RegionAsia:
		return "Asia"
	case RegionNorthAmerica:
		return "North America"
	}
	return string(r)
}

// Medal is a ranked tier, ordered best first in AllMedals.
type Medal string

const (
	MedalEternus   Medal = "Eternus"
	MedalAscendant Medal = "Ascendant"
	MedalPhantom   Medal = "Phantom"
	MedalOracle    Medal = "Oracle"
	MedalArchon    Medal = "Archon"
	MedalEmissary  Medal = "Emissary"
	MedalRitualist Medal = "Ritualist"
)

var AllMedals = []Medal{
	MedalEternus,
	MedalAscendant,
	MedalPhantom,
	MedalOracle,
	MedalArchon,
	MedalEmissary,
	MedalRitualist,
}

const (
	MinSubrank = 1
	MaxSubrank = 6
)

type LeaderboardRow struct {
	Rank          int      `json:"rank"`
	PlayerName    string   `json:"player_name"`
	AvatarURL     string   `json:"avatar_url"`
	SteamID       string   `json:"steam_id"`
	CountryFlag   string   `json:"country_flag"`
	HeroesPlayed  []string `json:"heroes_played"`
	Medal         Medal    `json:"medal"`
	Subrank       int      `json:"subrank"`
	Score         int      `json:"score"`
	Wins          int      `json:"wins"`
	Losses        int      `json:"losses"`
	IsRealProfile bool     `json:"is_real_profile"`
}

type Pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalCount  int `json:"total_count"`
	PerPage     int `json:"per_page"`
}

type LeaderboardPage struct {
	Rows       []LeaderboardRow `json:"data"`
	Pagination Pagination       `json:"pagination"`
}
