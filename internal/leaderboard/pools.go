package leaderboard

import "github.com/dom/deadlock-hub/internal/domain"

// PinnedAsiaName always holds rank 1 in asia.
const PinnedAsiaName = "Kirin"

var namePools = map[domain.Region][]string{
	domain.RegionEurope: {
		"Fjordbreaker", "NachtEule", "Sablier", "Kowal", "Brightwater",
		"Zeroshift", "Lumière", "Vargr", "Pellucid", "Grauwolf",
		"Saltmarsh", "Ostrava", "Quillon", "Mistral", "Hexenmeister",
		"Dunmore", "Corvid", "Tramontana", "Ironbark", "Selkie",
	},
	domain.RegionAsia: {
		"Hanabi", "Tsubame", "Baekho", "Longwei", "Sakuya",
		"Mugen", "Haneul", "Xingyun", "Kazeoni", "Yuki",
		"Tianlang", "Akatsuki", "Seojun", "Lingxi", "Raijin",
		"Minato", "Jinhwa", "Fenghuang", "Kagero", "Shiro",
	},
	domain.RegionNorthAmerica: {
		"Bayou", "Redwood", "Sasquatch", "Mesa", "Greyhound",
		"Tumbleweed", "Lakeshore", "Bigsky", "Cascade", "Prairie",
		"Sundown", "Boomtown", "Coyote", "Ironhorse", "Gulfstream",
		"Appalach", "Saguaro", "Blizzard", "Timberline", "Riverbend",
	},
}

var flagPools = map[domain.Region][]string{
	domain.RegionEurope:       {"🇩🇪", "🇫🇷", "🇸🇪", "🇵🇱", "🇬🇧", "🇪🇸", "🇳🇴", "🇨🇿", "🇺🇦", "🇮🇹"},
	domain.RegionAsia:         {"🇯🇵", "🇰🇷", "🇨🇳", "🇹🇼", "🇻🇳", "🇹🇭", "🇵🇭", "🇸🇬"},
	domain.RegionNorthAmerica: {"🇺🇸", "🇨🇦", "🇲🇽"},
}

var avatarPool = []string{
	"https://avatars.steamstatic.com/fef49e7fa7e1997310d705b2a6158ff8dc1cdfeb_full.jpg",
	"https://avatars.steamstatic.com/b5bd56c1aa4644a474a2e4972be27ef9e82e517e_full.jpg",
	"https://avatars.steamstatic.com/c5d56249ee5d28a07db4ac9f7f60af961fab5426_full.jpg",
	"https://avatars.steamstatic.com/2e4d8a1b7f9c3a6e5d0b1c2f3a4e5d6c7b8a9f0e_full.jpg",
	"https://avatars.steamstatic.com/9a8b7c6d5e4f3a2b1c0d9e8f7a6b5c4d3e2f1a0b_full.jpg",
	"https://avatars.steamstatic.com/4f3e2d1c0b9a8f7e6d5c4b3a2f1e0d9c8b7a6f5e_full.jpg",
}

// DefaultProfilePool are real steam ids overlaid on the top rows of a page
// when a Steam Web API key is configured.
var DefaultProfilePool = []string{
	"76561197960287930",
	"76561197960435530",
	"76561197972495328",
	"76561198006409530",
	"76561197987245681",
}

// medalBands maps the worst rank that still earns each medal.
var medalBands = []struct {
	maxRank int
	medal   domain.Medal
}{
	{50, domain.MedalEternus},
	{150, domain.MedalAscendant},
	{300, domain.MedalPhantom},
	{500, domain.MedalOracle},
	{700, domain.MedalArchon},
	{850, domain.MedalEmissary},
}

func medalForRank(rank int) domain.Medal {
	for _, band := range medalBands {
		if rank <= band.maxRank {
			return band.medal
		}
	}
	return domain.MedalRitualist
}
