package catalog

import "github.com/dom/deadlock-hub/internal/domain"

const (
	weapon   = domain.CategoryWeapon
	vitality = domain.CategoryVitality
	spirit   = domain.CategorySpirit
)

type itemRow struct {
	id       int64
	name     string
	category domain.ItemCategory
	tier     int
}

// itemRows mirrors the ids the stats API reports in match item lists.
// Several items were re-issued under new ids after balance patches; the old
// ids stay here so historical matches still resolve.
var itemRows = []itemRow{
	// Weapon
	{715762406, "Basic Magazine", weapon, 1},
	{1342610602, "Close Quarters", weapon, 1},
	{1437614329, "Headshot Booster", weapon, 1},
	{4072270083, "High-Velocity Mag", weapon, 1},
	{2220233739, "Hollow Point Ward", weapon, 1},
	{1009965641, "Monster Rounds", weapon, 1},
	{2829638276, "Rapid Rounds", weapon, 1},
	{1998374645, "Restorative Shot", weapon, 1},
	{2481177645, "Active Reload", weapon, 2},
	{3844086706, "Berserker", weapon, 2},
	{1925087134, "Fleetfoot", weapon, 2},
	{2010028405, "Kinetic Dash", weapon, 2},
	{1932939246, "Long Range", weapon, 2},
	{3731544245, "Melee Charge", weapon, 2},
	{1254091416, "Mystic Shot", weapon, 2},
	{2447176615, "Slowing Bullets", weapon, 2},
	{1292979587, "Soul Shredder Bullets", weapon, 2},
	{2591896065, "Swift Striker", weapon, 2},
	{1414319208, "Burst Fire", weapon, 3},
	{3140772621, "Escalating Resilience", weapon, 3},
	{2617435668, "Headhunter", weapon, 3},
	{4104549924, "Hunter's Aura", weapon, 3},
	{2163598980, "Intensifying Magazine", weapon, 3},
	{1102081447, "Point Blank", weapon, 3},
	{3585132399, "Sharpshooter", weapon, 3},
	{3970837787, "Tesla Bullets", weapon, 3},
	{2469449027, "Titanic Magazine", weapon, 3},
	{865846625, "Toxic Bullets", weapon, 3},
	{630839635, "Alchemical Fire", weapon, 4},
	{1371725689, "Crippling Headshot", weapon, 4},
	{2617435669, "Frenzy", weapon, 4},
	{3977876567, "Glass Cannon", weapon, 4},
	{869090587, "Crushing Fists", weapon, 4},
	{1396247347, "Lucky Shot", weapon, 4},
	{3713423303, "Ricochet", weapon, 4},
	{2226497419, "Silencer", weapon, 4},
	{1244752338, "Spiritual Overflow", weapon, 4},

	// Vitality
	{968099481, "Extra Health", vitality, 1},
	{2678489038, "Extra Regen", vitality, 1},
	{2081037738, "Extra Stamina", vitality, 1},
	{558396679, "Healing Rite", vitality, 1},
	{395867183, "Melee Lifesteal", vitality, 1},
	{1548066885, "Sprint Boots", vitality, 1},
	{1797283378, "Bullet Armor", vitality, 2},
	{1282141666, "Bullet Lifesteal", vitality, 2},
	{2059712766, "Combat Barrier", vitality, 2},
	{1813726886, "Debuff Reducer", vitality, 2},
	{2407033488, "Enchanter's Barrier", vitality, 2},
	{3147316197, "Enduring Speed", vitality, 2},
	{2603935618, "Healbane", vitality, 2},
	{1710079648, "Healing Booster", vitality, 2},
	{3361075077, "Reactive Barrier", vitality, 2},
	{3919289022, "Spirit Armor", vitality, 2},
	{2922054143, "Spirit Lifesteal", vitality, 2},
	{3287678549, "Divine Barrier", vitality, 3},
	{2147483647, "Fortitude", vitality, 3},
	{1644605047, "Lifestrike", vitality, 3},
	{2064029594, "Majestic Leap", vitality, 3},
	{2152872419, "Metal Skin", vitality, 3},
	{2537553239, "Rescue Beam", vitality, 3},
	{3261353684, "Veil Walker", vitality, 3},
	{1113837674, "Colossus", vitality, 4},
	{2108215830, "Inhibitor", vitality, 4},
	{3133167885, "Leech", vitality, 4},
	{4003032160, "Phantom Strike", vitality, 4},
	{3005970438, "Siphon Bullets", vitality, 4},
	{3612042342, "Unstoppable", vitality, 4},

	// Spirit
	{1829830659, "Extra Charge", spirit, 1},
	{2951612397, "Extra Spirit", spirit, 1},
	{3403085434, "Infuser", spirit, 1},
	{3270001687, "Mystic Burst", spirit, 1},
	{380806748, "Mystic Reach", spirit, 1},
	{811521119, "Spirit Strike", spirit, 1},
	{1976391348, "Bullet Resist Shredder", spirit, 2},
	{3357231760, "Cold Front", spirit, 2},
	{2095565695, "Decay", spirit, 2},
	{1976701714, "Duration Extender", spirit, 2},
	{2533252781, "Improved Cooldown", spirit, 2},
	{2820116164, "Mystic Vulnerability", spirit, 2},
	{3005970439, "Quicksilver Reload", spirit, 2},
	{1235347618, "Slowing Hex", spirit, 2},
	{2356412290, "Suppressor", spirit, 2},
	{2800629741, "Withering Whip", spirit, 2},
	{2108215831, "Ethereal Shift", spirit, 3},
	{3696726732, "Improved Burst", spirit, 3},
	{600033864, "Improved Spirit", spirit, 3},
	{2739107182, "Knockdown", spirit, 3},
	{3535455555, "Mystic Slow", spirit, 3},
	{1055679805, "Rapid Recharge", spirit, 3},
	{3403085435, "Superior Stamina", spirit, 3},
	{1854666434, "Surge of Power", spirit, 3},
	{1102081448, "Torment Pulse", spirit, 3},
	{3357231761, "Boundless Spirit", spirit, 4},
	{2717651715, "Diviner's Kevlar", spirit, 4},
	{1710079649, "Echo Shard", spirit, 4},
	{3812615317, "Magic Carpet", spirit, 4},
	{2460791803, "Mystic Reverb", spirit, 4},
	{1829830660, "Refresher", spirit, 4},
	{339443430, "Superior Cooldown", spirit, 4},
	{1282141667, "Superior Duration", spirit, 4},

	// Re-issued ids
	{3977876566, "Extra Charge", spirit, 1},
	{630839634, "Headhunter", weapon, 3},
}

// tierCosts is the souls price of each shop tier.
var tierCosts = map[int]int{
	1: 800,
	2: 1600,
	3: 3200,
	4: 6400,
}
