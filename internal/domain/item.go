package domain

// ItemCategory is the shop slot an item is bought from.
type ItemCategory string

const (
	CategoryWeapon   ItemCategory = "weapon"
	CategoryVitality ItemCategory = "vitality"
	CategorySpirit   ItemCategory = "spirit"
)

var AllCategories = []ItemCategory{CategoryWeapon, CategoryVitality, CategorySpirit}

func (c ItemCategory) IsValid() bool {
	switch c {
	case CategoryWeapon, CategoryVitality, CategorySpirit:
		return true
	}
	return false
}

// ItemRecord is one purchasable in-game item. IDs come from the upstream
// game-stats API and never change.
type ItemRecord struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Category ItemCategory `json:"category"`
	Tier     int          `json:"tier"`
	Cost     int          `json:"cost"`
	ImageRef string       `json:"imageRef"`
}

type HeroRecord struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageRef string `json:"imageRef"`
}

// MatchItemView is what a rendered match shows for each item slot.
type MatchItemView struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Category ItemCategory `json:"category,omitempty"`
	ImageURL string       `json:"imageUrl"`
	Resolved bool         `json:"resolved"`
}
