// Package catalog resolves the numeric item and hero ids reported by the
// game-stats API into display names, categories and image URLs.
//
// A Catalog is built once at startup and never mutated, so a single instance
// is shared by every request.
package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/dom/deadlock-hub/internal/domain"
)

// PlaceholderImageRef is served for any item name the catalog cannot place.
const PlaceholderImageRef = "items/weapon/placeholder.png"

type Kind int

const (
	KindItem Kind = iota
	KindHero
)

// Resolution is the outcome of resolving an id. Resolved is false when the
// id is not in the table; String then renders the fallback display text.
type Resolution struct {
	Kind     Kind
	ID       int64
	Name     string
	Resolved bool
}

func (r Resolution) String() string {
	if r.Resolved {
		return r.Name
	}
	if r.Kind == KindHero {
		return "Hero_" + strconv.FormatInt(r.ID, 10)
	}
	return fmt.Sprintf("Unknown Item (%d)", r.ID)
}

type Catalog struct {
	assetBaseURL string

	items     map[int64]domain.ItemRecord
	itemOrder []int64
	heroes    map[int64]domain.HeroRecord
	heroOrder []int64

	// derived from items; first (lowest) id wins for shared names
	imageByName map[string]string
	duplicates  map[string][]int64
}

// ItemFilter narrows Items. Zero values match everything.
type ItemFilter struct {
	Category domain.ItemCategory
	Tier     int
}

// New builds the catalog from the embedded tables. Image references are
// resolved against assetBaseURL.
func New(assetBaseURL string) (*Catalog, error) {
	c := &Catalog{
		assetBaseURL: strings.TrimRight(assetBaseURL, "/"),
		items:        make(map[int64]domain.ItemRecord, len(itemRows)),
		heroes:       make(map[int64]domain.HeroRecord, len(heroRows)),
		imageByName:  make(map[string]string, len(itemRows)),
		duplicates:   make(map[string][]int64),
	}

	for _, row := range itemRows {
		if _, exists := c.items[row.id]; exists {
			return nil, fmt.Errorf("duplicate item id %d", row.id)
		}
		cost, ok := tierCosts[row.tier]
		if !ok {
			return nil, fmt.Errorf("item %d: invalid tier %d", row.id, row.tier)
		}
		c.items[row.id] = domain.ItemRecord{
			ID:       row.id,
			Name:     row.name,
			Category: row.category,
			Tier:     row.tier,
			Cost:     cost,
			ImageRef: fmt.Sprintf("items/%s/%s.png", row.category, slug(row.name)),
		}
		c.itemOrder = append(c.itemOrder, row.id)
	}

	for _, row := range heroRows {
		if _, exists := c.heroes[row.id]; exists {
			return nil, fmt.Errorf("duplicate hero id %d", row.id)
		}
		c.heroes[row.id] = domain.HeroRecord{
			ID:       row.id,
			Name:     row.name,
			ImageRef: fmt.Sprintf("heroes/%s.png", slug(row.name)),
		}
		c.heroOrder = append(c.heroOrder, row.id)
	}

	sort.Slice(c.itemOrder, func(i, j int) bool { return c.itemOrder[i] < c.itemOrder[j] })
	sort.Slice(c.heroOrder, func(i, j int) bool { return c.heroOrder[i] < c.heroOrder[j] })

	byName := make(map[string][]int64)
	for _, id := range c.itemOrder {
		rec := c.items[id]
		key := nameKey(rec.Name)
		byName[key] = append(byName[key], id)
		if _, taken := c.imageByName[key]; !taken {
			c.imageByName[key] = c.imageURL(rec.ImageRef)
		}
	}
	for _, ids := range byName {
		if len(ids) > 1 {
			c.duplicates[c.items[ids[0]].Name] = ids
		}
	}

	// Keep listings grouped the way the shop shows them.
	sort.SliceStable(c.itemOrder, func(i, j int) bool {
		a, b := c.items[c.itemOrder[i]], c.items[c.itemOrder[j]]
		if a.Category != b.Category {
			return categoryRank(a.Category) < categoryRank(b.Category)
		}
		if a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		return a.Name < b.Name
	})

	return c, nil
}

// MustNew is New for static tables that are known good.
func MustNew(assetBaseURL string) *Catalog {
	c, err := New(assetBaseURL)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) LookupItem(id int64) (domain.ItemRecord, bool) {
	rec, ok := c.items[id]
	return rec, ok
}

func (c *Catalog) LookupHero(id int64) (domain.HeroRecord, bool) {
	rec, ok := c.heroes[id]
	return rec, ok
}

func (c *Catalog) ResolveItem(id int64) Resolution {
	rec, ok := c.items[id]
	return Resolution{Kind: KindItem, ID: id, Name: rec.Name, Resolved: ok}
}

func (c *Catalog) ResolveHero(id int64) Resolution {
	rec, ok := c.heroes[id]
	return Resolution{Kind: KindHero, ID: id, Name: rec.Name, Resolved: ok}
}

// ResolveItemName never fails: unknown ids render as "Unknown Item (<id>)".
func (c *Catalog) ResolveItemName(id int64) string {
	return c.ResolveItem(id).String()
}

// ResolveHeroName never fails: unknown ids render as "Hero_<id>".
func (c *Catalog) ResolveHeroName(id int64) string {
	return c.ResolveHero(id).String()
}

// ResolveItemImage looks an image up by display name, case-insensitively.
// Unknown names get the weapon placeholder.
func (c *Catalog) ResolveItemImage(name string) string {
	if url, ok := c.imageByName[nameKey(name)]; ok {
		return url
	}
	return c.PlaceholderImageURL()
}

func (c *Catalog) PlaceholderImageURL() string {
	return c.imageURL(PlaceholderImageRef)
}

func (c *Catalog) ItemImageURL(rec domain.ItemRecord) string {
	return c.imageURL(rec.ImageRef)
}

func (c *Catalog) HeroImageURL(rec domain.HeroRecord) string {
	return c.imageURL(rec.ImageRef)
}

// ItemView builds the per-slot view of a match item.
func (c *Catalog) ItemView(id int64) domain.MatchItemView {
	rec, ok := c.items[id]
	if !ok {
		return domain.MatchItemView{
			ID:       id,
			Name:     c.ResolveItemName(id),
			ImageURL: c.PlaceholderImageURL(),
		}
	}
	return domain.MatchItemView{
		ID:       id,
		Name:     rec.Name,
		Category: rec.Category,
		ImageURL: c.imageURL(rec.ImageRef),
		Resolved: true,
	}
}

func (c *Catalog) Items(filter ItemFilter) []domain.ItemRecord {
	out := make([]domain.ItemRecord, 0, len(c.itemOrder))
	for _, id := range c.itemOrder {
		rec := c.items[id]
		if filter.Category != "" && rec.Category != filter.Category {
			continue
		}
		if filter.Tier != 0 && rec.Tier != filter.Tier {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func (c *Catalog) Heroes() []domain.HeroRecord {
	out := make([]domain.HeroRecord, 0, len(c.heroOrder))
	for _, id := range c.heroOrder {
		out = append(out, c.heroes[id])
	}
	return out
}

// HeroNames returns hero display names in id order.
func (c *Catalog) HeroNames() []string {
	out := make([]string, 0, len(c.heroOrder))
	for _, id := range c.heroOrder {
		out = append(out, c.heroes[id].Name)
	}
	return out
}

// DuplicateNames lists display names shared by more than one id. Only the
// lowest id's image is reachable through ResolveItemImage.
func (c *Catalog) DuplicateNames() map[string][]int64 {
	out := make(map[string][]int64, len(c.duplicates))
	for name, ids := range c.duplicates {
		out[name] = append([]int64(nil), ids...)
	}
	return out
}

func (c *Catalog) HasItemName(name string) bool {
	_, ok := c.imageByName[nameKey(name)]
	return ok
}

func (c *Catalog) imageURL(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return c.assetBaseURL + "/" + ref
}

func categoryRank(cat domain.ItemCategory) int {
	for i, c := range domain.AllCategories {
		if c == cat {
			return i
		}
	}
	return len(domain.AllCategories)
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// slug turns "Hunter's Aura" into "hunters_aura".
func slug(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r == '\'':
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	return b.String()
}
