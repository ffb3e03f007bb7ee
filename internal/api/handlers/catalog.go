package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dom/deadlock-hub/internal/catalog"
	"github.com/dom/deadlock-hub/internal/domain"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

type ItemResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Tier     int    `json:"tier"`
	Cost     int    `json:"cost"`
	ImageURL string `json:"imageUrl"`
}

type ItemsResponse struct {
	Items []ItemResponse `json:"items"`
	Count int            `json:"count"`
}

type HeroResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

type HeroesResponse struct {
	Heroes []HeroResponse `json:"heroes"`
}

func (h *CatalogHandler) itemResponse(rec domain.ItemRecord) ItemResponse {
	return ItemResponse{
		ID:       rec.ID,
		Name:     rec.Name,
		Category: string(rec.Category),
		Tier:     rec.Tier,
		Cost:     rec.Cost,
		ImageURL: h.catalog.ItemImageURL(rec),
	}
}

func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	var filter catalog.ItemFilter

	if raw := r.URL.Query().Get("category"); raw != "" {
		cat := domain.ItemCategory(raw)
		if !cat.IsValid() {
			http.Error(w, "category must be one of: weapon, vitality, spirit", http.StatusBadRequest)
			return
		}
		filter.Category = cat
	}
	if raw := r.URL.Query().Get("tier"); raw != "" {
		tier, err := strconv.Atoi(raw)
		if err != nil || tier < 1 || tier > 4 {
			http.Error(w, "tier must be between 1 and 4", http.StatusBadRequest)
			return
		}
		filter.Tier = tier
	}

	items := h.catalog.Items(filter)
	resp := ItemsResponse{
		Items: make([]ItemResponse, len(items)),
		Count: len(items),
	}
	for i, it := range items {
		resp.Items[i] = h.itemResponse(it)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *CatalogHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}

	rec, ok := h.catalog.LookupItem(id)
	if !ok {
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.itemResponse(rec))
}

func (h *CatalogHandler) ListHeroes(w http.ResponseWriter, r *http.Request) {
	heroes := h.catalog.Heroes()
	resp := HeroesResponse{Heroes: make([]HeroResponse, len(heroes))}
	for i, hero := range heroes {
		resp.Heroes[i] = HeroResponse{
			ID:       hero.ID,
			Name:     hero.Name,
			ImageURL: h.catalog.HeroImageURL(hero),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
