package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/dom/deadlock-hub/internal/domain"
	"github.com/dom/deadlock-hub/internal/leaderboard"
	"github.com/dom/deadlock-hub/internal/service"
	"github.com/go-chi/chi/v5"
)

type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

type LeaderboardResponse struct {
	Success           bool                    `json:"success"`
	Region            string                  `json:"region"`
	SteamDataIncluded bool                    `json:"steam_data_included"`
	Data              []domain.LeaderboardRow `json:"data"`
	Pagination        domain.Pagination       `json:"pagination"`
	Filters           leaderboard.Filter      `json:"filters"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	regionParam := chi.URLParam(r, "region")
	region, err := leaderboard.ParseRegion(regionParam)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid region. Must be one of: europe, asia, north-america")
		return
	}

	q := r.URL.Query()
	page := queryInt(q.Get("page"), 1)
	limit := queryInt(q.Get("limit"), leaderboard.DefaultPageSize)
	if page < 1 {
		writeJSONError(w, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	if limit < 1 {
		writeJSONError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	limit = min(limit, leaderboard.MaxPageSize)

	filter := leaderboard.Filter{
		Hero:  queryString(q.Get("hero"), leaderboard.FilterAll),
		Medal: queryString(q.Get("medal"), leaderboard.FilterAll),
	}

	result, err := h.leaderboardService.GetLeaderboard(r.Context(), service.LeaderboardQuery{
		Region: region,
		Page:   page,
		Limit:  limit,
		Filter: filter,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRegion) || errors.Is(err, domain.ErrInvalidPage) || errors.Is(err, domain.ErrInvalidLimit) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("ERROR [leaderboard.Get] region=%s page=%d: %v", region, page, err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch leaderboard data")
		return
	}

	resp := LeaderboardResponse{
		Success:           true,
		Region:            region.Slug(),
		SteamDataIncluded: result.SteamDataIncluded,
		Data:              result.Page.Rows,
		Pagination:        result.Page.Pagination,
		Filters:           filter,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Success: false, Error: message})
}

// queryInt returns def for a missing parameter and -1 for one that isn't an
// integer, which callers reject as out of range.
func queryInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}

func queryString(raw, def string) string {
	if raw == "" {
		return def
	}
	return raw
}
