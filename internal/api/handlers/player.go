package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/dom/deadlock-hub/internal/domain"
	"github.com/dom/deadlock-hub/internal/service"
	"github.com/dom/deadlock-hub/internal/stats"
	"github.com/go-chi/chi/v5"
)

type PlayerHandler struct {
	playerService *service.PlayerService
}

func NewPlayerHandler(playerService *service.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

type PlayerStatsResponse struct {
	Success bool            `json:"success"`
	SteamID string          `json:"steamId"`
	Data    json.RawMessage `json:"data"`
}

type RecentMatchesResponse struct {
	Success bool                `json:"success"`
	SteamID string              `json:"steamId"`
	Matches []service.MatchView `json:"matches"`
}

func (h *PlayerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	steamID := chi.URLParam(r, "steamId")

	data, err := h.playerService.Stats(r.Context(), steamID)
	if err != nil {
		h.writeError(w, "player.Stats", steamID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PlayerStatsResponse{
		Success: true,
		SteamID: steamID,
		Data:    data,
	})
}

func (h *PlayerHandler) Recent(w http.ResponseWriter, r *http.Request) {
	steamID := chi.URLParam(r, "steamId")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	matches, err := h.playerService.RecentMatches(r.Context(), steamID, limit)
	if err != nil {
		h.writeError(w, "player.Recent", steamID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RecentMatchesResponse{
		Success: true,
		SteamID: steamID,
		Matches: matches,
	})
}

func (h *PlayerHandler) writeError(w http.ResponseWriter, op, steamID string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSteamID):
		http.Error(w, "Invalid Steam ID", http.StatusBadRequest)
	case errors.Is(err, stats.ErrPlayerNotFound):
		http.Error(w, "Player not found", http.StatusNotFound)
	default:
		log.Printf("ERROR [%s] steamID=%s: %v", op, steamID, err)
		http.Error(w, "Player stats are unavailable", http.StatusBadGateway)
	}
}
