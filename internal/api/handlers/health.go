package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dom/deadlock-hub/internal/cache"
	"github.com/dom/deadlock-hub/internal/config"
	"gorm.io/gorm"
)

type HealthHandler struct {
	cfg   *config.Config
	db    *gorm.DB
	cache *cache.Client
}

func NewHealthHandler(cfg *config.Config, db *gorm.DB, cacheClient *cache.Client) *HealthHandler {
	return &HealthHandler{cfg: cfg, db: db, cache: cacheClient}
}

type HealthResponse struct {
	Status             string `json:"status"`
	Environment        string `json:"environment"`
	Timestamp          string `json:"timestamp"`
	SteamAPIConfigured bool   `json:"steam_api_configured"`
	Database           string `json:"database"`
	Cache              string `json:"cache"`
}

// Check always answers 200 while the process is up; dependency states are
// reported in the body.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:             "ok",
		Environment:        h.cfg.Environment,
		Timestamp:          time.Now().UTC().Format(time.RFC3339),
		SteamAPIConfigured: h.cfg.SteamEnabled(),
		Database:           h.databaseState(ctx),
		Cache:              "disabled",
	}
	if h.cache.Enabled() {
		resp.Cache = "up"
		if err := h.cache.Ping(ctx); err != nil {
			resp.Cache = "down"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *HealthHandler) databaseState(ctx context.Context) string {
	if h.db == nil {
		return "disabled"
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return "down"
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return "down"
	}
	return "up"
}
