package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/dom/deadlock-hub/internal/api/middleware"
	"github.com/dom/deadlock-hub/internal/domain"
	"github.com/dom/deadlock-hub/internal/leaderboard"
	"github.com/dom/deadlock-hub/internal/service"
	"github.com/dom/deadlock-hub/internal/steam"
	"github.com/dom/deadlock-hub/internal/web"
	"github.com/go-chi/chi/v5"
)

// PageHandler serves the HTML pages. The pages load their data from the
// JSON API in the browser.
type PageHandler struct {
	renderer      *web.Renderer
	authService   *service.AuthService
	playerService *service.PlayerService
}

func NewPageHandler(renderer *web.Renderer, authService *service.AuthService, playerService *service.PlayerService) *PageHandler {
	return &PageHandler{
		renderer:      renderer,
		authService:   authService,
		playerService: playerService,
	}
}

func (h *PageHandler) pageData(ctx context.Context, title string) web.PageData {
	data := web.PageData{
		Title:   title,
		Regions: web.Regions(),
	}
	if userID, ok := middleware.GetUserID(ctx); ok {
		if user, err := h.authService.GetUserByID(ctx, userID); err == nil {
			data.User = user
		}
	}
	return data
}

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "home", h.pageData(r.Context(), "Home"))
}

func (h *PageHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	region, err := leaderboard.ParseRegion(chi.URLParam(r, "region"))
	if err != nil {
		h.NotFound(w, r)
		return
	}

	data := h.pageData(r.Context(), region.DisplayName()+" Leaderboard")
	data.Region = region.Slug()
	h.renderer.Render(w, http.StatusOK, "leaderboard", data)
}

func (h *PageHandler) Player(w http.ResponseWriter, r *http.Request) {
	steamID := chi.URLParam(r, "steamId")
	if !steam.ValidSteamID64(steamID) {
		h.NotFound(w, r)
		return
	}

	data := h.pageData(r.Context(), "Player "+steamID)
	data.SteamID = steamID

	summary, err := h.playerService.Summary(r.Context(), steamID)
	switch {
	case err == nil:
		data.Title = summary.PersonaName
		data.Player = &web.PlayerCard{
			Name:       summary.PersonaName,
			AvatarURL:  summary.AvatarFull,
			ProfileURL: summary.ProfileURL,
			Country:    summary.CountryCode,
		}
	case errors.Is(err, steam.ErrNotConfigured), errors.Is(err, steam.ErrPlayerNotFound), errors.Is(err, domain.ErrInvalidSteamID):
	default:
		log.Printf("WARN [pages.Player] steamID=%s: %v", steamID, err)
	}

	h.renderer.Render(w, http.StatusOK, "player", data)
}

func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusNotFound, "notfound", h.pageData(r.Context(), "Not Found"))
}
