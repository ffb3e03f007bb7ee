package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dom/deadlock-hub/internal/api/middleware"
	"github.com/dom/deadlock-hub/internal/config"
	"github.com/dom/deadlock-hub/internal/domain"
	"github.com/dom/deadlock-hub/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type UserResponse struct {
	ID         string `json:"id"`
	SteamID    string `json:"steamId"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatarUrl,omitempty"`
	ProfileURL string `json:"profileUrl,omitempty"`
}

type SessionResponse struct {
	Success bool          `json:"success"`
	User    *UserResponse `json:"user,omitempty"`
}

func newUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID.String(),
		SteamID:    u.SteamID,
		Name:       u.PersonaName,
		AvatarURL:  u.AvatarURL,
		ProfileURL: u.ProfileURL,
	}
}

// SteamLogin sends the browser to the Steam sign-in page.
func (h *AuthHandler) SteamLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.authService.LoginURL(), http.StatusFound)
}

// SteamCallback is where Steam returns the browser after sign-in.
func (h *AuthHandler) SteamCallback(w http.ResponseWriter, r *http.Request) {
	result, err := h.authService.CompleteLogin(r.Context(), r.URL.Query())
	if err != nil {
		if errors.Is(err, service.ErrLoginFailed) {
			log.Printf("ERROR [auth.SteamCallback] %v", err)
			http.Error(w, "Steam login failed", http.StatusUnauthorized)
			return
		}
		log.Printf("ERROR [auth.SteamCallback] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, h.sessionCookie(result.AccessToken, time.Duration(h.cfg.JWTExpirationHours)*time.Hour))
	http.Redirect(w, r, "/", http.StatusFound)
}

// Session reports who is signed in. Anonymous callers get success=false.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	resp := SessionResponse{}

	if userID, ok := middleware.GetUserID(r.Context()); ok {
		user, err := h.authService.GetUserByID(r.Context(), userID)
		switch {
		case err == nil:
			resp.Success = true
			resp.User = newUserResponse(user)
		case !errors.Is(err, service.ErrUserNotFound):
			log.Printf("ERROR [auth.Session] userID=%s: %v", userID, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		log.Printf("ERROR [auth.Logout] userID=%s: %v", userID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, h.sessionCookie("", -1))

	// Form posts from the page header expect to land back on the site.
	if r.Header.Get("Content-Type") == "application/x-www-form-urlencoded" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// sessionCookie builds the session cookie. A negative maxAge deletes it.
func (h *AuthHandler) sessionCookie(value string, maxAge time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   !h.cfg.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge < 0 {
		c.MaxAge = -1
	} else {
		c.MaxAge = int(maxAge.Seconds())
	}
	return c
}
