package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/dom/deadlock-hub/internal/api/middleware"
	"github.com/dom/deadlock-hub/internal/domain"
	"github.com/dom/deadlock-hub/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ForumHandler struct {
	forumService *service.ForumService
}

func NewForumHandler(forumService *service.ForumService) *ForumHandler {
	return &ForumHandler{forumService: forumService}
}

type CreateThreadRequest struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

type CreatePostRequest struct {
	Body string `json:"body"`
}

type AuthorResponse struct {
	SteamID   string `json:"steamId"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type ThreadResponse struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Body       string          `json:"body"`
	Tags       []string        `json:"tags"`
	Author     *AuthorResponse `json:"author,omitempty"`
	PostCount  int             `json:"postCount"`
	LastPostAt time.Time       `json:"lastPostAt"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type PostResponse struct {
	ID        string          `json:"id"`
	ThreadID  string          `json:"threadId"`
	Body      string          `json:"body"`
	Author    *AuthorResponse `json:"author,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type ThreadListResponse struct {
	Threads []ThreadResponse `json:"threads"`
	Total   int64            `json:"total"`
}

type ThreadDetailResponse struct {
	Thread ThreadResponse `json:"thread"`
	Posts  []PostResponse `json:"posts"`
}

func newAuthorResponse(u *domain.User) *AuthorResponse {
	if u == nil {
		return nil
	}
	return &AuthorResponse{
		SteamID:   u.SteamID,
		Name:      u.PersonaName,
		AvatarURL: u.AvatarURL,
	}
}

func newThreadResponse(t *domain.Thread) ThreadResponse {
	tags := []string{}
	if len(t.Tags) > 0 {
		json.Unmarshal(t.Tags, &tags)
	}
	return ThreadResponse{
		ID:         t.ID.String(),
		Title:      t.Title,
		Body:       t.Body,
		Tags:       tags,
		Author:     newAuthorResponse(t.Author),
		PostCount:  t.PostCount,
		LastPostAt: t.LastPostAt,
		CreatedAt:  t.CreatedAt,
	}
}

func newPostResponse(p *domain.Post) PostResponse {
	return PostResponse{
		ID:        p.ID.String(),
		ThreadID:  p.ThreadID.String(),
		Body:      p.Body,
		Author:    newAuthorResponse(p.Author),
		CreatedAt: p.CreatedAt,
	}
}

func (h *ForumHandler) ListThreads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	threads, total, err := h.forumService.ListThreads(r.Context(), q.Get("tag"), limit, offset)
	if err != nil {
		log.Printf("ERROR [forum.ListThreads]: %v", err)
		http.Error(w, "Failed to list threads", http.StatusInternalServerError)
		return
	}

	resp := ThreadListResponse{
		Threads: make([]ThreadResponse, len(threads)),
		Total:   total,
	}
	for i, t := range threads {
		resp.Threads[i] = newThreadResponse(t)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *ForumHandler) CreateThread(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateThreadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	thread, err := h.forumService.CreateThread(r.Context(), userID, service.CreateThreadInput{
		Title: req.Title,
		Body:  req.Body,
		Tags:  req.Tags,
	})
	if err != nil {
		if service.IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("ERROR [forum.CreateThread] userID=%s: %v", userID, err)
		http.Error(w, "Failed to create thread", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(newThreadResponse(thread))
}

func (h *ForumHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid thread ID", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	thread, posts, err := h.forumService.GetThread(r.Context(), threadID, limit, offset)
	if err != nil {
		if errors.Is(err, domain.ErrThreadNotFound) {
			http.Error(w, "Thread not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [forum.GetThread] threadID=%s: %v", threadID, err)
		http.Error(w, "Failed to get thread", http.StatusInternalServerError)
		return
	}

	resp := ThreadDetailResponse{
		Thread: newThreadResponse(thread),
		Posts:  make([]PostResponse, len(posts)),
	}
	for i, p := range posts {
		resp.Posts[i] = newPostResponse(p)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *ForumHandler) Reply(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	threadID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid thread ID", http.StatusBadRequest)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	post, err := h.forumService.Reply(r.Context(), userID, threadID, req.Body)
	if err != nil {
		switch {
		case service.IsValidationError(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrThreadNotFound):
			http.Error(w, "Thread not found", http.StatusNotFound)
		default:
			log.Printf("ERROR [forum.Reply] threadID=%s userID=%s: %v", threadID, userID, err)
			http.Error(w, "Failed to post reply", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(newPostResponse(post))
}
