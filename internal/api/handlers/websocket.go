package handlers

import (
	"log"
	"net/http"
	"slices"

	"github.com/dom/deadlock-hub/internal/api/middleware"
	"github.com/dom/deadlock-hub/internal/websocket"
	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub      *websocket.Hub
	upgrader ws.Upgrader
}

// NewWebSocketHandler accepts upgrades from allowedOrigins. An empty list
// allows any origin.
func NewWebSocketHandler(hub *websocket.Hub, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowedOrigins) == 0 {
					return true
				}
				return origin == "http://"+r.Host || origin == "https://"+r.Host || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// Handle upgrades the connection. The feed is public; a signed-in user is
// only recorded for logging.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		userID = uuid.Nil
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WARN [ws.Handle] upgrade failed: %v", err)
		return
	}

	websocket.NewClient(h.hub, conn, userID).Serve()
}
