package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/tickoff/tickoff-be/internal/auth"
	ws "github.com/tickoff/tickoff-be/internal/websocket"
)

// WebSocketHandler upgrades HTTP connections to the per-user task event
// feed.
type WebSocketHandler struct {
	hub    *ws.Hub
	tokens *auth.TokenManager
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub, tokens *auth.TokenManager) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, tokens: tokens}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// Serve authenticates and upgrades the connection. Browsers cannot set
// headers on websocket requests, so a `token` query parameter is
// accepted alongside the Authorization header.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	tokenStr := auth.BearerToken(r)
	if tokenStr == "" {
		tokenStr = r.URL.Query().Get("token")
	}
	if tokenStr == "" {
		respondMessage(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	claims, err := h.tokens.Verify(tokenStr)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Invalid auth token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn, claims.UserID)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
