package ws

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"typerace/internal/domain"
	"typerace/internal/game"
)

// Handler handles WebSocket connections
type Handler struct {
	hub      *game.Hub
	gateway  *Gateway
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *game.Hub, gateway *Gateway, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:     hub,
		gateway: gateway,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins for development
				// In production, you should validate the origin
				return true
			},
		},
		logger: logger,
	}
}

// ServeHTTP handles WebSocket upgrade requests. The display name travels
// in the handshake query.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "username is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	connID := uuid.New().String()
	client := NewClient(conn, h.hub, h.gateway, connID, username, h.logger)
	h.gateway.Add(client)

	if err := h.hub.Connect(connID, username); err != nil {
		// Duplicate display name: tell the connection, then drop it.
		h.gateway.Remove(connID)
		client.Reject(domain.NewEvent(domain.EventNameTaken, nil))
		return
	}

	h.logger.Info().Str("conn", connID).Str("username", username).Msg("websocket connected")
	client.Run()
}
