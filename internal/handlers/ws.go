// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"catalogd/internal/hub"
)

// WS upgrades observer connections and keeps them registered with the
// hub until they disconnect.
type WS struct {
	hub      *hub.Hub
	upgrader websocket.Upgrader
}

// NewWS creates the websocket handler for the given hub.
func NewWS(h *hub.Hub) *WS {
	return &WS{
		hub: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Observers connect from arbitrary origins; the endpoint
			// carries no credentials and is read-only.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle handles GET /ws. The server sends events and only reads to
// detect disconnects; any inbound payload is discarded.
func (h *WS) Handle(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	conn := hub.NewConn(ws)
	h.hub.Register(conn)
	defer h.hub.Unregister(conn)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("observer read error", "conn", conn.ID, "error", err)
			}
			return
		}
	}
}
