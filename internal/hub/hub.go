// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package hub fans catalog change events out to every connected observer.
// Delivery is best-effort: no retry, no persistence, no acknowledgment.
// An observer that errors or stalls past the write deadline is dropped
// from the registry without disturbing the remaining deliveries.
package hub

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"catalogd/internal/models"
)

// DefaultWriteWait bounds how long one delivery may block on a slow
// observer before it is treated as failed.
const DefaultWriteWait = 10 * time.Second

// Hub maintains the registry of live observer connections. Register,
// Unregister and Broadcast may be called concurrently from independent
// goroutines.
type Hub struct {
	mu        sync.Mutex
	conns     map[*Conn]struct{}
	writeWait time.Duration
}

// New returns an empty hub.
func New() *Hub {
	return &Hub{
		conns:     make(map[*Conn]struct{}),
		writeWait: DefaultWriteWait,
	}
}

// Register adds a connection to the registry. Registering the same
// connection twice is a no-op: membership is keyed on identity, so no
// observer is ever delivered to twice per broadcast.
func (h *Hub) Register(c *Conn) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	n := len(h.conns)
	h.mu.Unlock()

	slog.Info("observer registered", "conn", c.ID, "observers", n)
}

// Unregister removes a connection from the registry and closes it.
// Calling it for an unknown or already-removed connection is a no-op.
func (h *Hub) Unregister(c *Conn) {
	h.mu.Lock()
	_, ok := h.conns[c]
	if ok {
		delete(h.conns, c)
	}
	n := len(h.conns)
	h.mu.Unlock()

	if ok {
		c.Close()
		slog.Info("observer unregistered", "conn", c.ID, "observers", n)
	}
}

// Broadcast serializes the event once and attempts delivery to every
// currently-registered connection. A failed delivery unregisters that
// connection and the remaining deliveries proceed; nothing propagates to
// the caller. Broadcast returns after every delivery has been attempted.
func (h *Hub) Broadcast(event models.ChangeEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("event marshal failed", "action", event.Action, "error", err)
		return
	}

	// Deliver against a snapshot so the registry lock is never held
	// across an observer write.
	h.mu.Lock()
	targets := make([]*Conn, 0, len(h.conns))
	for c := range h.conns {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	for _, c := range targets {
		if err := c.Send(data, h.writeWait); err != nil {
			slog.Warn("delivery failed, dropping observer", "conn", c.ID, "action", event.Action, "error", err)
			h.Unregister(c)
		}
	}

	slog.Debug("event broadcast", "action", event.Action, "observers", len(targets))
}

// Count returns the number of registered connections.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// CloseAll unregisters and closes every connection. Used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	conns := h.conns
	h.conns = make(map[*Conn]struct{})
	h.mu.Unlock()

	for c := range conns {
		c.Close()
	}
	if len(conns) > 0 {
		slog.Info("all observers disconnected", "count", len(conns))
	}
}
