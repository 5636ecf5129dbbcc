// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hub

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ErrClosed is returned by Send once a connection has left the Open state.
var ErrClosed = errors.New("hub: connection closed")

// wsWriter is the subset of *websocket.Conn the hub writes through.
// Tests substitute fakes.
type wsWriter interface {
	SetWriteDeadline(t time.Time) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Conn is one registered observer connection. It moves from Open to
// Closed exactly once — on observer disconnect, write error, or explicit
// unregistration — and never back.
type Conn struct {
	ID string

	ws     wsWriter
	mu     sync.Mutex
	closed bool
}

// NewConn wraps an upgraded websocket connection in the Open state.
func NewConn(ws *websocket.Conn) *Conn {
	return newConn(ws)
}

func newConn(ws wsWriter) *Conn {
	return &Conn{ID: uuid.NewString(), ws: ws}
}

// Send writes one text message, waiting at most writeWait for the peer to
// accept it. Returns ErrClosed if the connection is no longer Open.
// Writes are serialized so concurrent broadcasts cannot interleave frames.
func (c *Conn) Send(data []byte, writeWait time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Close transitions the connection to Closed and releases the underlying
// socket. Safe to call more than once.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	_ = c.ws.Close()
}
