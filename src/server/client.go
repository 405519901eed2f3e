package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Constants
// -----------------------------------------------------------------------------

const (
	writeWait      = 2 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096 // client frames are small JSON commands

	// sendBufferSize bounds the per-session outbound queue; overflowing
	// it counts as a transport failure for that session.
	sendBufferSize = 64
)

// -----------------------------------------------------------------------------

// wsConn is the subset of *websocket.Conn the hub needs. Kept as an
// interface so tests can run clients against an in-memory conn.
type wsConn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
	Close() error
}

// -----------------------------------------------------------------------------
// Client Structure
// -----------------------------------------------------------------------------

// Client is one live session. Owned exclusively by the Hub: created on
// Connect, destroyed on Disconnect or send failure.
type Client struct {
	ID          string
	hub         *Hub
	conn        wsConn
	send        chan map[string]interface{}
	connectedAt time.Time

	messagesSent atomic.Int64

	mu       sync.RWMutex
	channels map[string]struct{}

	closeOnce sync.Once
	done      chan struct{}
}

func newClient(id string, conn wsConn, h *Hub) *Client {
	return &Client{
		ID:          id,
		hub:         h,
		conn:        conn,
		send:        make(chan map[string]interface{}, sendBufferSize),
		connectedAt: time.Now(),
		channels:    map[string]struct{}{SystemChannel: {}},
		done:        make(chan struct{}),
	}
}

// -----------------------------------------------------------------------------

// Channels returns the session's subscription set, sorted.
func (c *Client) Channels() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedChannels(c.channels)
}

func (c *Client) addChannel(ch string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.channels[ch] = struct{}{}
}

func (c *Client) removeChannel(ch string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.channels, ch)
}

// hasChannel is used by tests to check the bidirectional invariant.
func (c *Client) hasChannel(ch string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.channels[ch]
	return ok
}

// -----------------------------------------------------------------------------

// close releases the pumps. The send channel is never closed; writers
// race against done instead, so a concurrent broadcast can't panic.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// -----------------------------------------------------------------------------
// readPump - handles incoming frames from the client
// Acts as the watchdog for the connection
// -----------------------------------------------------------------------------

func (c *Client) readPump() {
	defer c.hub.Disconnect(c.ID)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.Logger.Debug("WebSocket error for %s: %v", c.ID, err)
			}
			return
		}
		c.hub.HandleClientMessage(c, frame)
	}
}

// -----------------------------------------------------------------------------
// writePump - sends queued events to the client
// -----------------------------------------------------------------------------

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(payload); err != nil {
				c.hub.Logger.Debug("Write error for %s: %v", c.ID, err)
				c.hub.Disconnect(c.ID)
				return
			}
			c.messagesSent.Add(1)

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.hub.Disconnect(c.ID)
				return
			}
		}
	}
}
