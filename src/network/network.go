package network

import (
	"context"
	"net/http"
	"time"

	"fleet-observer/src/interfaces"
	"fleet-observer/src/logger"

	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------

// StreamDialer opens outbound WebSocket connections for live data
// sources. It wraps gorilla's dialer with a handshake timeout so a dead
// upstream cannot hang the reconnect loop.
type StreamDialer struct {
	Dialer *websocket.Dialer
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewStreamDialer(log *logger.Logger) *StreamDialer {
	return &StreamDialer{
		Dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: 30 * time.Second,
		},
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

func (d *StreamDialer) Dial(ctx context.Context, url string) (interfaces.IStreamConn, error) {
	conn, _, err := d.Dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &streamConn{conn: conn}, nil
}

// -----------------------------------------------------------------------------

type streamConn struct {
	conn *websocket.Conn
}

func (c *streamConn) WriteJSON(v interface{}) error {
	return c.conn.WriteJSON(v)
}

func (c *streamConn) ReadMessage() ([]byte, error) {
	_, payload, err := c.conn.ReadMessage()
	return payload, err
}

func (c *streamConn) Close() error {
	return c.conn.Close()
}
