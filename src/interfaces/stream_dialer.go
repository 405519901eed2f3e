package interfaces

import "context"

// -----------------------------------------------------------------------------
// IStreamDialer abstracts the outbound WebSocket used by the live
// ingestor so reconnect logic can be tested without a network.
// -----------------------------------------------------------------------------

type IStreamDialer interface {

	// Dial opens a connection to the upstream stream endpoint.
	Dial(ctx context.Context, url string) (IStreamConn, error)
}

// IStreamConn is one open upstream connection.
type IStreamConn interface {

	// WriteJSON sends one JSON frame (used for the subscribe message).
	WriteJSON(v interface{}) error

	// -----------------------------------------------------------------------------

	// ReadMessage blocks for the next text frame.
	ReadMessage() ([]byte, error)

	// -----------------------------------------------------------------------------

	// Close tears the connection down.
	Close() error
}
