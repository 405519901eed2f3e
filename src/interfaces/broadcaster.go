package interfaces

import "fleet-observer/src/models"

// -----------------------------------------------------------------------------
// IBroadcaster is the capability handed to components that publish events.
// -----------------------------------------------------------------------------

type IBroadcaster interface {

	// Broadcast sends payload to every client subscribed to channel and
	// returns the number of successful deliveries. The payload is stamped
	// with "ts" and "type" keys when absent.
	Broadcast(channel string, payload map[string]interface{}) int

	// -----------------------------------------------------------------------------

	// ClientCount returns the number of connected clients. Publishers may
	// skip producing events while it is zero; that is an optimization,
	// never a correctness requirement.
	ClientCount() int

	// -----------------------------------------------------------------------------

	// Stats returns connection and channel statistics.
	Stats() models.MRegistryStats
}
