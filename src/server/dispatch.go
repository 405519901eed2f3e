package server

import (
	"fmt"

	"fleet-observer/src/models"
)

// -----------------------------------------------------------------------------
// Command Dispatcher
// -----------------------------------------------------------------------------

// HandleClientMessage decodes one client frame and applies it against the
// registry. Protocol errors answer with a typed error event and leave the
// connection open.
func (h *Hub) HandleClientMessage(client *Client, frame []byte) {
	cmd, err := models.DecodeClientCommand(frame)
	if err != nil {
		h.SendTo(client.ID, map[string]interface{}{
			"type":    "error",
			"message": "Invalid JSON",
		})
		return
	}

	switch cmd.Action {
	case models.ActionSubscribe:
		current := h.Subscribe(client.ID, cmd.Channels)
		h.SendTo(client.ID, map[string]interface{}{
			"type":     SystemChannel,
			"event":    "subscribed",
			"channels": current,
		})

	case models.ActionUnsubscribe:
		current := h.Unsubscribe(client.ID, cmd.Channels)
		h.SendTo(client.ID, map[string]interface{}{
			"type":     SystemChannel,
			"event":    "unsubscribed",
			"channels": current,
		})

	case models.ActionPing:
		h.SendTo(client.ID, map[string]interface{}{
			"type":  SystemChannel,
			"event": "pong",
		})

	default:
		h.SendTo(client.ID, map[string]interface{}{
			"type":    "error",
			"message": fmt.Sprintf("Unknown action: %s", cmd.Raw),
		})
	}
}
