package server

import (
	"sort"
	"sync"
	"time"

	"fleet-observer/src/logger"
	"fleet-observer/src/models"
	"fleet-observer/src/utils"

	"github.com/google/uuid"
)

// historyCapacity bounds the replayable event buffer.
const historyCapacity = 200

// -----------------------------------------------------------------------------
// Channels
// -----------------------------------------------------------------------------

// SystemChannel is subscribed on connect and can never be removed.
const SystemChannel = "system"

// AllChannels is the fixed channel enumeration. Subscribe requests for
// names outside this set are silently ignored.
var AllChannels = map[string]struct{}{
	"trade":        {},
	"ports":        {},
	"alerts":       {},
	"geopolitical": {},
	"vessels":      {},
	SystemChannel:  {},
}

// -----------------------------------------------------------------------------
// Hub (connection registry)
// -----------------------------------------------------------------------------

// Hub owns every live client session and its channel subscriptions.
// Callers never touch the underlying maps; all access goes through the
// operations below. Invariant: a session id is in channelSubs[ch] exactly
// when ch is in that session's channel set.
type Hub struct {
	Logger  *logger.Logger
	History *utils.EventRing

	mu          sync.RWMutex
	clients     map[string]*Client
	channelSubs map[string]map[string]struct{}
}

// -----------------------------------------------------------------------------

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		Logger:      log,
		History:     utils.NewEventRing(historyCapacity),
		clients:     make(map[string]*Client),
		channelSubs: make(map[string]map[string]struct{}),
	}
}

// -----------------------------------------------------------------------------
// Connect / Disconnect
// -----------------------------------------------------------------------------

// Connect registers a new session for conn, seeds its subscriptions with
// the system channel, starts its pumps and sends the welcome event.
func (h *Hub) Connect(conn wsConn) *Client {
	client := newClient(uuid.NewString(), conn, h)

	h.mu.Lock()
	h.clients[client.ID] = client
	if h.channelSubs[SystemChannel] == nil {
		h.channelSubs[SystemChannel] = make(map[string]struct{})
	}
	h.channelSubs[SystemChannel][client.ID] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	h.Logger.Info("WS connected: %s (total: %d)", client.ID, total)

	go client.writePump()
	go client.readPump()

	h.SendTo(client.ID, map[string]interface{}{
		"type":      SystemChannel,
		"event":     "connected",
		"client_id": client.ID,
		"channels":  client.Channels(),
		"ts":        nowUnix(),
	})
	return client
}

// -----------------------------------------------------------------------------

// Disconnect removes the session from every channel's subscriber set and
// from the registry. Safe to call more than once.
func (h *Hub) Disconnect(sessionID string) {
	h.mu.Lock()
	client, ok := h.clients[sessionID]
	if !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, sessionID)
	for ch, subs := range h.channelSubs {
		delete(subs, sessionID)
		if len(subs) == 0 {
			delete(h.channelSubs, ch)
		}
	}
	total := len(h.clients)
	h.mu.Unlock()

	client.close()
	h.Logger.Info("WS disconnected: %s (total: %d)", sessionID, total)
}

// -----------------------------------------------------------------------------
// Subscriptions
// -----------------------------------------------------------------------------

// Subscribe adds each known channel name to the session and returns the
// resulting full subscription set. Unknown names are not an error.
func (h *Hub) Subscribe(sessionID string, channels []string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[sessionID]
	if !ok {
		return nil
	}
	for _, ch := range channels {
		if _, known := AllChannels[ch]; !known {
			continue
		}
		client.addChannel(ch)
		if h.channelSubs[ch] == nil {
			h.channelSubs[ch] = make(map[string]struct{})
		}
		h.channelSubs[ch][sessionID] = struct{}{}
	}
	return client.Channels()
}

// -----------------------------------------------------------------------------

// Unsubscribe removes the requested channels except the system channel,
// which is permanent.
func (h *Hub) Unsubscribe(sessionID string, channels []string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[sessionID]
	if !ok {
		return nil
	}
	for _, ch := range channels {
		if ch == SystemChannel {
			continue
		}
		client.removeChannel(ch)
		if subs, exists := h.channelSubs[ch]; exists {
			delete(subs, sessionID)
			if len(subs) == 0 {
				delete(h.channelSubs, ch)
			}
		}
	}
	return client.Channels()
}

// -----------------------------------------------------------------------------
// Broadcasting
// -----------------------------------------------------------------------------

// Broadcast sends payload to every subscriber of channel and returns the
// number of successful deliveries. A failed delivery disconnects that one
// subscriber and never aborts delivery to the rest.
func (h *Hub) Broadcast(channel string, payload map[string]interface{}) int {
	if _, ok := payload["ts"]; !ok {
		payload["ts"] = nowUnix()
	}
	if _, ok := payload["type"]; !ok {
		payload["type"] = channel
	}

	// Keep a replayable history of discrete events. Vessel snapshots are
	// re-sent every interval anyway, so they are not recorded.
	if channel != "vessels" {
		event := make(map[string]interface{}, len(payload)+1)
		for k, v := range payload {
			event[k] = v
		}
		event["channel"] = channel
		h.History.Append(event)
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.channelSubs[channel]))
	for id := range h.channelSubs[channel] {
		if c, ok := h.clients[id]; ok {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range targets {
		if h.deliver(c, payload) {
			sent++
		}
	}
	return sent
}

// -----------------------------------------------------------------------------

// SendTo delivers payload to a single session.
func (h *Hub) SendTo(sessionID string, payload map[string]interface{}) bool {
	if _, ok := payload["ts"]; !ok {
		payload["ts"] = nowUnix()
	}

	h.mu.RLock()
	client, ok := h.clients[sessionID]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	return h.deliver(client, payload)
}

// -----------------------------------------------------------------------------

// deliver enqueues payload for the client's write pump. A full send
// buffer is the transport failure this component recognizes: fatal for
// that session, never for the registry.
func (h *Hub) deliver(c *Client, payload map[string]interface{}) bool {
	select {
	case <-c.done:
		return false
	case c.send <- payload:
		return true
	default:
		h.Logger.Debug("Send failed for %s, disconnecting", c.ID)
		h.Disconnect(c.ID)
		return false
	}
}

// -----------------------------------------------------------------------------
// Stats
// -----------------------------------------------------------------------------

// ClientCount returns the number of live sessions.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// -----------------------------------------------------------------------------

// Stats returns connection, channel and delivery statistics.
func (h *Hub) Stats() models.MRegistryStats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	channels := make(map[string]int, len(h.channelSubs))
	for ch, subs := range h.channelSubs {
		if len(subs) > 0 {
			channels[ch] = len(subs)
		}
	}

	var totalSent int64
	for _, c := range h.clients {
		totalSent += c.messagesSent.Load()
	}

	return models.MRegistryStats{
		TotalClients:      len(h.clients),
		Channels:          channels,
		TotalMessagesSent: totalSent,
	}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func nowUnix() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

func sortedChannels(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for ch := range set {
		out = append(out, ch)
	}
	sort.Strings(out)
	return out
}
