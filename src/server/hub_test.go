package server

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"fleet-observer/src/logger"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// Mock Connection
// -----------------------------------------------------------------------------

// mockConn is an in-memory wsConn. ReadMessage blocks until a frame is
// pushed via push() or the conn is closed, mirroring a real socket.
type mockConn struct {
	mu     frameLog
	block  chan struct{} // non-nil: WriteJSON blocks until closed
	in     chan []byte
	closed chan struct{}
	once   sync.Once
}

type frameLog struct {
	sync.Mutex
	frames []map[string]interface{}
}

func newMockConn() *mockConn {
	return &mockConn{
		in:     make(chan []byte, 8),
		closed: make(chan struct{}),
	}
}

func (c *mockConn) WriteJSON(v interface{}) error {
	if c.block != nil {
		select {
		case <-c.block:
		case <-c.closed:
			return errors.New("closed")
		}
	}
	if m, ok := v.(map[string]interface{}); ok {
		c.mu.Lock()
		c.mu.frames = append(c.mu.frames, m)
		c.mu.Unlock()
	}
	return nil
}

func (c *mockConn) WriteMessage(messageType int, data []byte) error { return nil }

func (c *mockConn) ReadMessage() (int, []byte, error) {
	select {
	case frame := <-c.in:
		return websocket.TextMessage, frame, nil
	case <-c.closed:
		return 0, nil, errors.New("use of closed connection")
	}
}

func (c *mockConn) SetReadLimit(limit int64)            {}
func (c *mockConn) SetReadDeadline(t time.Time) error   { return nil }
func (c *mockConn) SetWriteDeadline(t time.Time) error  { return nil }
func (c *mockConn) SetPongHandler(h func(string) error) {}

func (c *mockConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *mockConn) sentFrames() []map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]map[string]interface{}, len(c.mu.frames))
	copy(out, c.mu.frames)
	return out
}

// frameWith returns the first sent frame matching key=value, or nil.
func (c *mockConn) frameWith(key string, value interface{}) map[string]interface{} {
	for _, f := range c.sentFrames() {
		if f[key] == value {
			return f
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	return NewHub(logger.NewLogger("ERROR", "test"))
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond, msg)
}

// -----------------------------------------------------------------------------
// Connect / Welcome
// -----------------------------------------------------------------------------

func TestConnectSendsWelcomeAndSeedsSystemChannel(t *testing.T) {
	h := newTestHub(t)
	conn := newMockConn()

	client := h.Connect(conn)
	require.NotEmpty(t, client.ID)
	assert.Equal(t, 1, h.ClientCount())

	waitFor(t, func() bool { return conn.frameWith("event", "connected") != nil }, "welcome frame")

	welcome := conn.frameWith("event", "connected")
	assert.Equal(t, "system", welcome["type"])
	assert.Equal(t, client.ID, welcome["client_id"])
	assert.Contains(t, welcome, "ts")
	assert.Equal(t, []string{"system"}, client.Channels())

	h.Disconnect(client.ID)
}

// -----------------------------------------------------------------------------
// Subscribe / Unsubscribe
// -----------------------------------------------------------------------------

func TestSubscribeKeepsRegistryAndSessionInSync(t *testing.T) {
	h := newTestHub(t)
	conn := newMockConn()
	client := h.Connect(conn)
	defer h.Disconnect(client.ID)

	got := h.Subscribe(client.ID, []string{"vessels", "ports"})
	assert.Equal(t, []string{"ports", "system", "vessels"}, got)

	// Both sides of the membership must agree
	h.mu.RLock()
	_, inVessels := h.channelSubs["vessels"][client.ID]
	_, inPorts := h.channelSubs["ports"][client.ID]
	h.mu.RUnlock()
	assert.True(t, inVessels)
	assert.True(t, inPorts)
	assert.True(t, client.hasChannel("vessels"))
	assert.True(t, client.hasChannel("ports"))
}

func TestSubscribeIgnoresUnknownChannels(t *testing.T) {
	h := newTestHub(t)
	conn := newMockConn()
	client := h.Connect(conn)
	defer h.Disconnect(client.ID)

	got := h.Subscribe(client.ID, []string{"nonsense", "vessels"})
	assert.Equal(t, []string{"system", "vessels"}, got)
	assert.False(t, client.hasChannel("nonsense"))
}

func TestSubscribeIsIdempotent(t *testing.T) {
	h := newTestHub(t)
	conn := newMockConn()
	client := h.Connect(conn)
	defer h.Disconnect(client.ID)

	h.Subscribe(client.ID, []string{"alerts"})
	got := h.Subscribe(client.ID, []string{"alerts"})
	assert.Equal(t, []string{"alerts", "system"}, got)

	h.mu.RLock()
	n := len(h.channelSubs["alerts"])
	h.mu.RUnlock()
	assert.Equal(t, 1, n)
}

func TestUnsubscribeCannotRemoveSystemChannel(t *testing.T) {
	h := newTestHub(t)
	conn := newMockConn()
	client := h.Connect(conn)
	defer h.Disconnect(client.ID)

	h.Subscribe(client.ID, []string{"vessels"})
	got := h.Unsubscribe(client.ID, []string{"vessels", "system"})
	assert.Equal(t, []string{"system"}, got)
	assert.True(t, client.hasChannel("system"))
}

// -----------------------------------------------------------------------------
// Broadcast
// -----------------------------------------------------------------------------

func TestBroadcastReachesOnlySubscribers(t *testing.T) {
	h := newTestHub(t)

	subConn := newMockConn()
	sub := h.Connect(subConn)
	defer h.Disconnect(sub.ID)
	h.Subscribe(sub.ID, []string{"alerts"})

	otherConn := newMockConn()
	other := h.Connect(otherConn)
	defer h.Disconnect(other.ID)

	sent := h.Broadcast("alerts", map[string]interface{}{"event": "alert_triggered"})
	assert.Equal(t, 1, sent)

	waitFor(t, func() bool { return subConn.frameWith("event", "alert_triggered") != nil }, "subscriber frame")
	assert.Nil(t, otherConn.frameWith("event", "alert_triggered"))
}

func TestBroadcastStampsTimestampAndType(t *testing.T) {
	h := newTestHub(t)
	conn := newMockConn()
	client := h.Connect(conn)
	defer h.Disconnect(client.ID)
	h.Subscribe(client.ID, []string{"ports"})

	h.Broadcast("ports", map[string]interface{}{"event": "vessel_arrival"})

	waitFor(t, func() bool { return conn.frameWith("event", "vessel_arrival") != nil }, "ports frame")
	frame := conn.frameWith("event", "vessel_arrival")
	assert.Equal(t, "ports", frame["type"])
	assert.Contains(t, frame, "ts")

	// An explicit type is preserved
	h.Broadcast("ports", map[string]interface{}{"event": "custom", "type": "vessel_positions"})
	waitFor(t, func() bool { return conn.frameWith("event", "custom") != nil }, "typed frame")
	assert.Equal(t, "vessel_positions", conn.frameWith("event", "custom")["type"])
}

// A subscriber whose transport is wedged gets disconnected without
// affecting delivery to healthy subscribers.
func TestBroadcastIsolatesStuckSubscriber(t *testing.T) {
	h := newTestHub(t)

	stuckConn := newMockConn()
	stuckConn.block = make(chan struct{})
	stuck := h.Connect(stuckConn)

	healthyConn := newMockConn()
	healthy := h.Connect(healthyConn)
	defer h.Disconnect(healthy.ID)

	h.Subscribe(stuck.ID, []string{"alerts"})
	h.Subscribe(healthy.ID, []string{"alerts"})

	// Overflow the stuck session's send buffer; its write pump is
	// blocked inside WriteJSON and drains nothing.
	for i := 0; i < sendBufferSize+2; i++ {
		h.Broadcast("alerts", map[string]interface{}{"event": fmt.Sprintf("e%d", i)})
	}

	waitFor(t, func() bool { return h.ClientCount() == 1 }, "stuck client evicted")

	// Healthy subscriber still receives everything afterwards
	sent := h.Broadcast("alerts", map[string]interface{}{"event": "after"})
	assert.Equal(t, 1, sent)
	waitFor(t, func() bool { return healthyConn.frameWith("event", "after") != nil }, "healthy frame")

	close(stuckConn.block)
}

// -----------------------------------------------------------------------------
// Disconnect
// -----------------------------------------------------------------------------

func TestDisconnectRemovesAllSubscriptionsAndIsIdempotent(t *testing.T) {
	h := newTestHub(t)
	conn := newMockConn()
	client := h.Connect(conn)
	h.Subscribe(client.ID, []string{"vessels", "alerts", "geopolitical"})

	h.Disconnect(client.ID)
	h.Disconnect(client.ID) // second call is a no-op

	assert.Equal(t, 0, h.ClientCount())
	h.mu.RLock()
	for ch, subs := range h.channelSubs {
		_, present := subs[client.ID]
		assert.False(t, present, "still subscribed to %s", ch)
	}
	h.mu.RUnlock()

	// Broadcast to a channel it was on finds nobody
	assert.Equal(t, 0, h.Broadcast("vessels", map[string]interface{}{"event": "x"}))
}

// -----------------------------------------------------------------------------
// Stats
// -----------------------------------------------------------------------------

func TestStatsCountsClientsAndChannels(t *testing.T) {
	h := newTestHub(t)

	a := h.Connect(newMockConn())
	b := h.Connect(newMockConn())
	defer h.Disconnect(a.ID)
	defer h.Disconnect(b.ID)

	h.Subscribe(a.ID, []string{"vessels"})
	h.Subscribe(b.ID, []string{"vessels", "ports"})

	stats := h.Stats()
	assert.Equal(t, 2, stats.TotalClients)
	assert.Equal(t, 2, stats.Channels["vessels"])
	assert.Equal(t, 1, stats.Channels["ports"])
	assert.Equal(t, 2, stats.Channels["system"])
	_, hasAlerts := stats.Channels["alerts"]
	assert.False(t, hasAlerts, "empty channels are omitted")
}

// -----------------------------------------------------------------------------
// Event History
// -----------------------------------------------------------------------------

func TestBroadcastRecordsHistoryExceptVessels(t *testing.T) {
	h := newTestHub(t)

	h.Broadcast("alerts", map[string]interface{}{"event": "alert_triggered"})
	h.Broadcast("vessels", map[string]interface{}{"event": "positions"})

	events := h.History.GetAll()
	require.Len(t, events, 1)
	assert.Equal(t, "alerts", events[0]["channel"])
	assert.Equal(t, "alert_triggered", events[0]["event"])
}
