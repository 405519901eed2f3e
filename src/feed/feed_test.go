package feed

import (
	"context"
	"sync"
	"testing"
	"time"

	"fleet-observer/src/logger"
	"fleet-observer/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

type captureBroadcaster struct {
	mu      sync.Mutex
	clients int
	calls   []map[string]interface{}
}

func (c *captureBroadcaster) Broadcast(channel string, payload map[string]interface{}) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload["channel"] = channel
	c.calls = append(c.calls, payload)
	return c.clients
}

func (c *captureBroadcaster) ClientCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clients
}

func (c *captureBroadcaster) Stats() models.MRegistryStats {
	return models.MRegistryStats{TotalClients: c.ClientCount()}
}

func (c *captureBroadcaster) onChannel(channel string) []map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []map[string]interface{}
	for _, call := range c.calls {
		if call["channel"] == channel {
			out = append(out, call)
		}
	}
	return out
}

// -----------------------------------------------------------------------------

func feedConfig() *models.MConfig {
	return &models.MConfig{
		Feed: models.MFeedConfig{
			Enabled:                  true,
			PortIntervalSeconds:      0.1,
			AlertIntervalSeconds:     0.1,
			GeoIntervalSeconds:       0.1,
			HeartbeatIntervalSeconds: 0.1,
		},
	}
}

func startFeed(t *testing.T, bc *captureBroadcaster) (*LiveFeedSimulator, func()) {
	t.Helper()
	f := NewLiveFeedSimulator(feedConfig(), logger.NewLogger("ERROR", "feed-test"), bc)

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	require.NoError(t, f.Start(ctx, wg))

	return f, func() {
		f.Stop()
		cancel()
		wg.Wait()
	}
}

// -----------------------------------------------------------------------------

func TestFeedEmitsEventsWithIDsAndDescriptions(t *testing.T) {
	bc := &captureBroadcaster{clients: 1}
	_, stop := startFeed(t, bc)
	defer stop()

	require.Eventually(t, func() bool {
		return len(bc.onChannel("ports")) > 0 &&
			len(bc.onChannel("alerts")) > 0 &&
			len(bc.onChannel("geopolitical")) > 0
	}, 5*time.Second, 50*time.Millisecond)

	port := bc.onChannel("ports")[0]
	assert.Contains(t, port, "event")
	assert.Contains(t, port, "id")
	assert.Contains(t, port, "port_name")
	assert.Contains(t, port, "description")

	alert := bc.onChannel("alerts")[0]
	assert.Equal(t, "alert_triggered", alert["event"])
	assert.Contains(t, alert, "title")
	assert.Contains(t, alert, "severity")

	geo := bc.onChannel("geopolitical")[0]
	assert.Contains(t, geo, "country_iso")
	assert.Contains(t, geo, "lat")
	assert.Contains(t, geo, "lon")
}

func TestFeedHeartbeatIgnoresClientCount(t *testing.T) {
	bc := &captureBroadcaster{clients: 0}
	_, stop := startFeed(t, bc)
	defer stop()

	require.Eventually(t, func() bool {
		return len(bc.onChannel("system")) > 0
	}, 5*time.Second, 50*time.Millisecond)

	hb := bc.onChannel("system")[0]
	assert.Equal(t, "heartbeat", hb["event"])
	assert.Contains(t, hb, "clients")
	assert.Contains(t, hb, "stats")
}

func TestFeedEventLoopsSkipWithNoClients(t *testing.T) {
	bc := &captureBroadcaster{clients: 0}
	_, stop := startFeed(t, bc)
	defer stop()

	time.Sleep(1500 * time.Millisecond)
	assert.Empty(t, bc.onChannel("ports"))
	assert.Empty(t, bc.onChannel("alerts"))
	assert.Empty(t, bc.onChannel("geopolitical"))
}

func TestFeedDoubleStartAndStop(t *testing.T) {
	bc := &captureBroadcaster{clients: 0}
	f, stop := startFeed(t, bc)

	assert.Error(t, f.Start(context.Background(), &sync.WaitGroup{}))
	stop()
	assert.Error(t, f.Stop())
}

// -----------------------------------------------------------------------------

func TestRound1(t *testing.T) {
	assert.Equal(t, 1.5, round1(1.45))
	assert.Equal(t, -1.5, round1(-1.45))
	assert.Equal(t, 3.0, round1(2.999))
}
