package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func TestDecodeClientCommand(t *testing.T) {
	cmd, err := DecodeClientCommand([]byte(`{"action":"subscribe","channels":["vessels","ports"]}`))
	require.NoError(t, err)
	assert.Equal(t, ActionSubscribe, cmd.Action)
	assert.Equal(t, []string{"vessels", "ports"}, cmd.Channels)

	cmd, err = DecodeClientCommand([]byte(`{"action":"ping"}`))
	require.NoError(t, err)
	assert.Equal(t, ActionPing, cmd.Action)
	assert.Empty(t, cmd.Channels)
}

func TestDecodeClientCommandUnknownActionPreservesRaw(t *testing.T) {
	cmd, err := DecodeClientCommand([]byte(`{"action":"teleport","channels":["x"]}`))
	require.NoError(t, err, "unknown actions are not a decode error")
	assert.Equal(t, ActionUnknown, cmd.Action)
	assert.Equal(t, "teleport", cmd.Raw)
}

func TestDecodeClientCommandInvalidJSON(t *testing.T) {
	_, err := DecodeClientCommand([]byte(`{action: nope`))
	assert.Error(t, err)
}

// -----------------------------------------------------------------------------

func TestVesselSnapshotRounding(t *testing.T) {
	v := MVesselPosition{
		MMSI:       "366123456",
		Lat:        33.123456789,
		Lon:        -118.987654321,
		SpeedKnots: 14.2345,
		Heading:    87.56,
	}

	s := v.Snapshot()
	assert.Equal(t, 33.12346, s.Lat)
	assert.Equal(t, -118.98765, s.Lon)
	assert.Equal(t, 14.2, s.SpeedKnots)
	assert.Equal(t, 87.6, s.Heading)

	// Original is untouched
	assert.Equal(t, 33.123456789, v.Lat)
}

// -----------------------------------------------------------------------------

func TestRouteSegments(t *testing.T) {
	r := MRoute{Name: "x", Waypoints: []MWaypoint{{0, 0}, {0, 1}, {1, 1}}}
	assert.Equal(t, 2, r.Segments())

	empty := MRoute{Name: "y"}
	assert.Equal(t, 0, empty.Segments())
}
