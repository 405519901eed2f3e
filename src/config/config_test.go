package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

const minimalYAML = `
name: fleet-observer
host: 127.0.0.1
port: 8000
log_level: INFO
storage:
  db_type: sqlite
  db_path: test.db
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// -----------------------------------------------------------------------------

func TestNewConfigAppliesDefaults(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "wss://stream.aisstream.io/v0/stream", cfg.Tracker.AISStreamURL)
	assert.Equal(t, 3, cfg.Tracker.BroadcastIntervalSecs)
	assert.Equal(t, 2, cfg.Tracker.SimTickSeconds)
	assert.Equal(t, 10, cfg.Tracker.ReconnectDelaySeconds)
	assert.Equal(t, 300, cfg.Tracker.DisplayStaleSeconds)
	assert.Equal(t, 600, cfg.Tracker.EvictStaleSeconds)
	assert.Equal(t, 60, cfg.Tracker.EvictSweepSeconds)
	assert.Equal(t, 200, cfg.Tracker.MaxVesselsLive)
	assert.Equal(t, 200, cfg.Tracker.MaxVesselsSim)
	assert.Equal(t, 5.0, cfg.Feed.PortIntervalSeconds)
	assert.Equal(t, 15.0, cfg.Feed.HeartbeatIntervalSeconds)
}

func TestNewConfigExplicitValuesSurviveDefaults(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, minimalYAML+`
tracker:
  broadcast_interval_seconds: 7
  max_vessels_live: 50
`))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Tracker.BroadcastIntervalSecs)
	assert.Equal(t, 50, cfg.Tracker.MaxVesselsLive)
	assert.Equal(t, 200, cfg.Tracker.MaxVesselsSim, "untouched fields still defaulted")
}

// -----------------------------------------------------------------------------

func TestEnvCredentialOverridesFileAndEnablesLiveMode(t *testing.T) {
	t.Setenv("AISSTREAM_API_KEY", "env-key")

	cfg, err := NewConfig(writeConfig(t, minimalYAML+`
tracker:
  aisstream_api_key: file-key
`))
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Tracker.AISStreamAPIKey)
	assert.True(t, cfg.IsLive())
}

func TestNoCredentialMeansSimulatedMode(t *testing.T) {
	t.Setenv("AISSTREAM_API_KEY", "")
	cfg, err := NewConfig(writeConfig(t, minimalYAML))
	require.NoError(t, err)
	assert.False(t, cfg.IsLive())
}

// -----------------------------------------------------------------------------

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing name", `
host: 127.0.0.1
port: 8000
storage: {db_type: sqlite, db_path: x.db}
`},
		{"privileged port", `
name: x
host: 127.0.0.1
port: 80
storage: {db_type: sqlite, db_path: x.db}
`},
		{"sqlite without path", `
name: x
host: 127.0.0.1
port: 8000
storage: {db_type: sqlite}
`},
		{"postgres without dsn", `
name: x
host: 127.0.0.1
port: 8000
storage: {db_type: postgres}
`},
		{"unknown db type", `
name: x
host: 127.0.0.1
port: 8000
storage: {db_type: mongodb, db_path: x.db}
`},
		{"display cutoff above eviction cutoff", `
name: x
host: 127.0.0.1
port: 8000
storage: {db_type: sqlite, db_path: x.db}
tracker:
  display_stale_seconds: 900
  evict_stale_seconds: 600
`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewConfig(writeConfig(t, c.yaml))
			assert.Error(t, err)
		})
	}
}

// -----------------------------------------------------------------------------

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, cfg.Save(out))

	reloaded, err := NewConfig(out)
	require.NoError(t, err)
	assert.Equal(t, cfg.Name, reloaded.Name)
	assert.Equal(t, cfg.Tracker, reloaded.Tracker)
}
