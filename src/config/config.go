package config

import (
	"fmt"
	"os"

	"fleet-observer/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from a YAML file.
// The AISSTREAM_API_KEY environment variable, when set, overrides the
// tracker credential from the file; its presence is what switches the
// tracker into live mode.
func NewConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	if key := os.Getenv("AISSTREAM_API_KEY"); key != "" {
		modelConfig.Tracker.AISStreamAPIKey = key
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// applyDefaults fills in the tracker/feed timings left out of the file.
func (c *Config) applyDefaults() {
	t := &c.Tracker
	if t.AISStreamURL == "" {
		t.AISStreamURL = "wss://stream.aisstream.io/v0/stream"
	}
	if t.BroadcastIntervalSecs <= 0 {
		t.BroadcastIntervalSecs = 3
	}
	if t.SimTickSeconds <= 0 {
		t.SimTickSeconds = 2
	}
	if t.ReconnectDelaySeconds <= 0 {
		t.ReconnectDelaySeconds = 10
	}
	if t.DisplayStaleSeconds <= 0 {
		t.DisplayStaleSeconds = 300
	}
	if t.EvictStaleSeconds <= 0 {
		t.EvictStaleSeconds = 600
	}
	if t.EvictSweepSeconds <= 0 {
		t.EvictSweepSeconds = 60
	}
	if t.MaxVesselsLive <= 0 {
		t.MaxVesselsLive = 200
	}
	if t.MaxVesselsSim <= 0 {
		t.MaxVesselsSim = 200
	}

	f := &c.Feed
	if f.PortIntervalSeconds <= 0 {
		f.PortIntervalSeconds = 5
	}
	if f.AlertIntervalSeconds <= 0 {
		f.AlertIntervalSeconds = 12
	}
	if f.GeoIntervalSeconds <= 0 {
		f.GeoIntervalSeconds = 8
	}
	if f.HeartbeatIntervalSeconds <= 0 {
		f.HeartbeatIntervalSeconds = 15
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	if c.Storage.DBType == "" {
		return fmt.Errorf("database type cannot be empty")
	}
	switch c.Storage.DBType {
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("connection string cannot be empty for postgres")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Storage.DBType)
	}

	t := c.Tracker
	if t.DisplayStaleSeconds >= t.EvictStaleSeconds {
		return fmt.Errorf("display_stale_seconds (%d) must be below evict_stale_seconds (%d)",
			t.DisplayStaleSeconds, t.EvictStaleSeconds)
	}

	return nil
}

// -----------------------------------------------------------------------------

// IsLive reports whether the tracker should run against the live AIS
// stream. A non-empty credential is the sole switch.
func (c *Config) IsLive() bool {
	return c.Tracker.AISStreamAPIKey != ""
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
