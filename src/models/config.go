package models

// MConfig Structure
type MConfig struct {
	Name     string         `yaml:"name"`
	Host     string         `yaml:"host"`
	Port     int            `yaml:"port"`
	LogLevel string         `yaml:"log_level"`
	GrpcHost string         `yaml:"grpc_host"`
	GrpcPort int            `yaml:"grpc_port"`
	Storage  MStorageConfig `yaml:"storage"`
	Tracker  MTrackerConfig `yaml:"tracker"`
	Feed     MFeedConfig    `yaml:"feed"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

// MTrackerConfig controls the vessel tracker.
// A non-empty AISStreamAPIKey is the sole switch between live and
// simulated mode.
type MTrackerConfig struct {
	AISStreamAPIKey       string `yaml:"aisstream_api_key"`
	AISStreamURL          string `yaml:"aisstream_url"`
	BroadcastIntervalSecs int    `yaml:"broadcast_interval_seconds"`
	SimTickSeconds        int    `yaml:"sim_tick_seconds"`
	ReconnectDelaySeconds int    `yaml:"reconnect_delay_seconds"`
	DisplayStaleSeconds   int    `yaml:"display_stale_seconds"`
	EvictStaleSeconds     int    `yaml:"evict_stale_seconds"`
	EvictSweepSeconds     int    `yaml:"evict_sweep_seconds"`
	MaxVesselsLive        int    `yaml:"max_vessels_live"`
	MaxVesselsSim         int    `yaml:"max_vessels_sim"`
	SimSeed               int64  `yaml:"sim_seed"`
}

// MFeedConfig controls the simulated live-feed event generator.
type MFeedConfig struct {
	Enabled                  bool    `yaml:"enabled"`
	PortIntervalSeconds      float64 `yaml:"port_interval_seconds"`
	AlertIntervalSeconds     float64 `yaml:"alert_interval_seconds"`
	GeoIntervalSeconds       float64 `yaml:"geo_interval_seconds"`
	HeartbeatIntervalSeconds float64 `yaml:"heartbeat_interval_seconds"`
}
