package models

// MRegistryStats is the out-of-band status of the connection registry.
type MRegistryStats struct {
	TotalClients      int            `json:"total_clients"`
	Channels          map[string]int `json:"channels"`
	TotalMessagesSent int64          `json:"total_messages_sent"`
}

// MTrackerStats summarizes the vessel tracker.
type MTrackerStats struct {
	Mode         string         `json:"mode"` // "live" or "simulated"
	TotalVessels int            `json:"total_vessels"`
	ByType       map[string]int `json:"by_type"`
	RoutesActive int            `json:"routes_active"`
}
