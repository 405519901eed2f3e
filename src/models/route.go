package models

// MWaypoint is a geographic point on a shipping lane.
type MWaypoint struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// MRoute is a named shipping lane: an ordered chain of at least two
// waypoints. Immutable once loaded.
type MRoute struct {
	Name      string      `json:"name"`
	Waypoints []MWaypoint `json:"waypoints"`
}

// Segments returns the number of waypoint-to-waypoint legs.
func (r *MRoute) Segments() int {
	if len(r.Waypoints) < 2 {
		return 0
	}
	return len(r.Waypoints) - 1
}
