package models

import "math"

// -----------------------------------------------------------------------------
// Vessel Categories
// -----------------------------------------------------------------------------

const (
	VesselTypeCargo     = "cargo"
	VesselTypeTanker    = "tanker"
	VesselTypeContainer = "container"
	VesselTypeBulk      = "bulk"
	VesselTypeLNG       = "lng"
	VesselTypePassenger = "passenger"
	VesselTypeFishing   = "fishing"
	VesselTypeMilitary  = "military"
	VesselTypeOther     = "other"
)

// AllVesselTypes is the closed category enumeration.
var AllVesselTypes = []string{
	VesselTypeCargo, VesselTypeTanker, VesselTypeContainer, VesselTypeBulk,
	VesselTypeLNG, VesselTypePassenger, VesselTypeFishing, VesselTypeMilitary,
	VesselTypeOther,
}

// -----------------------------------------------------------------------------
// MVesselPosition
// -----------------------------------------------------------------------------

// MVesselPosition is a single tracked vessel's current state.
// One instance per MMSI; mutated in place on every update.
type MVesselPosition struct {
	MMSI        string  `json:"mmsi"`
	Name        string  `json:"name"`
	VesselType  string  `json:"vessel_type"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	SpeedKnots  float64 `json:"speed_knots"`
	Heading     float64 `json:"heading"`
	Destination string  `json:"destination"`
	FlagISO     string  `json:"flag_iso"`
	LengthM     float64 `json:"length_m"`
	DraughtM    float64 `json:"draught_m"`
	LastUpdate  float64 `json:"last_update"` // unix seconds
}

// Snapshot returns a wire-ready copy with coordinates and speed rounded
// the way the frontend expects them.
func (v *MVesselPosition) Snapshot() MVesselPosition {
	out := *v
	out.Lat = round(v.Lat, 5)
	out.Lon = round(v.Lon, 5)
	out.SpeedKnots = round(v.SpeedKnots, 1)
	out.Heading = round(v.Heading, 1)
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
