package models

// -----------------------------------------------------------------------------
// Vessel Updates (source -> tracker)
// -----------------------------------------------------------------------------

// UpdateKind says which fields of a vessel update are meaningful.
type UpdateKind int

const (
	// UpdateFull carries a complete vessel state (simulator ticks).
	UpdateFull UpdateKind = iota
	// UpdatePosition carries position, speed and heading from a live
	// position report.
	UpdatePosition
	// UpdateStatic carries name, destination, dimensions and category
	// from a live static-metadata report.
	UpdateStatic
)

// MVesselUpdate is one normalized report emitted by a vessel source.
// The tracker merges it into the canonical registry according to Kind.
type MVesselUpdate struct {
	Kind   UpdateKind
	Vessel MVesselPosition
}
