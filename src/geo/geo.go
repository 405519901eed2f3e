package geo

import "math"

// EarthRadiusNM is the mean Earth radius in nautical miles.
const EarthRadiusNM = 3440.065

// -----------------------------------------------------------------------------

// HaversineNM returns the great-circle distance between two points in
// nautical miles.
func HaversineNM(lat1, lon1, lat2, lon2 float64) float64 {
	dlat := toRadians(lat2 - lat1)
	dlon := toRadians(lon2 - lon1)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dlon/2)*math.Sin(dlon/2)

	return 2 * EarthRadiusNM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// -----------------------------------------------------------------------------

// InitialBearing returns the initial great-circle bearing from point 1 to
// point 2, in degrees clockwise from true north, normalized to [0, 360).
func InitialBearing(lat1, lon1, lat2, lon2 float64) float64 {
	dlon := toRadians(lon2 - lon1)
	lat1r := toRadians(lat1)
	lat2r := toRadians(lat2)

	x := math.Sin(dlon) * math.Cos(lat2r)
	y := math.Cos(lat1r)*math.Sin(lat2r) -
		math.Sin(lat1r)*math.Cos(lat2r)*math.Cos(dlon)

	return NormalizeHeading(toDegrees(math.Atan2(x, y)))
}

// -----------------------------------------------------------------------------

// NormalizeHeading wraps a heading in degrees into [0, 360).
func NormalizeHeading(deg float64) float64 {
	h := math.Mod(deg, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// -----------------------------------------------------------------------------

// ValidCoordinates reports whether lat/lon fall inside geographic bounds.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// -----------------------------------------------------------------------------

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }
