package transit

import "math"

const earthRadius = 6371000 // meters

// Coordinates is a geographic position in degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// GeoDistance returns the great-circle distance in meters between from and
// to.
func GeoDistance(from Coordinates, to Coordinates) float64 {
	if from == to {
		return 0
	}
	const dr = math.Pi / 180
	cos := math.Sin(from.Lat*dr)*math.Sin(to.Lat*dr) +
		math.Cos(from.Lat*dr)*math.Cos(to.Lat*dr)*math.Cos(math.Abs(from.Lng-to.Lng)*dr)

	// Rounding can push the cosine slightly outside [-1, 1] for very close
	// or antipodal points.
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * earthRadius
}
