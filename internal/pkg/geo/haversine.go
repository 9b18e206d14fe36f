package geo

import "math"

// EarthRadiusMeters is the fixed mean radius used for all geofence math.
const EarthRadiusMeters = 6371000

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Distance returns the great-circle distance between a and b in meters.
func Distance(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	// cos product first so the result does not depend on argument order
	cosProduct := math.Cos(toRadians(a.Latitude)) * math.Cos(toRadians(b.Latitude))

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + cosProduct*(sinLon*sinLon)
	// rounding can push h just past 1 for antipodal points
	h = math.Min(math.Max(h, 0), 1)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// Offset moves p by the given meters north and east. Used to build fixtures
// at a known distance from an office.
func Offset(p Point, northMeters, eastMeters float64) Point {
	dLat := northMeters / EarthRadiusMeters
	dLon := eastMeters / (EarthRadiusMeters * math.Cos(toRadians(p.Latitude)))

	return Point{
		Latitude:  p.Latitude + dLat*180/math.Pi,
		Longitude: p.Longitude + dLon*180/math.Pi,
	}
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
