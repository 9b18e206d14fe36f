package office

import (
	"time"

	"github.com/Jevon1999/api-presensi/internal/pkg/geo"
	"github.com/shopspring/decimal"
)

type Office struct {
	ID        string
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location is one circular geofence of an office. Coordinates are kept at
// 8 decimal places (NUMERIC(10,8) / NUMERIC(11,8)).
type Location struct {
	ID           string
	OfficeID     string
	Name         string
	Address      string
	Latitude     decimal.Decimal
	Longitude    decimal.Decimal
	RadiusMeters int
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CoordinatePlaces is the persisted precision of latitude and longitude.
const CoordinatePlaces = 8

// Point converts the stored decimals for distance math.
func (l Location) Point() geo.Point {
	return geo.Point{
		Latitude:  l.Latitude.InexactFloat64(),
		Longitude: l.Longitude.InexactFloat64(),
	}
}

// NewLocation rounds raw coordinates to the persisted precision.
func NewLocation(officeID, name string, lat, lon float64, radiusMeters int) Location {
	return Location{
		OfficeID:     officeID,
		Name:         name,
		Latitude:     decimal.NewFromFloat(lat).Round(CoordinatePlaces),
		Longitude:    decimal.NewFromFloat(lon).Round(CoordinatePlaces),
		RadiusMeters: radiusMeters,
		Active:       true,
	}
}
