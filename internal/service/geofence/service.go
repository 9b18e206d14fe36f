package geofence

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/Jevon1999/api-presensi/internal/domain/office"
	"github.com/Jevon1999/api-presensi/internal/pkg/geo"
)

// Decision is the outcome of a geofence check. NearestMeters is for
// diagnostics only and must not be shown to end users.
type Decision struct {
	Admitted        bool
	Ungated         bool
	NearestMeters   float64
	NearestLocation string
}

// Evaluate admits p when it lies within the radius of any active location.
// With no active location the office is ungated and every point is admitted.
func Evaluate(p geo.Point, locations []office.Location) Decision {
	decision := Decision{NearestMeters: math.Inf(1)}
	checked := 0

	for _, loc := range locations {
		if !loc.Active {
			continue
		}
		checked++

		d := geo.Distance(p, loc.Point())
		if d < decision.NearestMeters {
			decision.NearestMeters = d
			decision.NearestLocation = loc.ID
		}
		if d <= float64(loc.RadiusMeters) {
			decision.Admitted = true
		}
	}

	if checked == 0 {
		return Decision{Admitted: true, Ungated: true}
	}
	return decision
}

// Service checks coordinates against an office's registered geofences.
type Service interface {
	Admits(ctx context.Context, lat, lon float64, officeID string) (Decision, error)
}

type GeofenceServiceImpl struct {
	office.OfficeRepository
}

func NewGeofenceService(officeRepo office.OfficeRepository) Service {
	return &GeofenceServiceImpl{OfficeRepository: officeRepo}
}

// Admits implements Service.
func (s *GeofenceServiceImpl) Admits(ctx context.Context, lat, lon float64, officeID string) (Decision, error) {
	locations, err := s.OfficeRepository.ActiveLocations(ctx, officeID)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to get office locations: %w", err)
	}

	decision := Evaluate(geo.Point{Latitude: lat, Longitude: lon}, locations)
	if decision.Ungated {
		// Offices still being provisioned have no geofence yet.
		slog.Info("geofence ungated", "office_id", officeID)
	}
	return decision, nil
}
