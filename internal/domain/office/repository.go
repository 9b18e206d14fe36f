package office

import "context"

type OfficeRepository interface {
	GetByID(ctx context.Context, id string) (Office, error)

	// ActiveLocations returns the office's active geofences, possibly none
	ActiveLocations(ctx context.Context, officeID string) ([]Location, error)
}
