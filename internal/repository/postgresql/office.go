package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Jevon1999/api-presensi/internal/domain/office"
	"github.com/Jevon1999/api-presensi/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type officeRepository struct {
	db *database.DB
}

func NewOfficeRepository(db *database.DB) office.OfficeRepository {
	return &officeRepository{db: db}
}

// GetByID implements office.OfficeRepository.
func (r *officeRepository) GetByID(ctx context.Context, id string) (office.Office, error) {
	q := GetQuerier(ctx, r.db)

	var o office.Office
	err := q.QueryRow(ctx, `
		SELECT id, code, name, created_at, updated_at
		FROM offices
		WHERE id = $1
	`, id).Scan(&o.ID, &o.Code, &o.Name, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return office.Office{}, office.ErrOfficeNotFound
		}
		return office.Office{}, fmt.Errorf("failed to get office: %w", err)
	}
	return o, nil
}

// ActiveLocations implements office.OfficeRepository.
// Coordinates are read as text so no precision is lost on the way to decimal.
func (r *officeRepository) ActiveLocations(ctx context.Context, officeID string) ([]office.Location, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, office_id, name, address, latitude::text, longitude::text,
			   radius_meters, is_active, created_at, updated_at
		FROM office_locations
		WHERE office_id = $1 AND is_active
		ORDER BY name ASC
	`, officeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list office locations: %w", err)
	}
	defer rows.Close()

	var result []office.Location
	for rows.Next() {
		var (
			loc      office.Location
			lat, lon string
		)
		if err := rows.Scan(
			&loc.ID, &loc.OfficeID, &loc.Name, &loc.Address, &lat, &lon,
			&loc.RadiusMeters, &loc.Active, &loc.CreatedAt, &loc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan office location: %w", err)
		}
		if loc.Latitude, err = decimal.NewFromString(lat); err != nil {
			return nil, fmt.Errorf("invalid latitude %q for location %s: %w", lat, loc.ID, err)
		}
		if loc.Longitude, err = decimal.NewFromString(lon); err != nil {
			return nil, fmt.Errorf("invalid longitude %q for location %s: %w", lon, loc.ID, err)
		}
		result = append(result, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate office locations: %w", err)
	}
	return result, nil
}
