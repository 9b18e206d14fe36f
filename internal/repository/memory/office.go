package memory

import (
	"context"
	"sort"

	"github.com/Jevon1999/api-presensi/internal/domain/office"
)

type officeRepository struct {
	store *Store
}

func NewOfficeRepository(store *Store) office.OfficeRepository {
	return &officeRepository{store: store}
}

// GetByID implements office.OfficeRepository.
func (r *officeRepository) GetByID(ctx context.Context, id string) (office.Office, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	o, ok := r.store.offices[id]
	if !ok {
		return office.Office{}, office.ErrOfficeNotFound
	}
	return o, nil
}

// ActiveLocations implements office.OfficeRepository.
func (r *officeRepository) ActiveLocations(ctx context.Context, officeID string) ([]office.Location, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []office.Location
	for _, l := range r.store.locations {
		if l.OfficeID == officeID && l.Active {
			result = append(result, l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
