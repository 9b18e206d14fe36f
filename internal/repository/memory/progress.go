package memory

import (
	"context"
	"time"

	"github.com/Jevon1999/api-presensi/internal/domain/progress"
)

type progressRepository struct {
	store *Store
}

func NewProgressRepository(store *Store) progress.ProgressRepository {
	return &progressRepository{store: store}
}

// Create implements progress.ProgressRepository.
func (r *progressRepository) Create(ctx context.Context, p progress.Progress) (progress.Progress, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := newDayKey(p.MemberID, p.Date)
	if _, exists := r.store.progByDay[key]; exists {
		return progress.Progress{}, progress.ErrDuplicateProgress
	}

	now := r.store.now()
	p.ID = newID()
	p.CreatedAt, p.UpdatedAt = now, now
	r.store.progresses[p.ID] = p
	r.store.progByDay[key] = p.ID
	return p, nil
}

// GetByMemberAndDate implements progress.ProgressRepository.
func (r *progressRepository) GetByMemberAndDate(ctx context.Context, memberID string, date time.Time) (*progress.Progress, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.progByDay[newDayKey(memberID, date)]
	if !ok {
		return nil, nil
	}
	p := r.store.progresses[id]
	return &p, nil
}
