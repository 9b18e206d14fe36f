package memory

import (
	"context"
	"sort"

	"github.com/Jevon1999/api-presensi/internal/domain/member"
)

type memberRepository struct {
	store *Store
}

func NewMemberRepository(store *Store) member.MemberRepository {
	return &memberRepository{store: store}
}

func (r *memberRepository) withOffice(m member.Member) member.Member {
	if o, ok := r.store.offices[m.OfficeID]; ok {
		m.OfficeName = o.Name
	}
	return m
}

// GetActiveByPhone implements member.MemberRepository.
func (r *memberRepository) GetActiveByPhone(ctx context.Context, phone string) (member.Member, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, m := range r.store.members {
		if m.Phone == phone && m.Active {
			return r.withOffice(m), nil
		}
	}
	return member.Member{}, member.ErrMemberNotFound
}

// GetByID implements member.MemberRepository.
func (r *memberRepository) GetByID(ctx context.Context, id string) (member.Member, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.members[id]
	if !ok {
		return member.Member{}, member.ErrMemberNotFound
	}
	return r.withOffice(m), nil
}

// ListActive implements member.MemberRepository.
func (r *memberRepository) ListActive(ctx context.Context) ([]member.Member, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []member.Member
	for _, m := range r.store.members {
		if m.Active {
			result = append(result, r.withOffice(m))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
