package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Jevon1999/api-presensi/internal/domain/attendance"
	"github.com/Jevon1999/api-presensi/internal/domain/member"
	"github.com/Jevon1999/api-presensi/internal/domain/office"
	"github.com/Jevon1999/api-presensi/internal/domain/progress"
	"github.com/Jevon1999/api-presensi/internal/domain/user"
	"github.com/Jevon1999/api-presensi/internal/pkg/database"
	"github.com/google/uuid"
)

// dayKey enforces the one-row-per-member-per-date rule.
type dayKey struct {
	memberID string
	date     string
}

func newDayKey(memberID string, date time.Time) dayKey {
	return dayKey{memberID: memberID, date: date.Format("2006-01-02")}
}

// Store is a process-local backend used by STORAGE_DRIVER=memory and by
// tests. It enforces the same uniqueness rules as the SQL schema.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	offices     map[string]office.Office
	locations   map[string]office.Location
	members     map[string]member.Member
	attendances map[string]attendance.Attendance
	attendByDay map[dayKey]string
	resetLogs   []attendance.ResetLog
	progresses  map[string]progress.Progress
	progByDay   map[dayKey]string
	users       map[string]user.User

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		offices:     make(map[string]office.Office),
		locations:   make(map[string]office.Location),
		members:     make(map[string]member.Member),
		attendances: make(map[string]attendance.Attendance),
		attendByDay: make(map[dayKey]string),
		progresses:  make(map[string]progress.Progress),
		progByDay:   make(map[dayKey]string),
		users:       make(map[string]user.User),
		now:         time.Now,
	}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Seed loads reference data. Records without an ID get one.
func (s *Store) Seed(offices []office.Office, locations []office.Location, members []member.Member, users []user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, o := range offices {
		if o.ID == "" {
			o.ID = newID()
		}
		o.CreatedAt, o.UpdatedAt = now, now
		s.offices[o.ID] = o
	}
	for _, l := range locations {
		if l.ID == "" {
			l.ID = newID()
		}
		l.CreatedAt, l.UpdatedAt = now, now
		s.locations[l.ID] = l
	}
	for _, m := range members {
		if m.ID == "" {
			m.ID = newID()
		}
		m.CreatedAt, m.UpdatedAt = now, now
		s.members[m.ID] = m
	}
	for _, u := range users {
		if u.ID == "" {
			u.ID = newID()
		}
		u.CreatedAt, u.UpdatedAt = now, now
		s.users[u.ID] = u
	}
}

// AttendanceCount is a test helper.
func (s *Store) AttendanceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.attendances)
}

// ResetLogCount is a test helper.
func (s *Store) ResetLogCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.resetLogs)
}

type txKey struct{}

type snapshot struct {
	attendances map[string]attendance.Attendance
	attendByDay map[dayKey]string
	resetLogs   []attendance.ResetLog
}

type transactor struct {
	store *Store
}

// NewTransactor serializes units of work and restores attendance state
// when fn fails, mirroring a rolled back SQL transaction.
func NewTransactor(store *Store) database.Transactor {
	return &transactor{store: store}
}

// WithinTransaction implements database.Transactor.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	snap := t.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		attendances: make(map[string]attendance.Attendance, len(s.attendances)),
		attendByDay: make(map[dayKey]string, len(s.attendByDay)),
		resetLogs:   append([]attendance.ResetLog(nil), s.resetLogs...),
	}
	for k, v := range s.attendances {
		snap.attendances[k] = v
	}
	for k, v := range s.attendByDay {
		snap.attendByDay[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attendances = snap.attendances
	s.attendByDay = snap.attendByDay
	s.resetLogs = snap.resetLogs
}
