package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Jevon1999/api-presensi/internal/domain/attendance"
)

type attendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

// join fills the denormalized member and office fields. Caller holds mu.
func (r *attendanceRepository) join(a attendance.Attendance) attendance.Attendance {
	if m, ok := r.store.members[a.MemberID]; ok {
		a.MemberName = m.Name
		a.MemberPhone = m.Phone
		a.OfficeID = m.OfficeID
		if o, ok := r.store.offices[m.OfficeID]; ok {
			a.OfficeName = o.Name
		}
	}
	return a
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := newDayKey(a.MemberID, a.Date)
	if _, exists := r.store.attendByDay[key]; exists {
		return attendance.Attendance{}, attendance.ErrDuplicateAttendance
	}

	now := r.store.now()
	a.ID = newID()
	a.CreatedAt, a.UpdatedAt = now, now
	r.store.attendances[a.ID] = a
	r.store.attendByDay[key] = a.ID

	return r.join(a), nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.attendances[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.join(a), nil
}

// GetByMemberAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByMemberAndDate(ctx context.Context, memberID string, date time.Time) (*attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.attendByDay[newDayKey(memberID, date)]
	if !ok {
		return nil, nil
	}
	a := r.join(r.store.attendances[id])
	return &a, nil
}

// GetByMemberAndDateForUpdate implements attendance.AttendanceRepository.
// Transactions are already serialized by the store, so no row lock is taken.
func (r *attendanceRepository) GetByMemberAndDateForUpdate(ctx context.Context, memberID string, date time.Time) (*attendance.Attendance, error) {
	return r.GetByMemberAndDate(ctx, memberID, date)
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.attendances[a.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	existing.Status = a.Status
	existing.CheckIn = a.CheckIn
	existing.CheckOut = a.CheckOut
	existing.UpdatedAt = r.store.now()
	r.store.attendances[a.ID] = existing
	return nil
}

// ListByDateRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDateRange(ctx context.Context, start, end time.Time, officeID, memberID *string) ([]attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []attendance.Attendance
	for _, a := range r.store.attendances {
		if a.Date.Before(start) || a.Date.After(end) {
			continue
		}
		if memberID != nil && a.MemberID != *memberID {
			continue
		}
		joined := r.join(a)
		if officeID != nil && joined.OfficeID != *officeID {
			continue
		}
		result = append(result, joined)
	}
	sortAttendances(result)
	return result, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	return r.ListByDateRange(ctx, date, date, nil, nil)
}

func sortAttendances(list []attendance.Attendance) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].MemberName < list[j].MemberName
	})
}

type resetLogRepository struct {
	store *Store
}

func NewResetLogRepository(store *Store) attendance.ResetLogRepository {
	return &resetLogRepository{store: store}
}

// Append implements attendance.ResetLogRepository.
func (r *resetLogRepository) Append(ctx context.Context, log attendance.ResetLog) (attendance.ResetLog, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.attendances[log.AttendanceID]; !ok {
		return attendance.ResetLog{}, attendance.ErrAttendanceNotFound
	}
	log.ID = newID()
	log.CreatedAt = r.store.now()
	r.store.resetLogs = append(r.store.resetLogs, log)
	return log, nil
}

// ListByAttendance implements attendance.ResetLogRepository.
func (r *resetLogRepository) ListByAttendance(ctx context.Context, attendanceID string) ([]attendance.ResetLog, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []attendance.ResetLog
	for _, log := range r.store.resetLogs {
		if log.AttendanceID == attendanceID {
			result = append(result, log)
		}
	}
	return result, nil
}
