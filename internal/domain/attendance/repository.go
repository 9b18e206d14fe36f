package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new record. Returns ErrDuplicateAttendance when a row
	// for the same member and date already exists.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID, ErrAttendanceNotFound if absent
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByMemberAndDate returns nil, nil when the member has no row for date
	GetByMemberAndDate(ctx context.Context, memberID string, date time.Time) (*Attendance, error)

	// GetByMemberAndDateForUpdate is GetByMemberAndDate with a row lock,
	// it must run inside a transaction
	GetByMemberAndDateForUpdate(ctx context.Context, memberID string, date time.Time) (*Attendance, error)

	// Update persists status, check-in and check-out of an existing record
	Update(ctx context.Context, attendance Attendance) error

	// ListByDateRange returns records in [start, end] joined with member and office,
	// ordered by date ascending then member name
	ListByDateRange(ctx context.Context, start, end time.Time, officeID, memberID *string) ([]Attendance, error)

	// ListByDate returns every record of one day
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)
}

// ResetLogRepository is append-only.
type ResetLogRepository interface {
	Append(ctx context.Context, log ResetLog) (ResetLog, error)
	ListByAttendance(ctx context.Context, attendanceID string) ([]ResetLog, error)
}
