package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrOutsideGeofence   = errors.New("your location is outside the office area")
	ErrNotCheckedIn      = errors.New("you have not checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")

	// Reset errors
	ErrInvalidReason = errors.New("reason must be at least 10 characters")

	// General errors
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrDuplicateAttendance = errors.New("attendance for this member and date already exists")
)

// ConflictError is an expected steady-state outcome (already checked in or
// out). It carries the existing record so callers can display it.
type ConflictError struct {
	Err      error
	Existing AttendanceResponse
}

func (e *ConflictError) Error() string {
	return e.Err.Error()
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}
