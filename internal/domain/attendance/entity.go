package attendance

import "time"

// Attendance is the single daily record of a member. There is at most one
// row per (MemberID, Date).
type Attendance struct {
	ID       string
	MemberID string
	// Date is the local calendar day, stored as midnight UTC.
	Date      time.Time
	CheckIn   *TimeOfDay
	CheckOut  *TimeOfDay
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	MemberName  string
	MemberPhone string
	OfficeID    string
	OfficeName  string
}

// HasCheckedIn reports whether a check-in time is recorded.
func (a *Attendance) HasCheckedIn() bool {
	return a.CheckIn != nil
}

// HasCheckedOut reports whether a check-out time is recorded.
func (a *Attendance) HasCheckedOut() bool {
	return a.CheckOut != nil
}

// WorkingDuration returns the time between check-in and check-out when both
// are present.
func (a *Attendance) WorkingDuration() (WorkingDuration, bool) {
	if a.CheckIn == nil || a.CheckOut == nil {
		return WorkingDuration{}, false
	}
	return Between(*a.CheckIn, *a.CheckOut), true
}

// ResetLog is the append-only audit row written by every administrative reset.
type ResetLog struct {
	ID           string
	AttendanceID string
	ResetBy      string
	OldStatus    Status
	NewStatus    Status
	OldCheckIn   *TimeOfDay
	NewCheckIn   *TimeOfDay
	OldCheckOut  *TimeOfDay
	NewCheckOut  *TimeOfDay
	Reason       string
	CreatedAt    time.Time
}

// DefaultTimezone is the zone attendance days are counted in when none is
// configured.
const DefaultTimezone = "Asia/Jakarta"

// DefaultLocation loads DefaultTimezone, or UTC when the zone database is
// unavailable.
func DefaultLocation() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DateOf truncates t to its calendar day in t's own location and returns it
// as midnight UTC, the representation used for Attendance.Date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
