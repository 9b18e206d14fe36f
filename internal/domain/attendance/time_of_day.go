package attendance

import (
	"fmt"
	"time"
)

// TimeOfDay is a local wall-clock time without a date, in seconds since
// midnight. It is always interpreted relative to Attendance.Date.
type TimeOfDay int

const secondsPerDay = 24 * 60 * 60

// TimeOfDayOf extracts the wall-clock time of t in t's location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// ParseTimeOfDay accepts "15:04" and "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDayOf(t), nil
		}
	}
	return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
}

func (t TimeOfDay) Hour() int   { return int(t) / 3600 }
func (t TimeOfDay) Minute() int { return int(t) % 3600 / 60 }
func (t TimeOfDay) Second() int { return int(t) % 60 }

// String renders HH:MM:SS, the storage format.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// HHMM renders the display format used in responses and chat messages.
func (t TimeOfDay) HHMM() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Duration converts the value to a duration since midnight.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Second
}

// TimeOfDayFromDuration is the inverse of Duration. Values outside a single
// day are rejected.
func TimeOfDayFromDuration(d time.Duration) (TimeOfDay, error) {
	secs := int(d / time.Second)
	if secs < 0 || secs >= secondsPerDay {
		return 0, fmt.Errorf("duration %s is outside a single day", d)
	}
	return TimeOfDay(secs), nil
}

// WorkingDuration is whole hours plus remainder minutes, truncated.
type WorkingDuration struct {
	Hours   int
	Minutes int
}

// Between returns the absolute distance between two times of day. Check-out
// is not assumed to be later than check-in, an admin reset may swap them.
func Between(in, out TimeOfDay) WorkingDuration {
	diff := int(out - in)
	if diff < 0 {
		diff = -diff
	}
	return WorkingDuration{
		Hours:   diff / 3600,
		Minutes: diff % 3600 / 60,
	}
}

func (w WorkingDuration) String() string {
	return fmt.Sprintf("%d jam %d menit", w.Hours, w.Minutes)
}
