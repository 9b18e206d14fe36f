package progress

import "time"

// Progress is a member's daily work note, at most one per member per date.
type Progress struct {
	ID          string
	MemberID    string
	Date        time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
