package member

import "time"

// Member is a tracked person. Phone holds the canonical digits-only number
// and is the join key for every channel.
type Member struct {
	ID        string
	Phone     string
	Name      string
	OfficeID  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	OfficeName string
}
