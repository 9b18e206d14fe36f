package user

import "time"

type Role string

const (
	RoleAdmin Role = "admin" // Can reset attendance and read reports
)

// User is an administrator account of the dashboard.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user may perform administrative overrides
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
