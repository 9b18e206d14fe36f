package user

import "context"

type UserRepository interface {
	// GetByEmail returns ErrUserNotFound when no account matches
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
}
