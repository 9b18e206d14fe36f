package member

import "context"

type MemberRepository interface {
	// GetActiveByPhone looks up by canonical phone, ErrMemberNotFound when
	// absent or inactive
	GetActiveByPhone(ctx context.Context, phone string) (Member, error)

	GetByID(ctx context.Context, id string) (Member, error)

	// ListActive returns all active members with their office name
	ListActive(ctx context.Context) ([]Member, error)
}
