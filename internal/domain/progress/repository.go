package progress

import (
	"context"
	"time"
)

type ProgressRepository interface {
	// Create returns ErrDuplicateProgress when the member already has a note for the date
	Create(ctx context.Context, p Progress) (Progress, error)

	GetByMemberAndDate(ctx context.Context, memberID string, date time.Time) (*Progress, error)
}
