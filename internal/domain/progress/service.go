package progress

import "context"

type ProgressService interface {
	// Create stores today's note for the member identified by phone
	Create(ctx context.Context, req CreateProgressRequest) (ProgressResponse, error)
}
