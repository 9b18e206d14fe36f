package progress

import "errors"

var (
	ErrDuplicateProgress = errors.New("progress for this date already exists")
)
