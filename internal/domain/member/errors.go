package member

import "errors"

// Absent and inactive members share one error so callers cannot tell them apart.
var ErrMemberNotFound = errors.New("member not found or inactive")
