package office

import "errors"

var ErrOfficeNotFound = errors.New("office not found")
