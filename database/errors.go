package database

import "errors"

// Repository sentinels. Implementations wrap them with call details.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicate      = errors.New("duplicate record")
	ErrStatusConflict = errors.New("record is not in the expected status")
)
