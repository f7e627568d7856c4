package repositories

import "errors"

var (
	// ErrNotFound is wrapped by every repository when a lookup matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is wrapped when a unique field is already taken.
	ErrDuplicate = errors.New("record already exists")
)

const defaultRecentLimit = 10
