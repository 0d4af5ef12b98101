package repository

import (
	"errors"
	"fmt"
)

// Sentinel kinds for row store errors.
var (
	ErrNotFound          = errors.New("row not found")
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// NotFoundError reports a lookup by id that matched no row.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s matching query does not exist.", e.Entity)
}

// Is makes errors.Is(err, ErrNotFound) hold for every NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound reports whether err is, or wraps, a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
