package service

import (
	"errors"
	"fmt"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("note not found")
)

// StorageError reports a failure of the underlying store. Op names the store operation
// ("create", "list", ...) and Err is the cause.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError reports whether err carries a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
