package location

import (
	"errors"
	"fmt"
)

// DuplicateNameError is returned when a create or rename collides with an
// existing location name. Recoverable: the caller can retry with a
// different name.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("location with name %q already exists", e.Name)
}

// IsDuplicateName reports whether err is (or wraps) a DuplicateNameError.
func IsDuplicateName(err error) bool {
	var dup *DuplicateNameError
	return errors.As(err, &dup)
}

// StorageError wraps a failure from the underlying storage layer:
// connectivity loss, constraint violations other than the name collision,
// or any other driver error. Never retried by the repository itself.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
