package state

import (
	"errors"
	"fmt"
)

// ErrMalformed reports a stored value that is not an integer. Load treats it
// as missing and returns the default level.
var ErrMalformed = errors.New("malformed persisted brightness value")

// PersistenceError is returned when the backing store cannot be written.
type PersistenceError struct {
	Op   string // "save" or "load"
	Path string // file path or registry key
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("state %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
