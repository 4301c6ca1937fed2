package engine

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned for any action other than Initialize while
// the engine is still uninitialized. It signals a caller bug, not a
// transient condition.
var ErrNotInitialized = errors.New("engine not initialized")

// ActionError records which action failed.
type ActionError struct {
	Action string
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("pong: %s: %v", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
