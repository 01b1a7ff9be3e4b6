package gopool

import (
	"errors"
	"fmt"
)

// ErrAborted is returned by a JoinHandle or ScopedJoinHandle whose task
// never ran because the pool was shut down first.
var ErrAborted = errors.New("gopool: task aborted")

// PanicError wraps the recovered payload of a task that panicked while
// running. Payload holds whatever value was passed to panic.
type PanicError struct {
	Payload any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("gopool: task panicked: %v", e.Payload)
}
