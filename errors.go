package meshdist

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPairs is returned by Session.Activate when the first refresh finds
	// nothing to show. Callers usually present it as a warning.
	ErrNoPairs = errors.New("no distance pairs found")

	// ErrNoEditMesh is returned by LockSelection when no selected mesh is in
	// edit mode.
	ErrNoEditMesh = errors.New("at least one mesh in edit mode required to lock selection")

	// ErrNothingToLock is returned by LockSelection when edit-mode meshes
	// have no selected vertices.
	ErrNothingToLock = errors.New("no selected vertices on any edited mesh to lock")

	// ErrNotActive is returned when a session operation requires activation.
	ErrNotActive = errors.New("session is not active")
)

// ErrInvalidConfig indicates a configuration value outside its documented range.
type ErrInvalidConfig struct {
	Field string
	Value any
	Min   any
	Max   any
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid config: %s=%v outside [%v, %v]", e.Field, e.Value, e.Min, e.Max)
}
