package world

import (
	"errors"
	"fmt"
)

var (
	// ErrNoOpener indicates New was called without a surface opener.
	ErrNoOpener = errors.New("world: surface opener is nil")

	// ErrInvalidGrid indicates a non-positive grid size or division count.
	ErrInvalidGrid = errors.New("world: invalid grid dimensions")

	// ErrInvalidCamera indicates the camera sits on its look-at target or
	// has a field of view outside (0, 180).
	ErrInvalidCamera = errors.New("world: invalid camera")

	// ErrClosed indicates use of a World after Close.
	ErrClosed = errors.New("world: closed")
)

// FrameError wraps an error returned by the per-frame callback.
type FrameError struct {
	Frame   uint64
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("world: frame %d: %v", e.Frame, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
