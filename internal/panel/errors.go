package panel

import "errors"

var (
	// ErrUnknownValue indicates a control was requested for a name missing
	// from the value bag.
	ErrUnknownValue = errors.New("panel: unknown value")

	// ErrKindMismatch indicates a number control on a bool value, or the
	// reverse.
	ErrKindMismatch = errors.New("panel: value kind mismatch")

	// ErrInvalidRange indicates min >= max or a negative step.
	ErrInvalidRange = errors.New("panel: invalid control range")

	// ErrNoPreset indicates the store has no saved values under a name.
	ErrNoPreset = errors.New("panel: preset not found")
)
