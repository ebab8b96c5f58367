// Package motion integrates small ODE systems that drive playground
// objects.
package motion

import (
	"errors"
	"math"
)

var ErrUnknownParam = errors.New("motion: unknown parameter")

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is an autonomous or time-dependent first-order ODE.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}
