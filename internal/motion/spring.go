package motion

import "fmt"

// Spring is a damped mass on a spring. State is [x, v].
type Spring struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

func NewSpring() *Spring {
	return &Spring{Mass: 1.0, Stiffness: 10.0, Damping: 0.5}
}

func (s *Spring) StateDim() int { return 2 }

func (s *Spring) Derive(x State, _ float64) State {
	return State{x[1], (-s.Stiffness*x[0] - s.Damping*x[1]) / s.Mass}
}

func (s *Spring) Energy(x State) float64 {
	return 0.5*s.Mass*x[1]*x[1] + 0.5*s.Stiffness*x[0]*x[0]
}

func (s *Spring) Params() map[string]float64 {
	return map[string]float64{
		"mass":      s.Mass,
		"stiffness": s.Stiffness,
		"damping":   s.Damping,
	}
}

func (s *Spring) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		s.Mass = value
	case "stiffness":
		s.Stiffness = value
	case "damping":
		s.Damping = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}
