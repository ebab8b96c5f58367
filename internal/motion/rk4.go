package motion

// RK4 is a classic fourth-order Runge-Kutta stepper. It reuses its
// scratch buffers between steps of the same dimension.
type RK4 struct {
	k1, k2, k3, k4 State
	scratch        State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(State, n)
		r.k2 = make(State, n)
		r.k3 = make(State, n)
		r.k4 = make(State, n)
		r.scratch = make(State, n)
	}
}

func (r *RK4) Step(sys System, x State, t, dt float64) State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, sys.Derive(x, t))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	copy(r.k2, sys.Derive(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	copy(r.k3, sys.Derive(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	copy(r.k4, sys.Derive(r.scratch, t+dt))

	out := make(State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		out[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return out
}

// Stepper advances a System in fixed sub-steps so a variable frame delta
// integrates stably.
type Stepper struct {
	System System
	State  State
	Time   float64
	MaxDt  float64

	rk4 *RK4
}

func NewStepper(sys System, x0 State, maxDt float64) *Stepper {
	if maxDt <= 0 {
		maxDt = 0.01
	}
	return &Stepper{System: sys, State: x0.Clone(), MaxDt: maxDt, rk4: NewRK4()}
}

// Advance integrates forward by dt seconds.
func (s *Stepper) Advance(dt float64) {
	for dt > 0 {
		h := min(dt, s.MaxDt)
		s.State = s.rk4.Step(s.System, s.State, s.Time, h)
		s.Time += h
		dt -= h
	}
}
