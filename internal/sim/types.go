package sim

import "math"

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

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Dynamics is an ODE system dX/dt = f(X, t). Derive must not mutate x;
// the t argument follows the integrator calling convention even for
// autonomous systems that ignore it.
type Dynamics interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn Dynamics, x State, t float64, dt float64) State
}

type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn Dynamics, x State, t, dt, tol float64) (State, float64, error)
}

// TimeGrid is a fixed, monotonically increasing sequence of evaluation
// times.
type TimeGrid struct {
	times []float64
}

// Linspace builds a grid of samples evenly spaced times from start to end
// inclusive. Fewer than two samples are forced to two.
func Linspace(start, end float64, samples int) TimeGrid {
	if samples < 2 {
		samples = 2
	}
	times := make([]float64, samples)
	step := (end - start) / float64(samples-1)
	for i := range times {
		times[i] = start + float64(i)*step
	}
	times[samples-1] = end
	return TimeGrid{times: times}
}

func (g TimeGrid) Len() int         { return len(g.times) }
func (g TimeGrid) At(i int) float64 { return g.times[i] }
func (g TimeGrid) Start() float64   { return g.times[0] }
func (g TimeGrid) End() float64     { return g.times[len(g.times)-1] }
func (g TimeGrid) Times() []float64 { return g.times }
func (g TimeGrid) Span() float64    { return g.End() - g.Start() }

// Trajectory holds the integrated states, one per grid point.
type Trajectory struct {
	States []State
	Times  []float64
}

func (tr *Trajectory) Len() int { return len(tr.States) }

// Final returns the last state of the trajectory, or nil if empty.
func (tr *Trajectory) Final() State {
	if len(tr.States) == 0 {
		return nil
	}
	return tr.States[len(tr.States)-1]
}

// Component extracts one state component across the whole trajectory.
func (tr *Trajectory) Component(idx int) []float64 {
	out := make([]float64, len(tr.States))
	for i, s := range tr.States {
		if idx < len(s) {
			out[i] = s[idx]
		}
	}
	return out
}
