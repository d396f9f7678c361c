package integrators

import (
	"fmt"

	"github.com/san-kum/springbench/internal/sim"
)

// Options bound the adaptive solver. Zero values pick defaults derived
// from the grid.
type Options struct {
	Tol         float64
	MinStep     float64
	MaxStep     float64
	InitialStep float64
}

func DefaultOptions() Options {
	return Options{
		Tol:     1e-6,
		MinStep: 1e-12,
	}
}

// Stats reports the work an integration performed.
type Stats struct {
	Steps    int
	Evals    int
	LastStep float64
}

// SolveGrid integrates dyn from x0 across the grid and returns one state
// per grid point, stepping adaptively between consecutive points. This is
// the black-box solver the benchmark harness times; it makes no attempt
// to recover from a failing problem. Non-finite states propagate into the
// trajectory untouched; a silently diverged result is still a result.
func SolveGrid(dyn sim.Dynamics, x0 sim.State, grid sim.TimeGrid, opts Options) (*sim.Trajectory, Stats, error) {
	var stats Stats

	if len(x0) != dyn.StateDim() {
		return nil, stats, fmt.Errorf("state has %d components, system wants %d: %w",
			len(x0), dyn.StateDim(), sim.ErrDimensionMismatch)
	}
	if grid.Len() < 2 {
		return nil, stats, fmt.Errorf("grid needs at least 2 points: %w", sim.ErrInvalidState)
	}

	if opts.Tol <= 0 {
		opts.Tol = 1e-6
	}
	if opts.MinStep <= 0 {
		opts.MinStep = 1e-12
	}
	if opts.MaxStep <= 0 {
		opts.MaxStep = grid.Span() / 10
	}
	if opts.InitialStep <= 0 {
		opts.InitialStep = grid.At(1) - grid.At(0)
	}

	rk := NewRK45()

	traj := &sim.Trajectory{
		States: make([]sim.State, 0, grid.Len()),
		Times:  make([]float64, 0, grid.Len()),
	}

	x := x0.Clone()
	t := grid.Start()
	step := opts.InitialStep

	traj.States = append(traj.States, x.Clone())
	traj.Times = append(traj.Times, t)

	for i := 1; i < grid.Len(); i++ {
		target := grid.At(i)

		for t < target {
			dt := step
			last := false
			if t+dt >= target {
				dt = target - t
				last = true
			}

			xNew, dtNext, err := rk.StepAdaptive(dyn, x, t, dt, opts.Tol)
			if err != nil {
				return traj, stats, err
			}
			// Only a genuine error-control shrink counts as underflow;
			// a step clipped short by the grid boundary does not.
			if dtNext < opts.MinStep && dtNext < dt {
				stats.Evals = rk.Evals()
				return traj, stats, fmt.Errorf("t=%g: %w", t, sim.ErrStepTooSmall)
			}

			x = xNew
			stats.Steps++
			stats.LastStep = dt
			if last {
				t = target
			} else {
				t += dt
			}

			if dtNext > opts.MaxStep {
				dtNext = opts.MaxStep
			}
			if !last {
				step = dtNext
			} else if dtNext < step {
				// error control wanted a smaller step even at the boundary
				step = dtNext
			}
		}
		traj.States = append(traj.States, x.Clone())
		traj.Times = append(traj.Times, target)
	}

	stats.Evals = rk.Evals()
	return traj, stats, nil
}

// SolveFixed integrates with a fixed-step integrator, one step per grid
// interval.
func SolveFixed(dyn sim.Dynamics, x0 sim.State, grid sim.TimeGrid, integ sim.Integrator) (*sim.Trajectory, error) {
	if len(x0) != dyn.StateDim() {
		return nil, fmt.Errorf("state has %d components, system wants %d: %w",
			len(x0), dyn.StateDim(), sim.ErrDimensionMismatch)
	}

	traj := &sim.Trajectory{
		States: make([]sim.State, 0, grid.Len()),
		Times:  make([]float64, 0, grid.Len()),
	}

	x := x0.Clone()
	traj.States = append(traj.States, x.Clone())
	traj.Times = append(traj.Times, grid.Start())

	for i := 1; i < grid.Len(); i++ {
		t := grid.At(i - 1)
		x = integ.Step(dyn, x, t, grid.At(i)-t)
		traj.States = append(traj.States, x.Clone())
		traj.Times = append(traj.Times, grid.At(i))
	}

	return traj, nil
}

// ByName resolves a fixed-step integrator by configuration name.
func ByName(name string) (sim.Integrator, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	case "rk45":
		return NewRK45(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}
