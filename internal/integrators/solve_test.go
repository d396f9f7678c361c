package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/springbench/internal/sim"
)

// dX/dt = -X, solution X(t) = X(0) e^{-t}
type decayDynamics struct{}

func (d *decayDynamics) Derive(x sim.State, t float64) sim.State {
	return sim.State{-x[0]}
}
func (d *decayDynamics) StateDim() int { return 1 }

// harmonic oscillator, solution (cos t, -sin t) from (1, 0)
type oscillatorDynamics struct{}

func (o *oscillatorDynamics) Derive(x sim.State, t float64) sim.State {
	return sim.State{x[1], -x[0]}
}
func (o *oscillatorDynamics) StateDim() int { return 2 }

func TestSolveGridDecay(t *testing.T) {
	grid := sim.Linspace(0, 1, 101)
	traj, stats, err := SolveGrid(&decayDynamics{}, sim.State{1.0}, grid, DefaultOptions())
	if err != nil {
		t.Fatalf("SolveGrid failed: %v", err)
	}

	if traj.Len() != grid.Len() {
		t.Fatalf("expected %d states, got %d", grid.Len(), traj.Len())
	}
	for i := 0; i < grid.Len(); i++ {
		if traj.Times[i] != grid.At(i) {
			t.Fatalf("time %d: got %f, want %f", i, traj.Times[i], grid.At(i))
		}
	}
	if stats.Steps < grid.Len()-1 {
		t.Errorf("steps %d below grid intervals %d", stats.Steps, grid.Len()-1)
	}
	if stats.Evals != stats.Steps*7 {
		t.Errorf("evals %d inconsistent with %d RK45 steps", stats.Evals, stats.Steps)
	}

	want := math.Exp(-1.0)
	if math.Abs(traj.Final()[0]-want) > 1e-5 {
		t.Errorf("final state: got %.8f, want %.8f", traj.Final()[0], want)
	}
}

func TestSolveGridOscillator(t *testing.T) {
	grid := sim.Linspace(0, 2*math.Pi, 1001)
	traj, _, err := SolveGrid(&oscillatorDynamics{}, sim.State{1, 0}, grid, DefaultOptions())
	if err != nil {
		t.Fatalf("SolveGrid failed: %v", err)
	}

	// one full period returns to the initial state
	final := traj.Final()
	if math.Abs(final[0]-1) > 1e-4 || math.Abs(final[1]) > 1e-4 {
		t.Errorf("after one period: got (%.6f, %.6f), want (1, 0)", final[0], final[1])
	}
}

func TestSolveGridDimensionMismatch(t *testing.T) {
	grid := sim.Linspace(0, 1, 10)
	_, _, err := SolveGrid(&decayDynamics{}, sim.State{1, 2}, grid, DefaultOptions())
	if !errors.Is(err, sim.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSolveGridZeroSpan(t *testing.T) {
	grid := sim.Linspace(0, 0, 2)
	traj, _, err := SolveGrid(&decayDynamics{}, sim.State{1}, grid, DefaultOptions())
	if err != nil {
		t.Fatalf("zero-span grid should integrate trivially: %v", err)
	}
	if traj.Len() != 2 {
		t.Errorf("expected 2 states, got %d", traj.Len())
	}
}

// blowupDynamics produces NaN shortly after start; the solver must carry
// the invalid values to the end of the grid rather than fail.
type blowupDynamics struct{}

func (b *blowupDynamics) Derive(x sim.State, t float64) sim.State {
	return sim.State{x[0] * x[0] / (0.5 - t)}
}
func (b *blowupDynamics) StateDim() int { return 1 }

func TestSolveGridPropagatesNaN(t *testing.T) {
	grid := sim.Linspace(0, 1, 51)
	traj, _, err := SolveGrid(&blowupDynamics{}, sim.State{1.0}, grid, DefaultOptions())
	if err != nil && !errors.Is(err, sim.ErrStepTooSmall) {
		t.Fatalf("unexpected error class: %v", err)
	}
	if err == nil {
		if traj.Len() != grid.Len() {
			t.Fatalf("expected full trajectory, got %d states", traj.Len())
		}
		if traj.Final().IsValid() {
			t.Error("expected a non-finite final state from the pole at t=0.5")
		}
	}
}

func TestSolveFixedMatchesGrid(t *testing.T) {
	grid := sim.Linspace(0, 1, 101)
	traj, err := SolveFixed(&decayDynamics{}, sim.State{1.0}, grid, NewRK4())
	if err != nil {
		t.Fatalf("SolveFixed failed: %v", err)
	}
	if traj.Len() != grid.Len() {
		t.Fatalf("expected %d states, got %d", grid.Len(), traj.Len())
	}
	want := math.Exp(-1.0)
	if math.Abs(traj.Final()[0]-want) > 1e-6 {
		t.Errorf("final state: got %.8f, want %.8f", traj.Final()[0], want)
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"euler", "rk4", "rk45"} {
		if _, err := ByName(name); err != nil {
			t.Errorf("ByName(%q): %v", name, err)
		}
	}
	if _, err := ByName("leapfrog"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}
