package physics

import (
	"math"
	"testing"

	"github.com/san-kum/springbench/internal/integrators"
	"github.com/san-kum/springbench/internal/sim"
	"github.com/san-kum/springbench/internal/vecmath"
)

func shortTrajectory(t *testing.T, p *SpringPendulum) *sim.Trajectory {
	t.Helper()
	grid := sim.Linspace(0, 0.5, 5001)
	traj, err := integrators.SolveFixed(p, p.DefaultState(), grid, integrators.NewRK4())
	if err != nil {
		t.Fatalf("integration failed: %v", err)
	}
	return traj
}

func TestEnergyConservation(t *testing.T) {
	p := NewSpringPendulum(vecmath.NewScalar())
	traj := shortTrajectory(t, p)

	if drift := EnergyDrift(p, traj); drift > 1e-4 {
		t.Errorf("energy drift too large for a conservative system: %g", drift)
	}
}

func TestEnergyTraceMatchesPointwise(t *testing.T) {
	for _, b := range vecmath.All() {
		p := NewSpringPendulum(b)
		traj := shortTrajectory(t, p)

		trace := EnergyTrace(p, traj)
		if len(trace) != traj.Len() {
			t.Fatalf("%s: trace length %d, trajectory %d", b.Name(), len(trace), traj.Len())
		}

		for i := 0; i < traj.Len(); i += 500 {
			want := p.Energy(traj.States[i])
			if math.Abs(trace[i]-want) > 1e-9*math.Max(1, math.Abs(want)) {
				t.Errorf("%s: point %d: trace %.12f vs Energy %.12f", b.Name(), i, trace[i], want)
			}
		}
	}
}

func TestEnergyTraceEmpty(t *testing.T) {
	p := NewSpringPendulum(vecmath.NewScalar())
	if got := EnergyTrace(p, &sim.Trajectory{}); got != nil {
		t.Errorf("expected nil for empty trajectory, got %v", got)
	}
	if drift := EnergyDrift(p, &sim.Trajectory{}); drift != 0 {
		t.Errorf("expected zero drift for empty trajectory, got %f", drift)
	}
}
