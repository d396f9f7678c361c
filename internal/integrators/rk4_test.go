package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/springbench/internal/sim"
)

func TestRK4Accuracy(t *testing.T) {
	dyn := &oscillatorDynamics{}
	integ := NewRK4()

	x := sim.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestEulerConverges(t *testing.T) {
	dyn := &decayDynamics{}
	integ := NewEuler()

	x := sim.State{1.0}
	dt := 0.001
	for i := 0; i < 1000; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	want := math.Exp(-1.0)
	if math.Abs(x[0]-want) > 1e-3 {
		t.Errorf("got %.6f, want %.6f", x[0], want)
	}
}

func TestRK45SuggestsSmallerStepOnRoughProblem(t *testing.T) {
	dyn := &oscillatorDynamics{}
	rk := NewRK45()

	// an absurdly large step must be rejected via a shrink suggestion
	_, dtNext, err := rk.StepAdaptive(dyn, sim.State{1, 0}, 0, 10.0, 1e-9)
	if err != nil {
		t.Fatalf("StepAdaptive: %v", err)
	}
	if dtNext >= 10.0 {
		t.Errorf("expected shrunken step suggestion, got %f", dtNext)
	}
}

func TestRK45StepMatchesAdaptive(t *testing.T) {
	dyn := &decayDynamics{}
	rk := NewRK45()

	a := rk.Step(dyn, sim.State{1.0}, 0, 0.01)
	b, _, _ := NewRK45().StepAdaptive(dyn, sim.State{1.0}, 0, 0.01, 1e-6)

	if a[0] != b[0] {
		t.Errorf("Step and StepAdaptive diverge: %v vs %v", a[0], b[0])
	}
}
