package integrators

import (
	"testing"

	"github.com/san-kum/springbench/internal/physics"
	"github.com/san-kum/springbench/internal/sim"
	"github.com/san-kum/springbench/internal/vecmath"
)

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	dyn := &oscillatorDynamics{}
	x := sim.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	dyn := &oscillatorDynamics{}
	x := sim.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkRK45(b *testing.B) {
	integrator := NewRK45()
	dyn := &oscillatorDynamics{}
	x := sim.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkSpringPendulumDerive(b *testing.B) {
	for _, backend := range vecmath.All() {
		b.Run(backend.Name(), func(b *testing.B) {
			pend := physics.NewSpringPendulum(backend)
			x := pend.DefaultState()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = pend.Derive(x, 0)
			}
		})
	}
}

func BenchmarkSolveGrid(b *testing.B) {
	pend := physics.NewSpringPendulum(vecmath.NewVectorized())
	grid := sim.Linspace(0, 1, 10000)
	x0 := pend.DefaultState()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := SolveGrid(pend, x0, grid, DefaultOptions()); err != nil {
			b.Fatal(err)
		}
	}
}
