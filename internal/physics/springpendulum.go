package physics

import (
	"fmt"

	"github.com/san-kum/springbench/internal/sim"
	"github.com/san-kum/springbench/internal/vecmath"
)

// Default physical constants, in SI units.
const (
	DefaultSpringMass = 1.0    // kg
	DefaultStiffness  = 1000.0 // N/m
	DefaultRestLength = 0.03   // m
	DefaultBobMass    = 1.0    // kg
	DefaultGravity    = 9.8    // m/s^2
)

// SpringPendulum models a pendulum with a massive, extensible spring arm.
// State: [theta, theta_dot, x, x_dot]. The constants are fixed before a
// run and never touched during one.
type SpringPendulum struct {
	SpringMass float64 // m
	Stiffness  float64 // k
	RestLength float64 // l
	BobMass    float64 // M
	Gravity    float64 // g

	vm vecmath.Backend
}

func NewSpringPendulum(b vecmath.Backend) *SpringPendulum {
	return &SpringPendulum{
		SpringMass: DefaultSpringMass,
		Stiffness:  DefaultStiffness,
		RestLength: DefaultRestLength,
		BobMass:    DefaultBobMass,
		Gravity:    DefaultGravity,
		vm:         b,
	}
}

func (p *SpringPendulum) StateDim() int { return 4 }

func (p *SpringPendulum) Backend() vecmath.Backend { return p.vm }

// Derive returns the time derivative of the state. The system is
// autonomous; t is accepted per the integrator calling convention but has
// no effect. When the effective arm length l+x vanishes the angular
// acceleration divides by zero and the result carries Inf/NaN. That is a
// genuine singularity of the model and is deliberately not clamped.
func (p *SpringPendulum) Derive(x sim.State, t float64) sim.State {
	theta, thetaDot := x[0], x[1]
	ext, extDot := x[2], x[3]

	sinT, cosT := p.vm.SinCos(theta)
	inertia := p.SpringMass/3 + p.BobMass
	ratio := (p.SpringMass/2 + p.BobMass) / inertia
	arm := p.RestLength + ext

	return sim.State{
		thetaDot,
		-(2*thetaDot*extDot + p.Gravity*ratio*sinT) / arm,
		extDot,
		arm*thetaDot*thetaDot + ratio*p.Gravity*cosT - p.Stiffness*ext/inertia,
	}
}

// DefaultState is the benchmark initial condition: horizontal arm at rest,
// spring stretched to the static equilibrium of the hanging bob.
func (p *SpringPendulum) DefaultState() sim.State {
	return sim.State{1.5707963267948966, 0, p.BobMass * p.Gravity / p.Stiffness, 0}
}

// Energy returns the total mechanical energy of the state:
// kinetic + spring potential + gravitational potential.
func (p *SpringPendulum) Energy(x sim.State) float64 {
	theta, thetaDot := x[0], x[1]
	ext, extDot := x[2], x[3]

	inertia := p.SpringMass/3 + p.BobMass
	arm := p.RestLength + ext

	ke := 0.5 * inertia * (extDot*extDot + arm*arm*thetaDot*thetaDot)
	spring := 0.5 * p.Stiffness * ext * ext
	grav := -(p.SpringMass/2 + p.BobMass) * p.Gravity * arm * p.vm.Cos(theta)

	return ke + spring + grav
}

func (p *SpringPendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"spring_mass": p.SpringMass,
		"stiffness":   p.Stiffness,
		"rest_length": p.RestLength,
		"bob_mass":    p.BobMass,
		"gravity":     p.Gravity,
	}
}

func (p *SpringPendulum) SetParam(name string, value float64) error {
	switch name {
	case "spring_mass":
		p.SpringMass = value
	case "stiffness":
		p.Stiffness = value
	case "rest_length":
		p.RestLength = value
	case "bob_mass":
		p.BobMass = value
	case "gravity":
		p.Gravity = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
