package physics

import (
	"math"

	"github.com/san-kum/springbench/internal/sim"
)

// EnergyTrace computes the total mechanical energy at every trajectory
// point using the model's backend slice kernels.
func EnergyTrace(p *SpringPendulum, tr *sim.Trajectory) []float64 {
	n := tr.Len()
	if n == 0 {
		return nil
	}

	theta := tr.Component(0)
	thetaDot := tr.Component(1)
	ext := tr.Component(2)
	extDot := tr.Component(3)

	inertia := p.SpringMass/3 + p.BobMass
	heavy := p.SpringMass/2 + p.BobMass

	arm := make([]float64, n)
	rest := make([]float64, n)
	for i := range rest {
		rest[i] = p.RestLength
	}
	p.vm.Add(arm, rest, ext)

	w2 := make([]float64, n)
	p.vm.Mul(w2, thetaDot, thetaDot)
	v2 := make([]float64, n)
	p.vm.Mul(v2, extDot, extDot)
	arm2 := make([]float64, n)
	p.vm.Mul(arm2, arm, arm)
	rot := make([]float64, n)
	p.vm.Mul(rot, arm2, w2)

	ke := make([]float64, n)
	p.vm.Add(ke, v2, rot)
	p.vm.Scale(ke, ke, 0.5*inertia)

	spring := make([]float64, n)
	p.vm.Mul(spring, ext, ext)
	p.vm.Scale(spring, spring, 0.5*p.Stiffness)

	cosT := make([]float64, n)
	p.vm.CosSlice(cosT, theta)
	grav := make([]float64, n)
	p.vm.Mul(grav, arm, cosT)
	p.vm.Scale(grav, grav, -heavy*p.Gravity)

	out := make([]float64, n)
	p.vm.Add(out, ke, spring)
	p.vm.Add(out, out, grav)
	return out
}

// EnergyDrift returns the relative drift between the first and last
// trajectory energies, or 0 when the initial energy is zero.
func EnergyDrift(p *SpringPendulum, tr *sim.Trajectory) float64 {
	if tr.Len() < 2 {
		return 0
	}
	e0 := p.Energy(tr.States[0])
	e1 := p.Energy(tr.Final())
	// a diverged run has no meaningful drift
	if e0 == 0 || math.IsNaN(e0) || math.IsNaN(e1) || math.IsInf(e1, 0) {
		return 0
	}
	return math.Abs((e1 - e0) / e0)
}
