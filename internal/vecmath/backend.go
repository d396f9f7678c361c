package vecmath

import "fmt"

// Backend provides the vector arithmetic primitives the physics model and
// trajectory post-processing are built on. dst may alias a or b. Slice
// arguments must have equal length.
type Backend interface {
	Name() string
	Available() bool
	Add(dst, a, b []float64)
	Mul(dst, a, b []float64)
	Scale(dst, a []float64, c float64)
	Sin(x float64) float64
	Cos(x float64) float64
	SinCos(x float64) (sin, cos float64)
	SinSlice(dst, x []float64)
	CosSlice(dst, x []float64)
}

// AutoSelect returns the fastest available backend.
func AutoSelect() Backend {
	v := NewVectorized()
	if v.Available() {
		return v
	}
	return NewScalar()
}

// ByName resolves a backend by its configuration name. "fallback" is an
// accepted alias for the scalar backend.
func ByName(name string) (Backend, error) {
	switch name {
	case "vectorized":
		return NewVectorized(), nil
	case "scalar", "fallback":
		return NewScalar(), nil
	default:
		return nil, fmt.Errorf("vecmath: unknown backend %q", name)
	}
}

// All returns every backend in benchmark order: fast path first, then the
// fallback baseline.
func All() []Backend {
	return []Backend{NewVectorized(), NewScalar()}
}
