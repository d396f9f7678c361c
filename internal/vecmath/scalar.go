package vecmath

import "math"

// Scalar evaluates everything element by element with no precomputation.
// It is the slow-path baseline the vectorized backend is compared against.
type Scalar struct{}

func NewScalar() *Scalar { return &Scalar{} }

func (s *Scalar) Name() string    { return "scalar" }
func (s *Scalar) Available() bool { return true }

func (s *Scalar) Add(dst, a, b []float64) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func (s *Scalar) Mul(dst, a, b []float64) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func (s *Scalar) Scale(dst, a []float64, c float64) {
	for i := range dst {
		dst[i] = a[i] * c
	}
}

func (s *Scalar) Sin(x float64) float64 { return math.Sin(x) }
func (s *Scalar) Cos(x float64) float64 { return math.Cos(x) }

func (s *Scalar) SinCos(x float64) (float64, float64) {
	return math.Sin(x), math.Cos(x)
}

func (s *Scalar) SinSlice(dst, x []float64) {
	for i := range dst {
		dst[i] = math.Sin(x[i])
	}
}

func (s *Scalar) CosSlice(dst, x []float64) {
	for i := range dst {
		dst[i] = math.Cos(x[i])
	}
}
