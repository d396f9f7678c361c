// Package vecmath provides interchangeable vector math backends.
//
// Two implementations of [Backend] exist:
//
//   - Vectorized: precomputed trig tables and unrolled slice kernels
//   - Scalar: plain element-by-element evaluation, the correctness baseline
//
// Both produce arithmetically equivalent results; they differ only in
// execution path and cost. Backends are plain values passed to whoever
// needs them; there is no process-global mode.
package vecmath
