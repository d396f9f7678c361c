// Package sim provides core value types for ODE simulation.
//
// The package defines the fundamental types shared by the solver and the
// benchmark harness:
//
//   - [State]: vector representing system state
//   - [Dynamics]: interface for ODE systems (dX/dt = f(X, t))
//   - [TimeGrid]: fixed sequence of evaluation times
//   - [Trajectory]: integrated states, one per grid point
//
// # Thread Safety
//
// All types are plain values. The benchmark harness is strictly
// sequential, so nothing here carries locks.
package sim
