// Package physics provides the massive spring pendulum model.
//
// The system is a pendulum whose arm is an extensible spring of mass m,
// stiffness k and rest length l, with a bob of mass M at the end. Its
// state is [theta, theta_dot, x, x_dot]: angular position and velocity,
// radial extension and radial velocity.
//
// [SpringPendulum] implements [sim.Dynamics]. All arithmetic goes through
// a [vecmath.Backend] chosen at construction, so the same model can be
// evaluated under the fast and the fallback path.
package physics
