// Package bench measures the cost of evaluating the spring pendulum
// equations of motion under each vector math backend.
//
// For every backend a pass runs the same sequence: two isolated derivative
// calls (both reported, so warm-up effects are visible), then one full
// integration across the time grid. Everything is sequential; a timing is
// the unit of observation and nothing may interleave with it.
package bench

import (
	"fmt"
	"io"
	"time"

	"github.com/san-kum/springbench/internal/integrators"
	"github.com/san-kum/springbench/internal/physics"
	"github.com/san-kum/springbench/internal/sim"
	"github.com/san-kum/springbench/internal/vecmath"
)

// Config fixes everything a benchmark run needs before the first
// measurement starts.
type Config struct {
	Grid     sim.TimeGrid
	Init     sim.State // nil means the model default
	Tol      float64
	Backends []vecmath.Backend
	Model    func(vecmath.Backend) *physics.SpringPendulum // nil means defaults
}

// Pass holds the measurements of one backend pass, in seconds.
type Pass struct {
	Backend     string  `json:"backend"`
	Deriv1      float64 `json:"deriv1"`
	Deriv2      float64 `json:"deriv2"`
	Integration float64 `json:"integration"`
	Steps       int     `json:"steps"`
	Evals       int     `json:"evals"`
}

// Profile returns the wall-clock seconds one call of fn takes.
func Profile(fn func()) float64 {
	start := time.Now()
	fn()
	return time.Since(start).Seconds()
}

// Run executes one pass per configured backend, writing a labeled report
// block for each to w. A solver failure aborts the run; the failed pass is
// not reported.
func Run(w io.Writer, cfg Config) ([]Pass, error) {
	backends := cfg.Backends
	if len(backends) == 0 {
		backends = vecmath.All()
	}

	newModel := cfg.Model
	if newModel == nil {
		newModel = physics.NewSpringPendulum
	}

	passes := make([]Pass, 0, len(backends))

	for i, b := range backends {
		model := newModel(b)

		x0 := cfg.Init
		if x0 == nil {
			x0 = model.DefaultState()
		}
		t0 := cfg.Grid.Start()

		pass := Pass{Backend: b.Name()}

		var sink sim.State
		pass.Deriv1 = Profile(func() { sink = model.Derive(x0, t0) })
		pass.Deriv2 = Profile(func() { sink = model.Derive(x0, t0) })
		_ = sink

		opts := integrators.DefaultOptions()
		opts.Tol = cfg.Tol

		var stats integrators.Stats
		var solveErr error
		pass.Integration = Profile(func() {
			_, stats, solveErr = integrators.SolveGrid(model, x0, cfg.Grid, opts)
		})
		if solveErr != nil {
			return passes, fmt.Errorf("backend %s: %w", b.Name(), solveErr)
		}
		pass.Steps = stats.Steps
		pass.Evals = stats.Evals

		if i > 0 {
			fmt.Fprintln(w, "---")
		}
		writeReport(w, pass)

		passes = append(passes, pass)
	}

	return passes, nil
}

func writeReport(w io.Writer, p Pass) {
	fmt.Fprintf(w, "backend = %s\n", p.Backend)
	fmt.Fprintf(w, "derivatives: %f, %f\n", p.Deriv1, p.Deriv2)
	fmt.Fprintf(w, "integration: %f\n", p.Integration)
}
