package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/springbench/internal/bench"
	"github.com/san-kum/springbench/internal/config"
	"github.com/san-kum/springbench/internal/integrators"
	"github.com/san-kum/springbench/internal/physics"
	"github.com/san-kum/springbench/internal/sim"
	"github.com/san-kum/springbench/internal/storage"
	"github.com/san-kum/springbench/internal/tui"
	"github.com/san-kum/springbench/internal/vecmath"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	gridStart  float64
	gridEnd    float64
	samples    int
	tol        float64
	backend    string
	integrator string
	theta      float64
	omega      float64
	ext        float64
	extVel     float64
	configFile string
	preset     string
	saveReport bool
	frameRate  int
	dt         float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "springbench",
		Short: "massive spring pendulum simulation and backend benchmark",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".springbench", "data directory")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark derivative evaluation and integration per backend",
		RunE:  runBench,
	}
	addGridFlags(benchCmd)
	benchCmd.Flags().StringVar(&backend, "backend", "", "run a single backend only")
	benchCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	benchCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	benchCmd.Flags().BoolVar(&saveReport, "save", false, "persist the report")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate the pendulum once and store the trajectory",
		RunE:  runSimulation,
	}
	addGridFlags(runCmd)
	runCmd.Flags().StringVar(&backend, "backend", "vectorized", "vector math backend")
	runCmd.Flags().StringVar(&integrator, "integrator", "rk45", "integrator (euler, rk4, rk45)")
	runCmd.Flags().Float64Var(&theta, "theta", 1.5707963267948966, "initial angle")
	runCmd.Flags().Float64Var(&omega, "omega", 0.0, "initial angular velocity")
	runCmd.Flags().Float64Var(&ext, "ext", 0.0098, "initial spring extension")
	runCmd.Flags().Float64Var(&extVel, "ext-vel", 0.0, "initial radial velocity")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(args[0], os.Stdout)
		},
	}

	backendsCmd := &cobra.Command{
		Use:   "backends",
		Short: "list vector math backends",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tAVAILABLE")
			for _, b := range vecmath.All() {
				fmt.Fprintf(w, "%s\t%v\n", b.Name(), b.Available())
			}
			return w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the pendulum swing in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", 0.002, "timestep")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().StringVar(&backend, "backend", "vectorized", "vector math backend")
	liveCmd.Flags().Float64Var(&theta, "theta", 1.5707963267948966, "initial angle")
	liveCmd.Flags().Float64Var(&omega, "omega", 0.0, "initial angular velocity")
	liveCmd.Flags().Float64Var(&ext, "ext", 0.0098, "initial spring extension")
	liveCmd.Flags().Float64Var(&extVel, "ext-vel", 0.0, "initial radial velocity")

	rootCmd.AddCommand(benchCmd, runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, backendsCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&gridStart, "start", config.DefaultGridStart, "grid start time")
	cmd.Flags().Float64Var(&gridEnd, "end", config.DefaultGridEnd, "grid end time")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "grid sample count")
	cmd.Flags().Float64Var(&tol, "tol", config.DefaultTolerance, "solver tolerance")
}

// resolveConfig merges preset, config file and CLI flags. Flags win over
// the file, the file wins over the preset.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("start") {
		cfg.Grid.Start = gridStart
	}
	if cmd.Flags().Changed("end") {
		cfg.Grid.End = gridEnd
	}
	if cmd.Flags().Changed("samples") {
		cfg.Grid.Samples = samples
	}
	if cmd.Flags().Changed("tol") {
		cfg.Tolerance = tol
	}
	if cmd.Flags().Changed("backend") {
		cfg.Backend = backend
	}
	if cmd.Flags().Changed("theta") {
		cfg.InitState.Theta = theta
	}
	if cmd.Flags().Changed("omega") {
		cfg.InitState.Omega = omega
	}
	if cmd.Flags().Changed("ext") {
		cfg.InitState.Ext = ext
	}
	if cmd.Flags().Changed("ext-vel") {
		cfg.InitState.ExtVel = extVel
	}

	return cfg, nil
}

func buildModel(cfg *config.Config, b vecmath.Backend) *physics.SpringPendulum {
	pend := physics.NewSpringPendulum(b)
	for name, val := range cfg.GetPhysicsParams() {
		// Param names come from the config schema; unknown ones cannot occur.
		_ = pend.SetParam(name, val)
	}
	return pend
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	benchCfg := bench.Config{
		Grid: sim.Linspace(cfg.Grid.Start, cfg.Grid.End, cfg.Grid.Samples),
		Init: sim.State(cfg.GetInitState()),
		Tol:  cfg.Tolerance,
		Model: func(b vecmath.Backend) *physics.SpringPendulum {
			return buildModel(cfg, b)
		},
	}

	if cmd.Flags().Changed("backend") {
		b, err := vecmath.ByName(backend)
		if err != nil {
			return err
		}
		benchCfg.Backends = []vecmath.Backend{b}
	}

	passes, err := bench.Run(os.Stdout, benchCfg)
	if err != nil {
		return err
	}

	if saveReport {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.SaveReport(passes)
		if err != nil {
			return err
		}
		fmt.Printf("\nreport id: %s\n", id)
	}

	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	b, err := vecmath.ByName(cfg.Backend)
	if err != nil {
		return err
	}
	pend := buildModel(cfg, b)

	grid := sim.Linspace(cfg.Grid.Start, cfg.Grid.End, cfg.Grid.Samples)
	x0 := sim.State(cfg.GetInitState())

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("integrating %d points on [%g, %g] with %s/%s...\n",
		grid.Len(), grid.Start(), grid.End(), b.Name(), integrator)

	var traj *sim.Trajectory
	var stats integrators.Stats

	start := time.Now()
	if integrator == "rk45" {
		opts := integrators.DefaultOptions()
		opts.Tol = cfg.Tolerance
		traj, stats, err = integrators.SolveGrid(pend, x0, grid, opts)
	} else {
		var integ sim.Integrator
		integ, err = integrators.ByName(integrator)
		if err != nil {
			return err
		}
		traj, err = integrators.SolveFixed(pend, x0, grid, integ)
		if traj != nil {
			stats.Steps = traj.Len() - 1
		}
	}
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	meta := storage.RunMetadata{
		Backend:     b.Name(),
		Integrator:  integrator,
		Tolerance:   cfg.Tolerance,
		GridStart:   grid.Start(),
		GridEnd:     grid.End(),
		Samples:     grid.Len(),
		Elapsed:     elapsed.Seconds(),
		Steps:       stats.Steps,
		EnergyDrift: physics.EnergyDrift(pend, traj),
		Params:      pend.GetParams(),
	}

	runID, err := st.SaveRun(meta, traj)
	if err != nil {
		return err
	}

	final := traj.Final()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", stats.Steps)
	fmt.Printf("final state: theta=%.6f theta_dot=%.6f x=%.6f x_dot=%.6f\n",
		final[0], final[1], final[2], final[3])
	fmt.Printf("energy drift: %.2e\n", meta.EnergyDrift)

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tBACKEND\tINTEG\tSAMPLES\tELAPSED\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.3fs\t%.2e\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Backend,
			run.Integrator,
			run.Samples,
			run.Elapsed,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

var componentCaptions = []string{
	"theta (angle)",
	"theta_dot (angular velocity)",
	"x (spring extension)",
	"x_dot (radial velocity)",
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("backend: %s\n", meta.Backend)
	fmt.Printf("samples: %d\n\n", traj.Len())

	for idx, caption := range componentCaptions {
		data := downsample(traj.Component(idx), 2000)
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	b, err := vecmath.ByName(meta.Backend)
	if err != nil {
		b = vecmath.AutoSelect()
	}
	pend := physics.NewSpringPendulum(b)
	for name, val := range meta.Params {
		_ = pend.SetParam(name, val)
	}

	energy := downsample(physics.EnergyTrace(pend, traj), 2000)
	graph := asciigraph.Plot(energy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("total energy"),
	)
	fmt.Println(graph)

	return nil
}

// downsample keeps plots readable for dense grids.
func downsample(data []float64, max int) []float64 {
	if len(data) <= max {
		return data
	}
	out := make([]float64, max)
	for i := 0; i < max; i++ {
		out[i] = data[i*len(data)/max]
	}
	return out
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	traj, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time", "theta", "theta_dot", "x", "x_dot"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range traj.States {
		row := []string{strconv.FormatFloat(traj.Times[i], 'f', 6, 64)}
		for _, val := range traj.States[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	b, err := vecmath.ByName(backend)
	if err != nil {
		return err
	}
	pend := physics.NewSpringPendulum(b)
	x0 := sim.State{theta, omega, ext, extVel}
	return tui.Run(pend, x0, dt, frameRate)
}
