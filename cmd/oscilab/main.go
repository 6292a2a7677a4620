package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/avshek/oscilab/internal/analysis"
	"github.com/avshek/oscilab/internal/config"
	"github.com/avshek/oscilab/internal/integrators"
	"github.com/avshek/oscilab/internal/metrics"
	"github.com/avshek/oscilab/internal/osc"
	"github.com/avshek/oscilab/internal/sim"
	"github.com/avshek/oscilab/internal/stiffness"
	"github.com/avshek/oscilab/internal/storage"
	"github.com/avshek/oscilab/internal/viz"
)

var (
	dataDir    string
	configFile string
	integrator string
	points     int
	start      float64
	end        float64
	floor      float64
	frameRate  int
	threshold  float64
	seriesIdx  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oscilab",
		Short: "coupled mass-spring oscillator simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".oscilab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation and store the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().Float64Var(&threshold, "threshold", 100.0, "stability threshold on |state|")

	animateCmd := &cobra.Command{
		Use:   "animate [preset]",
		Short: "run a simulation and replay it as a terminal animation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnimate,
	}
	addScenarioFlags(animateCmd)
	animateCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored displacements",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "normal modes and spectrum of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&seriesIdx, "index", 0, "oscillator index for the spectrum")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write stored trajectory CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a stored run as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			return st.ExportJSON(args[0], "")
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [preset]",
		Short: "compare rk4 and euler on the same scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  compareIntegrators,
	}
	addScenarioFlags(compareCmd)

	rootCmd.AddCommand(runCmd, animateCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, presetsCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (rk4, euler)")
	cmd.Flags().IntVar(&points, "points", config.DefaultPoints, "time grid resolution")
	cmd.Flags().Float64Var(&start, "start", config.DefaultStart, "grid start time")
	cmd.Flags().Float64Var(&end, "end", config.DefaultEnd, "grid end time")
	cmd.Flags().Float64Var(&floor, "floor", stiffness.DefaultFloor, "eigenvalue clamp floor")
}

// resolveConfig merges preset, config file and flags: the preset (or the
// defaults) is the base, a config file replaces it, and changed flags win.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	name := "custom"
	cfg := config.DefaultConfig()

	if len(args) > 0 {
		preset := config.GetPreset(args[0])
		if preset == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
		name = args[0]
		copied := *preset
		cfg = &copied
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		name = "file"
		cfg = loaded
	}

	if cmd.Flags().Changed("integrator") || cfg.Integrator == "" {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("points") {
		cfg.Points = points
	}
	if cmd.Flags().Changed("start") {
		cfg.Start = start
	}
	if cmd.Flags().Changed("end") {
		cfg.End = end
	}
	if cmd.Flags().Changed("floor") {
		cfg.Floor = floor
	}

	if cfg.Masses == nil {
		return nil, "", fmt.Errorf("no scenario given: name a preset or pass --config")
	}

	return cfg, name, nil
}

func simulate(cfg *config.Config, extra ...osc.Metric) (*sim.Result, error) {
	integ, ok := integrators.ByName(cfg.Integrator)
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", cfg.Integrator)
	}

	simulator := sim.New(integ)
	for _, m := range extra {
		simulator.AddMetric(m)
	}

	return simulator.Run(context.Background(), cfg.Scenario())
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s (n=%d, %d points over [%g, %g])...\n",
		name, len(cfg.Masses), cfg.Points, cfg.Start, cfg.End)
	begin := time.Now()

	result, err := simulate(cfg,
		metrics.NewStability(threshold),
		metrics.NewPeakVelocity(len(cfg.Masses)),
	)
	zeroTrajectory := errors.Is(err, osc.ErrZeroTrajectory)
	if err != nil && !zeroTrajectory {
		return err
	}

	elapsed := time.Since(begin)

	runID, err := st.Save(name, cfg.Integrator, cfg.Scenario(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(result.States))
	fmt.Printf("max amplitude: %.6f\n", result.MaxAmplitude)
	fmt.Printf("spacing: %.6f\n", result.Spacing)
	fmt.Printf("energy drift: %.2e\n", result.EnergyDrift)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if zeroTrajectory {
		fmt.Println("\nwarning: all displacement values are zero; nothing to animate")
	}

	return nil
}

func runAnimate(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fps") {
		cfg.FrameRate = frameRate
	}

	result, err := simulate(cfg)
	if errors.Is(err, osc.ErrZeroTrajectory) {
		fmt.Println("all displacement values are zero; skipping animation")
		return nil
	}
	if err != nil {
		return err
	}

	return viz.Animate(result.States, result.Times, result.Chain.Size(), result.Spacing, cfg.FrameRate)
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tN\tPOINTS\tINTEG\tMAX AMP")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%.4f\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Oscillators,
			run.Points,
			run.Integrator,
			run.MaxAmplitude,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("oscillators: %d\n", meta.Oscillators)
	fmt.Printf("samples: %d\n\n", len(states))

	numVars := meta.Oscillators
	const maxPlots = 6
	if numVars > maxPlots {
		numVars = maxPlots
	}

	for varIdx := 0; varIdx < numVars; varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			if varIdx < len(states[i]) {
				data[i] = states[i][varIdx]
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("x%d (displacement) vs time", varIdx)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	conditioned, err := stiffness.Condition(meta.Stiffness, meta.Floor)
	if err != nil {
		return err
	}
	modes, err := analysis.NormalModes(meta.Masses, conditioned)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n\nnormal modes:\n", meta.ID)
	for i, omega := range modes {
		fmt.Printf("  mode %d: ω = %8.4f rad/s  (%.4f Hz)\n", i, omega, omega/(2*math.Pi))
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) < 2 {
		return nil
	}
	if seriesIdx < 0 || seriesIdx >= meta.Oscillators {
		return fmt.Errorf("index %d out of range for %d oscillators", seriesIdx, meta.Oscillators)
	}

	series := make([]float64, len(states))
	for i := range states {
		series[i] = states[i][seriesIdx]
	}
	dt := times[1] - times[0]

	fmt.Printf("\nspectrum of x%d:\n", seriesIdx)
	fmt.Printf("dominant frequency: %.4f Hz\n\n", analysis.DominantFrequency(series, dt))

	ps := analysis.PowerSpectrum(series)
	limit := len(ps)
	if limit > 120 {
		limit = 120
	}
	graph := asciigraph.Plot(ps[:limit],
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (low frequencies)"),
	)
	fmt.Println(graph)

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	n := meta.Oscillators
	fmt.Print("time")
	for i := 0; i < n; i++ {
		fmt.Printf(",x%d", i)
	}
	for i := 0; i < n; i++ {
		fmt.Printf(",v%d", i)
	}
	fmt.Println()

	for i := range states {
		fmt.Printf("%.6f", times[i])
		for _, v := range states[i] {
			fmt.Printf(",%.6f", v)
		}
		fmt.Println()
	}

	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	names := []string{"rk4", "euler"}
	results := make(map[string]*sim.Result, len(names))
	for _, integName := range names {
		c := *cfg
		c.Integrator = integName
		result, err := simulate(&c)
		if err != nil && !errors.Is(err, osc.ErrZeroTrajectory) {
			return fmt.Errorf("%s: %w", integName, err)
		}
		results[integName] = result
	}

	fmt.Printf("scenario: %s\n\n", name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tMAX AMP\tENERGY DRIFT")
	for _, integName := range names {
		r := results[integName]
		fmt.Fprintf(w, "%s\t%.6f\t%.2e\n", integName, r.MaxAmplitude, r.EnergyDrift)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	divergence := 0.0
	a, b := results["rk4"].States, results["euler"].States
	for i := range a {
		divergence = math.Max(divergence, a[i].Sub(b[i]).Norm())
	}
	fmt.Printf("\nmax state divergence: %.6f\n", divergence)

	return nil
}
