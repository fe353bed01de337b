package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cyclosim/internal/analysis"
	"github.com/san-kum/cyclosim/internal/automation"
	"github.com/san-kum/cyclosim/internal/config"
	"github.com/san-kum/cyclosim/internal/experiment"
	"github.com/san-kum/cyclosim/internal/export"
	"github.com/san-kum/cyclosim/internal/lorentz"
	"github.com/san-kum/cyclosim/internal/optim"
	"github.com/san-kum/cyclosim/internal/storage"
	"github.com/san-kum/cyclosim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	integrator string
	noExtract  bool
	outPath    string
	theme      string
	logFile    string

	sweepParams []string
	sweepMetric string
	maximize    bool
	parallel    int

	trials       int
	radiusJitter float64
	speedJitter  float64
	seed         int64
)

// paramFlags maps CLI flags to config parameter names.
var paramFlags = []struct {
	flag, param, usage string
}{
	{"dt", "dt", "timestep"},
	{"time", "duration", "duration"},
	{"mass", "mass", "particle mass"},
	{"charge", "charge", "particle charge"},
	{"field", "magnetic_field", "magnetic field strength"},
	{"voltage", "voltage", "gap voltage"},
	{"radius", "initial_radius", "launch radius"},
	{"speed", "initial_speed", "minimum launch speed"},
	{"dee-radius", "boundary_radius", "dee radius (0 disables the wall)"},
	{"cooldown", "cooldown", "minimum time between gap impulses"},
	{"max-speed", "max_speed", "no impulses above this speed (0 disables)"},
}

// main registers the commands and exits 1 if the selected one fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "cyclosim",
		Short: "cyclotron particle accelerator simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(experiment.NewRegistry())
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cyclosim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log crossings and boundary events to stderr")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run and store a simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(args[0], outPath)
		},
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(args[0], outPath)
		},
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the orbit of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "compare a run with cyclotron theory",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	liveCmd.Flags().StringVar(&logFile, "log", "", "write event log to this file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same configuration",
		RunE:  compareIntegrators,
	}
	addConfigFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search over parameters",
		Long: "Runs every combination of the given parameter ranges and reports the best one.\n" +
			"Ranges are lo:hi:n or a comma separated list, e.g. --param voltage=1:9:5 --param mass=1,2,4",
		Args: cobra.NoArgs,
		RunE: runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "parameter range name=range (repeatable)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "energy_gain", "metric to optimize")
	sweepCmd.Flags().BoolVar(&maximize, "maximize", true, "maximize the metric instead of minimizing it")
	sweepCmd.Flags().IntVar(&parallel, "parallel", 0, "concurrent runs (0 = unlimited)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario of steps",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "jitter the launch and count outcomes",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addConfigFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	monteCarloCmd.Flags().Float64Var(&radiusJitter, "radius-jitter", 1.0, "max launch radius offset")
	monteCarloCmd.Flags().Float64Var(&speedJitter, "speed-jitter", 0.5, "max launch speed offset")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	monteCarloCmd.Flags().IntVar(&parallel, "parallel", 0, "concurrent trials (0 = unlimited)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark integrators",
		Args:  cobra.NoArgs,
		RunE:  benchIntegrators,
	}
	addConfigFlags(benchCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd,
		analyzeCmd, liveCmd, presetsCmd, compareCmd, sweepCmd, scenarioCmd, monteCarloCmd, benchCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	defaults := config.DefaultConfig().GetParams()
	for _, f := range paramFlags {
		cmd.Flags().Float64(f.flag, defaults[f.param], f.usage)
	}
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	cmd.Flags().StringVar(&preset, "preset", "", "start from a preset ("+strings.Join(config.ListPresets(), ", ")+")")
	cmd.Flags().StringVar(&integrator, "integrator", "leapfrog", "magnetic pusher")
	cmd.Flags().BoolVar(&noExtract, "no-extraction", false, "stop at the dee edge instead of extracting")
}

// resolveConfig layers preset, config file and explicitly set flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	for _, f := range paramFlags {
		if !flags.Changed(f.flag) {
			continue
		}
		v, err := flags.GetFloat64(f.flag)
		if err != nil {
			return nil, err
		}
		if err := cfg.SetParam(f.param, v); err != nil {
			return nil, err
		}
	}
	if flags.Changed("integrator") || cfg.Integrator == "" {
		cfg.Integrator = integrator
	}
	if flags.Changed("no-extraction") {
		cfg.Boundary.ExtractionEnabled = !noExtract
	}

	return cfg, cfg.Validate()
}

func newLogger() *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s with %s...\n", cfg.Name, cfg.Integrator)
	start := time.Now()

	result, err := experiment.Run(cmd.Context(), experiment.NewRegistry(), cfg, newLogger())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	final := result.Final()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("outcome: %s at t=%.2fs\n", result.Outcome, final.Time)
	fmt.Printf("impulses: %d\n", result.Impulses)
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, metrics[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tDURATION\tDT\tINTEG\tOUTCOME\tIMPULSES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%s\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Outcome,
			run.Impulses,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("outcome: %s\n", meta.Outcome)
	fmt.Printf("samples: %d\n\n", len(samples))

	fmt.Println(analysis.OrbitToASCII(samples, 70, 30))
	fmt.Println()

	series := []struct {
		caption string
		value   func(i int) float64
	}{
		{"kinetic energy", func(i int) float64 { return samples[i].Energy }},
		{"orbit radius", func(i int) float64 { return samples[i].Radius }},
		{"speed", func(i int) float64 { return samples[i].Speed }},
	}
	for _, s := range series {
		data := make([]float64, len(samples))
		for i := range samples {
			data[i] = s.value(i)
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		))
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	cfg := meta.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	svg := export.OrbitToSVG(samples, export.DefaultOrbitOptions(cfg.Params()))
	if svg == "" {
		return fmt.Errorf("not enough samples to draw")
	}

	if outPath == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(outPath, []byte(svg), 0644)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data")
	}

	cfg := meta.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	p := cfg.Params()

	fmt.Printf("orbit analysis: %s\n", meta.ID)
	fmt.Printf("outcome: %s, impulses: %d\n\n", meta.Outcome, meta.Impulses)

	theory := analysis.CyclotronFrequency(p.Charge, p.MagneticField, p.Mass)
	fmt.Printf("cyclotron frequency (theory): %.4f hz\n", theory)
	fmt.Printf("period (theory): %.4f s\n", analysis.Period(p.Charge, p.MagneticField, p.Mass))

	if f, err := analysis.OrbitFrequency(samples); err == nil {
		fmt.Printf("orbit frequency (measured): %.4f hz\n", f)
		if theory > 0 {
			fmt.Printf("relative error: %.2f%%\n", 100*(f-theory)/theory)
		}
	} else {
		fmt.Printf("orbit frequency: %v\n", err)
	}

	if p.BoundaryRadius > 0 {
		e0 := samples[0].Energy
		fmt.Printf("\nextraction energy: %.4f\n", analysis.ExtractionEnergy(p.Charge, p.MagneticField, p.BoundaryRadius, p.Mass))
		if n := analysis.CrossingsToExtract(e0, p.Charge, p.Voltage, p.MagneticField, p.BoundaryRadius, p.Mass); n >= 0 {
			fmt.Printf("crossings to extract (theory): %d\n", n)
		} else {
			fmt.Println("crossings to extract (theory): never, the gap does not accelerate")
		}
	}

	turns := analysis.TurnRadii(samples)
	if len(turns) == 0 {
		return nil
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TURN\tTIME\tRADIUS\tENERGY\tTHEORY R")
	for i, tp := range turns {
		speed := analysis.SpeedForEnergy(p.Mass, tp.Energy)
		fmt.Fprintf(w, "%d\t%.3f\t%.4f\t%.4f\t%.4f\n", i+1, tp.Time, tp.Radius, tp.Energy,
			analysis.TheoreticalRadius(p.Mass, speed, p.Charge, p.MagneticField))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(turns) > 1 {
		radii := make([]float64, len(turns))
		for i, tp := range turns {
			radii[i] = tp.Radius
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(radii, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("radius per turn")))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	pusher, err := experiment.NewRegistry().GetPusher(cfg.Integrator)
	if err != nil {
		return err
	}

	m := viz.NewModel(cfg, lorentz.New(pusher)).WithTheme(theme)
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		m = m.WithLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	return viz.Run(m)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tMASS\tCHARGE\tFIELD\tVOLTAGE\tDEE R\tEXTRACTION\tDURATION")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\t%t\t%gs\n",
			name, c.Particle.Mass, c.Particle.Charge, c.Field.Magnetic, c.Field.Voltage,
			c.Boundary.Radius, c.Boundary.ExtractionEnabled, c.Duration)
	}
	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	names := args
	if len(names) == 0 {
		names = registry.ListPushers()
	}

	fmt.Printf("comparing integrators for %s (dt=%.4f, duration=%.1fs)\n\n", base.Name, base.Dt, base.Duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tOUTCOME\tIMPULSES\tFINAL E\tMAX R\tSPEED DRIFT\tTIME MS")

	for _, name := range names {
		cfg := base.Clone()
		cfg.Integrator = name

		start := time.Now()
		result, err := experiment.Run(cmd.Context(), registry, cfg, newLogger())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		m := result.Metrics
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%.4f\t%.2e\t%.2f\n",
			name, result.Outcome, result.Impulses, m["final_energy"], m["max_radius"], m["speed_drift"],
			float64(elapsed.Microseconds())/1000)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(sweepParams) == 0 {
		return fmt.Errorf("at least one --param name=range is required")
	}

	names := make([]string, len(sweepParams))
	ranges := make([][]float64, len(sweepParams))
	for i, arg := range sweepParams {
		name, rng, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid --param %q, want name=range", arg)
		}
		values, err := optim.ParseRange(rng)
		if err != nil {
			return fmt.Errorf("--param %s: %w", name, err)
		}
		names[i], ranges[i] = name, values
	}

	obj := optim.Minimize
	if maximize {
		obj = optim.Maximize
	}

	gs := optim.NewGridSearch(names, ranges)
	gs.SetLimit(parallel)
	gs.SetLogger(newLogger())

	start := time.Now()
	best, points, err := gs.Search(cmd.Context(), base, experiment.NewRegistry(), sweepMetric, obj)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\tOUTCOME\t"+strings.ToUpper(sweepMetric))
	for _, pt := range points {
		var cols []string
		for _, n := range names {
			cols = append(cols, fmt.Sprintf("%g", pt.Params[n]))
		}
		if pt.Err != nil {
			fmt.Fprintf(w, "%s\t-\t%v\n", strings.Join(cols, "\t"), pt.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%.6f\n", strings.Join(cols, "\t"), pt.Outcome, pt.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d runs in %v\n", len(points), time.Since(start))
	fmt.Printf("best %s = %.6f at", sweepMetric, best.Value)
	for _, n := range names {
		fmt.Printf(" %s=%g", n, best.Params[n])
	}
	fmt.Println()
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(cmd.Context(), sc, experiment.NewRegistry(), st, newLogger())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tINTEG\tOUTCOME\tIMPULSES\tFINAL E\tRUN ID")
	for i, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%.4f\t%s\n",
			i+1, r.Config.Name, r.Config.Integrator, r.Result.Outcome, r.Result.Impulses, r.Result.Final().Energy, runID)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	mc := &automation.MonteCarloConfig{
		Base:         cfg,
		RadiusJitter: radiusJitter,
		SpeedJitter:  speedJitter,
		NumTrials:    trials,
		Seed:         seed,
		Parallel:     parallel,
	}

	fmt.Printf("running %d trials of %s...\n", trials, cfg.Name)
	start := time.Now()
	results, err := automation.RunMonteCarlo(cmd.Context(), mc, experiment.NewRegistry())
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	stats := automation.MonteCarloStats(results)
	for _, o := range []lorentz.Outcome{lorentz.Extracted, lorentz.Halted, lorentz.Continuing} {
		n := stats[o]
		fmt.Printf("  %-10s %4d  %s\n", o, n, viz.ProgressBar(float64(n)/float64(max(1, len(results))), 30))
	}

	energies := make([]float64, len(results))
	for i, r := range results {
		energies[i] = r.FinalEnergy
	}
	if len(energies) > 1 {
		sort.Float64s(energies)
		fmt.Println()
		fmt.Println(asciigraph.Plot(energies, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("final energy (sorted)")))
	}
	return nil
}

func benchIntegrators(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	dts := []float64{0.001, 0.01, 0.05}

	fmt.Printf("benchmarking %s over %.0fs\n\n", base.Name, base.Duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tDT\tSTEPS\tTIME\tSTEPS/SEC\tOUTCOME")

	for _, name := range registry.ListPushers() {
		for _, dt := range dts {
			cfg := base.Clone()
			cfg.Integrator = name
			cfg.Dt = dt
			cfg.SampleEvery = 1000

			start := time.Now()
			result, err := experiment.Run(cmd.Context(), registry, cfg, nil)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%s\t%.4fs\t%d\t%v\t%.0f\t%s\n",
				name, dt, result.StepsTaken, elapsed, float64(result.StepsTaken)/elapsed.Seconds(), result.Outcome)
		}
	}
	return w.Flush()
}
