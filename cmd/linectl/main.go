package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/skarn/linectl/internal/analysis"
	"github.com/skarn/linectl/internal/config"
	"github.com/skarn/linectl/internal/controllers"
	"github.com/skarn/linectl/internal/drive"
	"github.com/skarn/linectl/internal/metrics"
	"github.com/skarn/linectl/internal/storage"
	"github.com/skarn/linectl/internal/track"
	"github.com/skarn/linectl/internal/tui"
	"github.com/skarn/linectl/internal/tune"
	"github.com/spf13/cobra"
)

var (
	dataDir       string
	dt            float64
	duration      float64
	seed          int64
	controller    string
	base          int
	gain          float64
	ki            float64
	kd            float64
	maxCorrection int
	outMin        int
	outMax        int
	noiseAmp      float64
	guardOn       bool
	guardDistance float64
	obstacleAt    float64
	configFile    string
	preset        string
	frameRate     int
	outFile       string
	ensembleRuns  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "linectl",
		Short: "differential drive control lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".linectl", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [course]",
		Short: "run a control loop on a simulated course",
		Args:  cobra.ExactArgs(1),
		RunE:  runLoop,
	}
	addLoopFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [course]",
		Short: "run with live terminal visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addLoopFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the error signal",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			return st.ExportJSON(args[0], os.Stdout)
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&outFile, "out", "", "output path (default <run_id>.csv)")

	benchCmd := &cobra.Command{
		Use:   "bench [course]",
		Short: "benchmark the control loop",
		Args:  cobra.ExactArgs(1),
		RunE:  benchLoop,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [course]",
		Short: "list available presets for a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for course: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	tuneCmd := &cobra.Command{
		Use:   "tune [course]",
		Short: "grid-search gain and correction limit on a course",
		Args:  cobra.ExactArgs(1),
		RunE:  tuneLoop,
	}
	tuneCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "cycle interval (s)")
	tuneCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	tuneCmd.Flags().IntVar(&base, "base", config.DefaultBase, "base speed")
	tuneCmd.Flags().IntVar(&outMin, "out-min", config.DefaultOutMin, "output range lower bound")
	tuneCmd.Flags().IntVar(&outMax, "out-max", config.DefaultOutMax, "output range upper bound")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [course]",
		Short: "run many seeds in parallel and summarize metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnsemble,
	}
	addLoopFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&ensembleRuns, "runs", 16, "number of seeds")

	coursesCmd := &cobra.Command{
		Use:   "courses",
		Short: "list built-in courses",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range track.Names() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportCmd, exportJSONCmd, exportCSVCmd, benchCmd, tuneCmd, ensembleCmd, presetsCmd, coursesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addLoopFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "cycle interval (s)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&controller, "controller", "differential", "controller (differential|pid|fixed)")
	cmd.Flags().IntVar(&base, "base", config.DefaultBase, "base speed")
	cmd.Flags().Float64Var(&gain, "gain", config.DefaultGain, "proportional gain")
	cmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "integral gain (pid)")
	cmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "derivative gain (pid)")
	cmd.Flags().IntVar(&maxCorrection, "max-correction", config.DefaultMaxCorrection, "correction limit")
	cmd.Flags().IntVar(&outMin, "out-min", config.DefaultOutMin, "output range lower bound")
	cmd.Flags().IntVar(&outMax, "out-max", config.DefaultOutMax, "output range upper bound")
	cmd.Flags().Float64Var(&noiseAmp, "noise", 0, "sensor noise amplitude (counts)")
	cmd.Flags().BoolVar(&guardOn, "guard", false, "enable obstacle guard")
	cmd.Flags().Float64Var(&guardDistance, "guard-distance", config.DefaultGuardDistance, "guard stop distance (cm)")
	cmd.Flags().Float64Var(&obstacleAt, "obstacle", 0, "place an obstacle at course x (cm, 0 = none)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig applies preset < config file < flag precedence onto the
// package-level flag variables.
func resolveConfig(cmd *cobra.Command, course string) error {
	if preset != "" {
		cfg := config.GetPreset(course, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(course))
		}
		dt = cfg.Dt
		duration = cfg.Duration
		if cfg.Controller != "" {
			controller = cfg.Controller
		}
		base = cfg.Drive.Base
		gain = cfg.Drive.Gain
		ki = cfg.Drive.Ki
		kd = cfg.Drive.Kd
		maxCorrection = cfg.Drive.MaxCorrection
		outMin = cfg.Drive.OutMin
		outMax = cfg.Drive.OutMax
		if cfg.Guard.Enabled {
			guardOn = true
			guardDistance = cfg.Guard.Distance
		}
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("dt") {
			dt = cfg.Dt
		}
		if !cmd.Flags().Changed("time") {
			duration = cfg.Duration
		}
		if !cmd.Flags().Changed("controller") {
			controller = cfg.Controller
		}
		if !cmd.Flags().Changed("base") {
			base = cfg.Drive.Base
		}
		if !cmd.Flags().Changed("gain") {
			gain = cfg.Drive.Gain
		}
		if !cmd.Flags().Changed("ki") {
			ki = cfg.Drive.Ki
		}
		if !cmd.Flags().Changed("kd") {
			kd = cfg.Drive.Kd
		}
		if !cmd.Flags().Changed("max-correction") {
			maxCorrection = cfg.Drive.MaxCorrection
		}
		if !cmd.Flags().Changed("out-min") {
			outMin = cfg.Drive.OutMin
		}
		if !cmd.Flags().Changed("out-max") {
			outMax = cfg.Drive.OutMax
		}
		if !cmd.Flags().Changed("noise") {
			noiseAmp = cfg.Sensor.NoiseAmp
		}
		if !cmd.Flags().Changed("guard") && cfg.Guard.Enabled {
			guardOn = true
		}
		if !cmd.Flags().Changed("guard-distance") && cfg.Guard.Distance > 0 {
			guardDistance = cfg.Guard.Distance
		}
		if cfg.Seed != 0 && !cmd.Flags().Changed("seed") {
			seed = cfg.Seed
		}
	}

	return nil
}

func buildRobot(course *track.Course) *track.Robot {
	params := track.DefaultParams()
	params.Dt = dt
	params.NoiseAmp = noiseAmp
	params.Seed = seed

	robot := track.NewRobot(course, params)
	if obstacleAt > 0 {
		robot.PlaceObstacle(track.Point{X: obstacleAt})
	}
	return robot
}

func buildController(ranger drive.RangeFinder) (drive.Controller, error) {
	var ctrl drive.Controller
	switch controller {
	case "differential":
		ctrl = controllers.NewDifferential(base, gain, maxCorrection, outMin, outMax)
	case "pid":
		ctrl = controllers.NewPID(base, gain, ki, kd, maxCorrection, outMin, outMax)
	case "fixed":
		ctrl = controllers.NewFixed(base, base)
	default:
		return nil, fmt.Errorf("unknown controller: %s", controller)
	}

	if guardOn {
		ctrl = controllers.NewGuard(ctrl, ranger, guardDistance)
	}
	return ctrl, nil
}

func controllerParams() map[string]float64 {
	return map[string]float64{
		"base":           float64(base),
		"gain":           gain,
		"ki":             ki,
		"kd":             kd,
		"max_correction": float64(maxCorrection),
		"out_min":        float64(outMin),
		"out_max":        float64(outMax),
	}
}

func runLoop(cmd *cobra.Command, args []string) error {
	courseName := args[0]

	course := track.ByName(courseName)
	if course == nil {
		return fmt.Errorf("unknown course: %s (available: %v)", courseName, track.Names())
	}

	if err := resolveConfig(cmd, courseName); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	robot := buildRobot(course)
	ctrl, err := buildController(robot)
	if err != nil {
		return err
	}

	loop := drive.New(robot, robot, ctrl)
	loop.AddMetric(metrics.NewControlEffort())
	loop.AddMetric(metrics.NewSaturation(outMin, outMax))
	loop.AddMetric(metrics.NewRMSError())

	fmt.Printf("running %s with %s controller...\n", courseName, controller)
	start := time.Now()

	result, err := loop.Run(context.Background(), drive.Config{Dt: dt, Duration: duration, Seed: seed})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(courseName, controller, dt, duration, seed, controllerParams(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("cycles: %d\n", result.Cycles)
	fmt.Printf("final offset: %+.1f cm\n", robot.Offset())
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	courseName := args[0]

	course := track.ByName(courseName)
	if course == nil {
		return fmt.Errorf("unknown course: %s (available: %v)", courseName, track.Names())
	}

	if err := resolveConfig(cmd, courseName); err != nil {
		return err
	}

	params := track.DefaultParams()
	params.Dt = dt
	params.NoiseAmp = noiseAmp
	params.Seed = seed

	robot := track.NewRobot(course, params)
	if obstacleAt > 0 {
		robot.PlaceObstacle(track.Point{X: obstacleAt})
	}

	ctrl, err := buildController(robot)
	if err != nil {
		return err
	}

	m := tui.NewModel(course, robot, ctrl, params, frameRate)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
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
	fmt.Fprintln(w, "ID\tCOURSE\tTIME\tDURATION\tDT\tCTRL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\n",
			run.ID,
			run.Course,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Controller,
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

	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(trace.Readings) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("course: %s\n", meta.Course)
	fmt.Printf("samples: %d\n\n", len(trace.Readings))

	series := []struct {
		caption string
		data    func(i int) float64
	}{
		{"error (left - right)", func(i int) float64 { return float64(trace.Readings[i].Error()) }},
		{"left reading", func(i int) float64 { return float64(trace.Readings[i].Left) }},
		{"right reading", func(i int) float64 { return float64(trace.Readings[i].Right) }},
		{"left command", func(i int) float64 { return float64(trace.Commands[i].Left) }},
		{"right command", func(i int) float64 { return float64(trace.Commands[i].Right) }},
	}

	for _, s := range series {
		data := make([]float64, len(trace.Readings))
		for i := range data {
			data[i] = s.data(i)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
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

	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(trace.Readings) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("course: %s\n\n", meta.Course)

	padded := analysis.PadPow2(trace.Errors())
	ps := analysis.PowerSpectrum(padded)

	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (error)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(ps, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	out := outFile
	if out == "" {
		out = runID + ".csv"
	}

	st := storage.New(dataDir)
	if err := st.ExportCSV(runID, out); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", out)
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	courseName := args[0]

	course := track.ByName(courseName)
	if course == nil {
		return fmt.Errorf("unknown course: %s (available: %v)", courseName, track.Names())
	}

	if err := resolveConfig(cmd, courseName); err != nil {
		return err
	}

	switch controller {
	case "differential", "pid", "fixed":
	default:
		return fmt.Errorf("unknown controller: %s", controller)
	}

	factory := func(runSeed int64) (*drive.Loop, drive.Config) {
		params := track.DefaultParams()
		params.Dt = dt
		params.NoiseAmp = noiseAmp
		params.Seed = runSeed

		robot := track.NewRobot(course, params)
		if obstacleAt > 0 {
			robot.PlaceObstacle(track.Point{X: obstacleAt})
		}

		ctrl, _ := buildController(robot)

		loop := drive.New(robot, robot, ctrl)
		loop.AddMetric(metrics.NewControlEffort())
		loop.AddMetric(metrics.NewSaturation(outMin, outMax))
		loop.AddMetric(metrics.NewRMSError())

		return loop, drive.Config{Dt: dt, Duration: duration}
	}

	ensemble := drive.NewEnsemble(factory, ensembleRuns, seed)

	fmt.Printf("running %d seeds on %s...\n", ensembleRuns, courseName)
	start := time.Now()

	results, err := ensemble.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tMIN\tMAX")
	for name, s := range drive.Summarize(results) {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\n", name, s.Mean, s.Min, s.Max)
	}
	return w.Flush()
}

func tuneLoop(cmd *cobra.Command, args []string) error {
	courseName := args[0]

	course := track.ByName(courseName)
	if course == nil {
		return fmt.Errorf("unknown course: %s (available: %v)", courseName, track.Names())
	}

	trial := func(ctx context.Context, params map[string]float64) (map[string]float64, error) {
		robotParams := track.DefaultParams()
		robotParams.Dt = dt

		robot := track.NewRobot(course, robotParams)
		ctrl := controllers.NewDifferential(base, params["gain"], int(params["max_correction"]), outMin, outMax)

		loop := drive.New(robot, robot, ctrl)
		loop.AddMetric(metrics.NewRMSError())
		loop.AddMetric(metrics.NewControlEffort())

		result, err := loop.Run(ctx, drive.Config{Dt: dt, Duration: duration, Seed: 42})
		if err != nil {
			return nil, err
		}

		// Penalize runs that end far off the line; a low-error run that
		// wandered away is not a tuning win.
		m := result.Metrics
		m["rms_error"] += 10 * robot.Offset() * robot.Offset()
		return m, nil
	}

	search := tune.NewGridSearch(
		[]string{"gain", "max_correction"},
		[][]float64{
			tune.Range(0.05, 0.5, 10),
			{30, 60, 90, 120},
		},
	)

	fmt.Printf("tuning on %s (%d combinations)...\n", courseName, 10*4)
	start := time.Now()

	bestParams, bestVal, err := search.Search(context.Background(), trial, "rms_error")
	if err != nil {
		return err
	}

	fmt.Printf("done in %v\n\n", time.Since(start))
	if bestParams == nil {
		return fmt.Errorf("no successful trials")
	}

	fmt.Printf("best rms_error: %.3f\n", bestVal)
	fmt.Printf("  gain: %.3f\n", bestParams["gain"])
	fmt.Printf("  max_correction: %.0f\n", bestParams["max_correction"])
	return nil
}

func benchLoop(cmd *cobra.Command, args []string) error {
	courseName := args[0]

	course := track.ByName(courseName)
	if course == nil {
		return fmt.Errorf("unknown course: %s (available: %v)", courseName, track.Names())
	}

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{0.002, 0.02, 0.1}

	fmt.Printf("benchmarking %s\n\n", courseName)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tCYCLES\tTIME\tCYCLES/SEC")

	for _, dur := range durations {
		for _, stepDt := range dts {
			params := track.DefaultParams()
			params.Dt = stepDt

			robot := track.NewRobot(course, params)
			ctrl := controllers.NewDifferential(config.DefaultBase, config.DefaultGain,
				config.DefaultMaxCorrection, config.DefaultOutMin, config.DefaultOutMax)

			loop := drive.New(robot, robot, ctrl)

			start := time.Now()
			result, err := loop.Run(context.Background(), drive.Config{Dt: stepDt, Duration: dur, Seed: 42})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			cyclesPerSec := float64(result.Cycles) / elapsed.Seconds()

			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, stepDt, result.Cycles, elapsed, cyclesPerSec)
		}
	}

	return w.Flush()
}
