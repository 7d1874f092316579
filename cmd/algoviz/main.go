package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/automation"
	"github.com/san-kum/algoviz/internal/compare"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/export"
	"github.com/san-kum/algoviz/internal/kvstore"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/session"
	"github.com/san-kum/algoviz/internal/storage"
	"github.com/san-kum/algoviz/internal/trace"
	"github.com/san-kum/algoviz/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	theme      string

	input      string
	size       int
	seed       int64
	preset     string
	speed      int
	capacity   float64
	noSave     bool
	explain    bool
	animate    bool
	clearState bool

	numRuns int
	output  string
	stepIdx int

	minSize   int
	maxSize   int
	numPoints int
	sweepSeed int64
	metric    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "algoviz",
		Short:         "step-by-step sorting and greedy algorithm player",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, "")
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&theme, "theme", viz.ThemeNames()[0], fmt.Sprintf("colour theme %v", viz.ThemeNames()))

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "record an algorithm's full history and save it as a run",
		Args:  cobra.ExactArgs(1),
		RunE:  runAlgorithm,
	}
	problemFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not save the run")
	runCmd.Flags().BoolVar(&explain, "explain", false, "print every step's explanation")
	runCmd.Flags().BoolVar(&animate, "animate", false, "print the steps at playback speed")
	runCmd.Flags().IntVar(&speed, "speed", config.DefaultSpeed, "playback speed for --animate (1-100)")

	playCmd := &cobra.Command{
		Use:   "play [algorithm]",
		Short: "open the interactive player on one algorithm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, args[0])
		},
	}
	problemFlags(playCmd)
	playCmd.Flags().IntVar(&speed, "speed", config.DefaultSpeed, "playback speed (1-100)")
	playCmd.Flags().StringVar(&theme, "theme", viz.ThemeNames()[0], fmt.Sprintf("colour theme %v", viz.ThemeNames()))

	listAlgCmd := &cobra.Command{
		Use:   "list-algorithms",
		Short: "list available algorithms",
		RunE:  listAlgorithms,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [algorithm] [algorithm] ...",
		Short: "time the plain variants of several algorithms on one input",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareAlgorithms,
	}
	problemFlags(compareCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [algorithm]",
		Short: "average step metrics over many random inputs",
		Args:  cobra.ExactArgs(1),
		RunE:  benchAlgorithm,
	}
	problemFlags(benchCmd)
	benchCmd.Flags().IntVar(&numRuns, "runs", 20, "number of seeds")

	presetsCmd := &cobra.Command{
		Use:   "presets [algorithm]",
		Short: "list available presets for an algorithm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for algorithm: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, name := range presets {
				p := config.GetPreset(args[0], name)
				desc := p.Input
				if desc == "" {
					desc = fmt.Sprintf("random, size %d, seed %d", p.Size, p.Seed)
				}
				fmt.Printf("  %-14s %s\n", name, desc)
			}
			return nil
		},
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&explain, "explain", false, "print every step's explanation")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's step scalars",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run with its full history to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's steps to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render one step of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	exportSVGCmd.Flags().IntVar(&stepIdx, "step", -1, "step to render, -1 for the last")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted list of algorithms from YAML",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [algorithm]",
		Short: "show how step counts grow with input size",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&minSize, "min", 4, "smallest input size")
	sweepCmd.Flags().IntVar(&maxSize, "max", 64, "largest input size")
	sweepCmd.Flags().IntVar(&numPoints, "points", 8, "number of sizes")
	sweepCmd.Flags().Int64Var(&sweepSeed, "seed", 1, "random seed")
	sweepCmd.Flags().StringVar(&metric, "metric", "steps", "metric to chart")

	stateCmd := &cobra.Command{
		Use:   "state",
		Short: "show or clear the player state saved between sessions",
		RunE:  showState,
	}
	stateCmd.Flags().BoolVar(&clearState, "clear", false, "delete the saved state")

	rootCmd.AddCommand(runCmd, playCmd, listAlgCmd, compareCmd, benchCmd, presetsCmd, runsCmd, showCmd,
		plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, scenarioCmd, sweepCmd, stateCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func problemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&input, "input", "", `problem input: "5, 3, 8" or a YAML/JSON record list`)
	cmd.Flags().IntVar(&size, "size", config.DefaultSize, "size of a generated problem")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&preset, "preset", "", "use a preset input")
	cmd.Flags().Float64Var(&capacity, "capacity", 0, "knapsack capacity for generated problems")
}

// loadConfig layers the config file, then the preset, then any flag the
// user actually set.
func loadConfig(cmd *cobra.Command, algorithm string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if algorithm != "" {
		cfg.Algorithm = algorithm
	}

	flags := cmd.Flags()
	if preset != "" {
		p := config.GetPreset(cfg.Algorithm, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Algorithm))
		}
		cfg.Input, cfg.Size, cfg.Seed = p.Input, p.Size, p.Seed
	}

	if flags.Changed("data") || configFile == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("input") {
		cfg.Input = input
	}
	if flags.Changed("size") {
		cfg.Size = size
	}
	if f := flags.Lookup("seed"); f != nil && (f.Changed || cfg.Seed == 0) {
		cfg.Seed = seed
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("capacity") {
		cfg.Capacity = capacity
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, quiet bool) (*logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	dir := cfg.Log.Dir
	if quiet && dir == "" {
		dir = filepath.Join(cfg.DataDir, "logs")
	}
	return logging.New(logging.Config{
		Level:   level,
		LogDir:  dir,
		Service: "algoviz",
		JSON:    cfg.Log.JSON,
		Quiet:   quiet,
	}), nil
}

func experimentConfig(cfg *config.Config) experiment.Config {
	return experiment.Config{
		Algorithm: cfg.Algorithm,
		Input:     cfg.Input,
		Size:      cfg.Size,
		Seed:      cfg.Seed,
		Values:    problem.Range{Min: cfg.ValueMin, Max: cfg.ValueMax},
		Capacity:  cfg.Capacity,
	}
}

func runTUI(cmd *cobra.Command, algorithm string) error {
	cfg, err := loadConfig(cmd, algorithm)
	if err != nil {
		return err
	}
	if _, ok := viz.ThemeByName(theme); !ok {
		return fmt.Errorf("unknown theme: %s (available: %v)", theme, viz.ThemeNames())
	}
	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer log.Close()

	opts := viz.Options{
		Theme:     theme,
		Registry:  experiment.NewRegistry(),
		Log:       log,
		Speed:     cfg.Speed,
		Timing:    player.Timing{MinDelay: cfg.MinDelay(), MaxDelay: cfg.MaxDelay()},
		Size:      cfg.Size,
		Seed:      cfg.Seed,
		Values:    problem.Range{Min: cfg.ValueMin, Max: cfg.ValueMax},
		Capacity:  cfg.Capacity,
		Algorithm: algorithm,
		Input:     cfg.Input,
	}

	kv, err := kvstore.Open(kvstore.Config{
		Path:       filepath.Join(cfg.DataDir, "state"),
		SyncWrites: true,
		Logger:     log.Slog(),
	})
	if err != nil {
		log.Warn("state store unavailable, continuing without it", "error", err)
	} else {
		defer kv.Close()
		opts.Store = kv
	}

	log.Info("starting player", "algorithm", algorithm, "data_dir", cfg.DataDir)
	return viz.Run(cmd.Context(), opts)
}

func printStep(i int, s trace.Snapshot) {
	fmt.Printf("%4d %-10s %s\n", i, s.Label, s.Explanation)
}

// playSteps prints a history one step at a time on the player's clock.
func playSteps(ctx context.Context, h *trace.History, cfg *config.Config) error {
	if h.Len() == 0 {
		return nil
	}
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := player.NewLoop()
	stopped := make(chan error, 1)
	go func() { stopped <- loop.Run(loopCtx) }()

	finished := make(chan struct{})
	err := loop.Do(loopCtx, func() {
		p := player.New(h, loop.Scheduler(),
			player.WithSpeed(cfg.Speed),
			player.WithTiming(player.Timing{MinDelay: cfg.MinDelay(), MaxDelay: cfg.MaxDelay()}),
			player.WithObserver(func(f player.Frame) {
				if f.Index >= 0 {
					printStep(f.Index, f.Snapshot)
				}
				if f.Status == player.Finished {
					close(finished)
				}
			}),
		)
		p.Run()
	})
	if err != nil {
		return err
	}

	select {
	case <-finished:
	case <-ctx.Done():
	}
	cancel()
	<-stopped
	return ctx.Err()
}

func runAlgorithm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Close()

	registry := experiment.NewRegistry()
	alg, err := registry.Get(cfg.Algorithm)
	if err != nil {
		return err
	}

	exp := experiment.New(experimentConfig(cfg))
	if err := exp.Setup(alg, registry.DefaultMetrics(alg.Name)); err != nil {
		return err
	}

	log.Debug("running", "algorithm", alg.Name, "seed", cfg.Seed, "size", cfg.Size)
	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", alg.Title, alg.Visualizer)
	if text, err := problem.Format(result.Problem); err == nil {
		fmt.Printf("input: %s\n", strings.TrimSpace(text))
	}
	fmt.Printf("steps: %d\n", result.History.Len())
	fmt.Printf("completed in %v\n", result.Elapsed)
	if result.Outcome != nil {
		fmt.Printf("result: %s\n", result.Outcome.Summary())
	}

	switch {
	case animate:
		fmt.Println()
		if err := playSteps(cmd.Context(), result.History, cfg); err != nil {
			return err
		}
	case explain:
		fmt.Println()
		for i, s := range result.History.Snapshots {
			printStep(i, s)
		}
	}

	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	if noSave {
		return nil
	}
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(alg.Visualizer, result)
	if err != nil {
		return err
	}
	log.Info("run saved", "run_id", runID)
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func printMetrics(ms map[string]float64) {
	names := make([]string, 0, len(ms))
	for name := range ms {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %g\n", name, ms[name])
	}
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVISUALIZER\tINPUT\tTITLE\tPRESETS")
	for _, a := range registry.List("") {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.Name, a.Visualizer, a.Kind, a.Title, strings.Join(config.ListPresets(a.Name), ","))
	}
	return w.Flush()
}

func compareAlgorithms(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	registry := experiment.NewRegistry()
	funcs, err := registry.PlainFuncs(args...)
	if err != nil {
		return err
	}

	alg, err := registry.Get(args[0])
	if err != nil {
		return err
	}
	exp := experiment.New(experimentConfig(cfg))
	if err := exp.Setup(alg, nil); err != nil {
		return err
	}
	p, err := exp.Problem()
	if err != nil {
		return err
	}

	entries, err := compare.Run(cmd.Context(), funcs, p)
	if err != nil {
		return err
	}

	fmt.Printf("comparing %d algorithms on %d elements (seed %d)\n\n", len(entries), p.Len(), cfg.Seed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tALGORITHM\tTIME_MS\tRESULT")
	for i, e := range entries {
		summary := ""
		if e.Result != nil {
			summary = e.Result.Summary()
		}
		fmt.Fprintf(w, "%d\t%s\t%.3f\t%s\n", i+1, e.Name, e.Millis(), summary)
	}
	return w.Flush()
}

func benchAlgorithm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	if numRuns < 1 {
		return fmt.Errorf("--runs must be at least 1")
	}
	registry := experiment.NewRegistry()

	start := time.Now()
	results, err := experiment.NewEnsemble(registry, experimentConfig(cfg), numRuns, cfg.Seed).Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s: %d runs, size %d, seeds %d..%d\n\n", cfg.Algorithm, numRuns, cfg.Size, cfg.Seed, cfg.Seed+int64(numRuns)-1)
	mean := experiment.Mean(results)
	names := make([]string, 0, len(mean))
	for name := range mean {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tMIN\tMAX")
	for _, name := range names {
		lo, hi := results[0].Metrics[name], results[0].Metrics[name]
		for _, r := range results {
			lo = min(lo, r.Metrics[name])
			hi = max(hi, r.Metrics[name])
		}
		fmt.Fprintf(w, "%s\t%.2f\t%g\t%g\n", name, mean[name], lo, hi)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nwall time: %v\n", time.Since(start))
	return nil
}

func openRun(cfg *config.Config, ref string) (*storage.Store, string, error) {
	st := storage.New(cfg.DataDir)
	runID, err := st.Resolve(ref)
	if err != nil {
		return nil, "", err
	}
	return st, runID, nil
}

func showState(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	kv, err := kvstore.Open(kvstore.DefaultConfig(filepath.Join(cfg.DataDir, "state")))
	if err != nil {
		return err
	}
	defer kv.Close()

	ctx := cmd.Context()
	keys, err := kv.Keys(ctx, session.KeyPrefix)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		fmt.Println("no saved state")
		return nil
	}
	for _, k := range keys {
		if clearState {
			if err := kv.Delete(ctx, k); err != nil {
				return err
			}
			fmt.Printf("cleared %s\n", strings.TrimPrefix(k, session.KeyPrefix))
			continue
		}
		data, err := kv.Get(ctx, k)
		if err != nil {
			return err
		}
		fmt.Printf("%-8s %s\n", strings.TrimPrefix(k, session.KeyPrefix), data)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tSTEPS\tRESULT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Summary,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	st, runID, err := openRun(cfg, args[0])
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s (%s)\n", meta.Algorithm, meta.Visualizer)
	fmt.Printf("time: %s\n", meta.Timestamp.Format(time.RFC3339))
	fmt.Printf("seed: %d\n", meta.Seed)
	fmt.Printf("input: %s\n", strings.TrimSpace(meta.Input))
	fmt.Printf("steps: %d (%.3f ms)\n", meta.Steps, meta.ElapsedMs)
	fmt.Printf("result: %s\n", meta.Summary)
	fmt.Println("\nmetrics:")
	printMetrics(meta.Metrics)

	if !explain {
		return nil
	}
	rows, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}
	fmt.Println()
	for _, r := range rows {
		fmt.Printf("%4d %-10s %s\n", r.Step, r.Label, r.Explanation)
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	st, runID, err := openRun(cfg, args[0])
	if err != nil {
		return err
	}
	h, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}
	rows, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}
	if len(rows) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("steps: %d\n\n", len(rows))

	for _, name := range export.ScalarNames(h) {
		data := export.Series(rows, name)
		if len(data) < 2 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs step"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	st, runID, err := openRun(cfg, args[0])
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	h, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	d := export.Data{
		Algorithm: meta.Algorithm,
		Seed:      meta.Seed,
		Input:     meta.Input,
		Steps:     meta.Steps,
		Summary:   meta.Summary,
		Metrics:   meta.Metrics,
		History:   h,
	}
	if err := export.JSONFile(output, d); err != nil {
		return err
	}
	if output != "-" {
		fmt.Fprintf(os.Stderr, "exported %s to %s\n", runID, output)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	st, runID, err := openRun(cfg, args[0])
	if err != nil {
		return err
	}
	h, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	if output == "-" {
		return export.CSV(os.Stdout, h)
	}
	file, err := os.Create(output)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := export.CSV(file, h); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "exported %d steps to %s\n", h.Len(), output)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	st, runID, err := openRun(cfg, args[0])
	if err != nil {
		return err
	}
	h, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}
	i := stepIdx
	if i < 0 {
		i = h.Len() - 1
	}
	snap, err := h.At(i)
	if err != nil {
		return err
	}

	svg := export.SnapshotSVG(snap, 800, 400)
	if output == "-" {
		_, err := fmt.Print(svg)
		return err
	}
	if err := os.WriteFile(output, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "rendered step %d of %s to %s\n", i, runID, output)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Close()

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	r := &automation.Runner{Registry: experiment.NewRegistry(), Store: st, Log: log}
	results, err := r.RunScenario(cmd.Context(), sc)

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tALGORITHM\tSTEPS\tRESULT\tRUN")
	for _, sr := range results {
		summary := ""
		if sr.Result.Outcome != nil {
			summary = sr.Result.Outcome.Summary()
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", sr.Step, sr.Result.Algorithm, sr.Result.History.Len(), summary, sr.RunID)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	r := &automation.Runner{Registry: experiment.NewRegistry()}
	results, err := r.RunSweep(cmd.Context(), &automation.SizeSweep{
		Algorithm: cfg.Algorithm,
		MinSize:   minSize,
		MaxSize:   maxSize,
		NumSteps:  numPoints,
		Seed:      sweepSeed,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SIZE\tSTEPS\t%s\n", strings.ToUpper(metric))
	for _, sr := range results {
		fmt.Fprintf(w, "%d\t%d\t%g\n", sr.Size, sr.Steps, sr.Metrics[metric])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	data := automation.Column(results, metric)
	if len(data) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("%s vs size (%d..%d)", metric, minSize, maxSize)),
		))
	}
	return nil
}
