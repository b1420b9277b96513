package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/filtvec/internal/config"
	"github.com/san-kum/filtvec/internal/signal"
)

var (
	dataDir string
	verbose bool
	// Run configuration, applied over --preset and --config
	configFile string
	preset     string
	dimension  int
	duration   float64
	frameRate  float64
	delay      float64
	flushLag   float64
	seed       int64
	interval   float64
	jitter     float64
	amplitude  float64
	frequency  float64
	dropRate   float64
	compress   bool
	eventsFile string
	// Inspection
	xAxis     int
	yAxis     int
	outFile   string
	velocity  bool
	evalAt    []float64
	evalFlush float64
	benchN    int
	// Sweep
	sweepDelays  []float64
	sweepLags    []float64
	sweepRates   []float64
	sweepSeeds   int
	sweepMetric  string
	sweepWorkers int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "filtvec",
		Short:         "smooth irregular vector input into a differentiable curve",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(newLogger(verbose))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".filtvec", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	runCmd := &cobra.Command{
		Use:   "run [source]",
		Short: "feed a source through a series and record the rendered frames",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlayback,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&compress, "compress", false, "store frames zstd compressed")
	runCmd.Flags().StringVar(&eventsFile, "events", "", "event log (csv) for the replay source")

	liveCmd := &cobra.Command{
		Use:   "live [source|mouse]",
		Short: "render a source, or the mouse, live in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().StringVar(&eventsFile, "events", "", "event log (csv) for the replay source")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the smoothed curve of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&velocity, "velocity", false, "plot the derivative instead of the value")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "speed spectrum of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "smoothed path against raw samples in a plane",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "component for the x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "component for the y-axis")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run frames to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the smoothed path and raw samples to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&xAxis, "x-axis", 0, "component for the x-axis")
	exportSVGCmd.Flags().IntVar(&yAxis, "y-axis", 1, "component for the y-axis")

	evalCmd := &cobra.Command{
		Use:   "eval [events.csv]",
		Short: "build a series from an event log and query it",
		Args:  cobra.ExactArgs(1),
		RunE:  evalEvents,
	}
	evalCmd.Flags().Float64SliceVar(&evalAt, "at", nil, "query times (comma separated)")
	evalCmd.Flags().Float64Var(&evalFlush, "flush", -1, "flush history before this time first (negative: no flush)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark appends and queries per dimension",
		Args:  cobra.NoArgs,
		RunE:  benchSeries,
	}
	benchCmd.Flags().IntVar(&benchN, "ops", 200000, "operations per measurement")

	sweepCmd := &cobra.Command{
		Use:   "sweep [source]",
		Short: "grid search render delay, flush lag and frame rate over several seeds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&sweepDelays, "delays", []float64{0, 0.02, 0.05, 0.1}, "render delays to try")
	sweepCmd.Flags().Float64SliceVar(&sweepLags, "flush-lags", nil, "flush lags to try")
	sweepCmd.Flags().Float64SliceVar(&sweepRates, "frame-rates", nil, "frame rates to try")
	sweepCmd.Flags().IntVar(&sweepSeeds, "seeds", 4, "sources per grid point")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "smoothness", "metric to minimise")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "parallel playbacks (default GOMAXPROCS)")

	presetsCmd := &cobra.Command{
		Use:   "presets [source]",
		Short: "list available presets for a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for source: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	sourcesCmd := &cobra.Command{
		Use:   "sources",
		Short: "list input sources",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range signal.NewRegistry().List() {
				fmt.Println(name)
			}
			fmt.Println("mouse (live only)")
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, phaseCmd, exportCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, evalCmd, benchCmd, sweepCmd, presetsCmd, sourcesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func addRunFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.IntVar(&dimension, "dim", def.Dimension, "components per sample (1-4)")
	f.Float64Var(&duration, "time", def.Duration, "duration in seconds")
	f.Float64Var(&frameRate, "fps", def.FrameRate, "render frame rate")
	f.Float64Var(&delay, "delay", def.Delay, "render delay behind the newest input, seconds")
	f.Float64Var(&flushLag, "flush-lag", def.FlushLag, "history kept behind the display time, seconds")
	f.Int64Var(&seed, "seed", def.Seed, "random seed")
	f.Float64Var(&interval, "interval", def.Signal.Interval, "mean input interval, seconds")
	f.Float64Var(&jitter, "jitter", def.Signal.Jitter, "input interval jitter fraction")
	f.Float64Var(&amplitude, "amplitude", def.Signal.Amplitude, "signal amplitude")
	f.Float64Var(&frequency, "freq", def.Signal.Frequency, "signal frequency, Hz")
	f.Float64Var(&dropRate, "drop", def.Signal.DropRate, "probability an input tick is idle")
}

// resolveConfig builds the run configuration: preset, then config file,
// then explicitly set flags. source overrides the configured source when
// not empty.
func resolveConfig(cmd *cobra.Command, source string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		name := source
		if name == "" {
			name = cfg.Source
		}
		p := config.GetPreset(name, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if source != "" {
		cfg.Source = source
	}

	flags := cmd.Flags()
	if flags.Changed("dim") {
		cfg.Dimension = dimension
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("fps") {
		cfg.FrameRate = frameRate
	}
	if flags.Changed("delay") {
		cfg.Delay = delay
	}
	if flags.Changed("flush-lag") {
		cfg.FlushLag = flushLag
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("interval") {
		cfg.Signal.Interval = interval
	}
	if flags.Changed("jitter") {
		cfg.Signal.Jitter = jitter
	}
	if flags.Changed("amplitude") {
		cfg.Signal.Amplitude = amplitude
	}
	if flags.Changed("freq") {
		cfg.Signal.Frequency = frequency
	}
	if flags.Changed("drop") {
		cfg.Signal.DropRate = dropRate
	}
	if flags.Lookup("compress") != nil && flags.Changed("compress") {
		cfg.Compress = compress
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildSource resolves the configured source. The replay source reads its
// events and dimension from --events.
func buildSource(cfg *config.Config) (signal.Source, error) {
	params := cfg.SignalParams()
	if cfg.Source == "replay" {
		if eventsFile == "" {
			return nil, fmt.Errorf("replay needs --events")
		}
		events, dim, err := readEventsFile(eventsFile)
		if err != nil {
			return nil, err
		}
		params.Dim = dim
		params.Events = events
	}
	return signal.NewRegistry().Get(cfg.Source, params)
}

func readEventsFile(path string) ([]signal.Event, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return signal.ReadEvents(f)
}
