package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	ossignal "os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/filtvec/internal/metrics"
	"github.com/san-kum/filtvec/internal/playback"
	"github.com/san-kum/filtvec/internal/series"
	"github.com/san-kum/filtvec/internal/signal"
	"github.com/san-kum/filtvec/internal/storage"
	"github.com/san-kum/filtvec/internal/viz"
)

func runPlayback(cmd *cobra.Command, args []string) error {
	source := ""
	if len(args) > 0 {
		source = args[0]
	}
	cfg, err := resolveConfig(cmd, source)
	if err != nil {
		return err
	}

	src, err := buildSource(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := playback.New(slog.Default().With("source", cfg.Source))
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}

	fmt.Printf("running %s (dim %d, %.0f fps, delay %.3fs)...\n", cfg.Source, src.Dim(), cfg.FrameRate, cfg.Delay)
	start := time.Now()

	result, err := runner.Run(ctx, src, cfg.Playback())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunInfo{
		Source:   cfg.Source,
		Seed:     cfg.Seed,
		Playback: cfg.Playback(),
		Compress: cfg.Compress,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("events: %d (dropped %d)\n", len(result.Events), result.Dropped)
	fmt.Printf("frames: %d\n", len(result.Frames))
	fmt.Printf("peak retained: %d\n", result.PeakRetained)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	source := ""
	if len(args) > 0 {
		source = args[0]
	}

	vcfg := viz.DefaultConfig()
	if source == "mouse" {
		if cmd.Flags().Changed("fps") {
			vcfg.FrameRate = frameRate
		}
		if cmd.Flags().Changed("delay") {
			vcfg.Delay = delay
		}
		m, err := viz.NewMouseModel(vcfg)
		if err != nil {
			return err
		}
		return viz.Run(m)
	}

	cfg, err := resolveConfig(cmd, source)
	if err != nil {
		return err
	}
	if _, err := buildSource(cfg); err != nil {
		return err
	}

	vcfg.FrameRate = cfg.FrameRate
	vcfg.Delay = cfg.Delay
	vcfg.Extent = cfg.Signal.Amplitude * 1.2
	m, err := viz.NewSourceModel(cfg.Source, func() (signal.Source, error) { return buildSource(cfg) }, vcfg)
	if err != nil {
		return err
	}
	return viz.Run(m)
}

func evalEvents(cmd *cobra.Command, args []string) error {
	events, dim, err := readEventsFile(args[0])
	if err != nil {
		return err
	}

	s, err := series.New(series.WithDimension(dim))
	if err != nil {
		return err
	}
	for _, e := range events {
		if err := e.Apply(s); err != nil {
			return fmt.Errorf("event at t=%.4f: %w", e.T, err)
		}
	}
	if evalFlush >= 0 {
		s.Flush(evalFlush)
	}

	fmt.Printf("dim: %d, samples: %d, dropped: %d, last t: %g, stable: %v\n\n",
		s.Dim(), s.Len(), s.Dropped(), s.LastT(), s.Stable())

	at := evalAt
	if len(at) == 0 {
		at = []float64{s.LastT()}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T\tCURVE\tDCURVE")
	var curve, dcurve []float64
	for _, t := range at {
		curve = s.AppendCurve(curve[:0], t)
		dcurve = s.AppendDCurve(dcurve[:0], t)
		fmt.Fprintf(w, "%g\t%s\t%s\n", t, joinFloats(curve), joinFloats(dcurve))
	}
	return w.Flush()
}

func benchSeries(cmd *cobra.Command, args []string) error {
	if benchN <= 0 {
		return fmt.Errorf("--ops must be positive")
	}

	fmt.Printf("benchmarking series, %d ops per row\n\n", benchN)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DIM\tOP\tTIME\tNS/OP\tOPS/SEC")

	for dim := 1; dim <= series.MaxDim; dim++ {
		s, err := series.New(series.WithDimension(dim))
		if err != nil {
			return err
		}
		v := make([]float64, dim)

		start := time.Now()
		for i := 1; i <= benchN; i++ {
			t := float64(i) * 1e-3
			for j := range v {
				v[j] = t * float64(j+1)
			}
			if err := s.Push(t, v...); err != nil {
				return err
			}
		}
		benchRow(w, dim, "push", time.Since(start))

		last := s.LastT()
		start = time.Now()
		for i := 0; i < benchN; i++ {
			s.Curve(last * float64(i) / float64(benchN))
		}
		benchRow(w, dim, "curve", time.Since(start))

		start = time.Now()
		for i := 0; i < benchN; i++ {
			s.DCurve(last * float64(i) / float64(benchN))
		}
		benchRow(w, dim, "dcurve", time.Since(start))

		start = time.Now()
		s.Flush(last)
		benchRow(w, dim, "flush", time.Since(start))
	}

	return w.Flush()
}

func benchRow(w *tabwriter.Writer, dim int, op string, elapsed time.Duration) {
	n := benchN
	if op == "flush" {
		n = 1
	}
	perOp := float64(elapsed.Nanoseconds()) / float64(n)
	fmt.Fprintf(w, "%d\t%s\t%v\t%.1f\t%.0f\n", dim, op, elapsed, perOp, float64(n)/elapsed.Seconds())
}

func joinFloats(v []float64) string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = fmt.Sprintf("%.6g", c)
	}
	return strings.Join(parts, " ")
}
