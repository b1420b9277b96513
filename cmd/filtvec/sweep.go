package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	ossignal "os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/filtvec/internal/metrics"
	"github.com/san-kum/filtvec/internal/signal"
	"github.com/san-kum/filtvec/internal/sweep"
)

func runSweep(cmd *cobra.Command, args []string) error {
	source := ""
	if len(args) > 0 {
		source = args[0]
	}
	cfg, err := resolveConfig(cmd, source)
	if err != nil {
		return err
	}
	if _, err := buildSource(cfg); err != nil {
		return err
	}

	params := make([]string, 0, 3)
	ranges := make([][]float64, 0, 3)
	for _, p := range []struct {
		name   string
		values []float64
	}{
		{"delay", sweepDelays},
		{"flush_lag", sweepLags},
		{"frame_rate", sweepRates},
	} {
		if len(p.values) > 0 {
			params = append(params, p.name)
			ranges = append(ranges, p.values)
		}
	}
	grid, err := sweep.NewGrid(params, ranges)
	if err != nil {
		return err
	}

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// keep per-trial playback logs out of the way unless asked for
	logger := slog.Default()
	if !verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}

	r := &sweep.Runner{
		NewSource: func(seed int64) (signal.Source, error) {
			c := *cfg
			c.Seed = seed
			return buildSource(&c)
		},
		Metrics:   metrics.Defaults,
		Base:      cfg.Playback(),
		Seeds:     sweepSeeds,
		SeedStart: cfg.Seed,
		Workers:   sweepWorkers,
		Logger:    logger,
	}

	fmt.Printf("sweeping %s over %s, %d seeds...\n\n", cfg.Source, strings.Join(params, ", "), max(sweepSeeds, 1))
	trials, err := r.Run(ctx, grid)
	if err != nil {
		return err
	}

	summaries := sweep.Summarize(trials, sweepMetric)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\tRUNS\tFAILED\n", strings.ToUpper(strings.Join(params, "\t")), strings.ToUpper(sweepMetric))
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%.6f\t%d\t%d\n", formatPoint(params, s.Params), s.Mean, s.Runs, s.Failed)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	best, ok := sweep.Best(summaries)
	if !ok {
		return fmt.Errorf("every trial failed")
	}
	fmt.Printf("\nbest:")
	for _, p := range params {
		fmt.Printf(" %s=%g", p, best.Params[p])
	}
	fmt.Printf(" (%s %.6f)\n", sweepMetric, best.Mean)
	return nil
}

func formatPoint(params []string, point map[string]float64) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%g", point[p])
	}
	return strings.Join(parts, "\t")
}
