package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/filtvec/internal/analysis"
	"github.com/san-kum/filtvec/internal/export"
	"github.com/san-kum/filtvec/internal/playback"
	"github.com/san-kum/filtvec/internal/series"
	"github.com/san-kum/filtvec/internal/signal"
	"github.com/san-kum/filtvec/internal/storage"
)

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
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tDIM\tDURATION\tFPS\tDELAY\tEVENTS\tDROPPED\tPEAK")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.0f\t%.3fs\t%d\t%d\t%d\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Dimension,
			run.Duration,
			run.FrameRate,
			run.Delay,
			run.Events,
			run.Dropped,
			run.PeakRetained,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []playback.Frame, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("run %s has no frames", runID)
	}
	return meta, frames, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("source: %s\n", meta.Source)
	fmt.Printf("frames: %d\n\n", len(frames))

	what := "value"
	if velocity {
		what = "velocity"
	}

	data := make([][]float64, meta.Dimension)
	for c := range data {
		data[c] = make([]float64, len(frames))
		for i, f := range frames {
			row := f.Value
			if velocity {
				row = f.Velocity
			}
			data[c][i] = row[c]
		}
	}

	colors := []asciigraph.AnsiColor{asciigraph.Green, asciigraph.Yellow, asciigraph.Cyan, asciigraph.Magenta}
	graph := asciigraph.PlotMany(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.SeriesColors(colors[:len(data)]...),
		asciigraph.Caption(fmt.Sprintf("%s, one line per component", what)),
	)
	fmt.Println(graph)
	fmt.Println()

	retained := make([]float64, len(frames))
	for i, f := range frames {
		retained[i] = float64(f.Retained)
	}
	fmt.Println(asciigraph.Plot(retained,
		asciigraph.Height(5),
		asciigraph.Width(80),
		asciigraph.Caption("retained samples"),
	))

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("speed spectrum: %s\n", meta.ID)
	fmt.Printf("source: %s\n\n", meta.Source)

	vel := make([][]float64, len(frames))
	for i, f := range frames {
		vel[i] = f.Velocity
	}
	speeds := analysis.Speeds(vel)

	ps := analysis.PowerSpectrum(speeds)
	plotData := ps[1:]
	if len(plotData) > 4 {
		plotData = plotData[:len(plotData)/4]
	}
	if len(plotData) > 1 {
		fmt.Println(asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (speed, dc removed)"),
		))
		fmt.Println()
	}

	freq := analysis.DominantFrequency(speeds, meta.FrameRate)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	if len(meta.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for name, val := range meta.Metrics {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
	}
	return nil
}

// rawPositions replays events into a fresh series and returns the absolute
// value of every accepted sample, so move deltas come out as positions.
func rawPositions(events []signal.Event, dim int) ([][]float64, error) {
	s, err := series.New(series.WithDimension(dim))
	if err != nil {
		return nil, err
	}
	rows := make([][]float64, 0, len(events))
	for _, e := range events {
		before := s.Len()
		if err := e.Apply(s); err != nil {
			return nil, err
		}
		if s.Len() > before {
			rows = append(rows, s.At(s.Len()-1).Value.Slice(dim))
		}
	}
	return rows, nil
}

func loadPath(runID string) (*storage.RunMetadata, *analysis.Path, error) {
	meta, frames, err := loadRun(runID)
	if err != nil {
		return nil, nil, err
	}
	if meta.Dimension <= xAxis || meta.Dimension <= yAxis || xAxis < 0 || yAxis < 0 {
		return nil, nil, fmt.Errorf("dimension %d too small for axes %d and %d", meta.Dimension, xAxis, yAxis)
	}

	events, dim, err := storage.New(dataDir).LoadEvents(runID)
	if err != nil {
		return nil, nil, err
	}
	raw, err := rawPositions(events, dim)
	if err != nil {
		return nil, nil, err
	}

	curve := make([][]float64, len(frames))
	for i, f := range frames {
		curve[i] = f.Value
	}
	return meta, analysis.NewPath(curve, raw, xAxis, yAxis), nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, path, err := loadPath(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("path: %s\n", meta.ID)
	fmt.Printf("source: %s\n", meta.Source)
	fmt.Printf("x-axis: x%d, y-axis: x%d (• smoothed, o raw)\n\n", xAxis, yAxis)
	fmt.Print(path.ASCII(80, 30))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if outFile == "" {
		return storage.ExportJSONStdout(meta, frames)
	}
	if err := storage.ExportJSON(outFile, meta, frames); err != nil {
		return err
	}
	fmt.Printf("exported %d frames to %s\n", len(frames), outFile)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if outFile == "" {
		return storage.WriteFrames(os.Stdout, meta.Dimension, frames)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := storage.WriteFrames(f, meta.Dimension, frames); err != nil {
		return err
	}
	fmt.Printf("exported %d frames to %s\n", len(frames), outFile)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, path, err := loadPath(args[0])
	if err != nil {
		return err
	}

	svg := export.TrajectoryToSVG(path, 800, 800)
	if svg == "" {
		return fmt.Errorf("run %s has too few frames to draw", meta.ID)
	}

	out := outFile
	if out == "" {
		out = meta.ID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported %s\n", out)
	return nil
}
