package sweep

import (
	"context"
	"log/slog"
	"math"
	"runtime"
	"sort"
	"strconv"
	"sync"

	"github.com/san-kum/filtvec/internal/playback"
	"github.com/san-kum/filtvec/internal/signal"
)

// Trial is one playback of one grid point with one seed.
type Trial struct {
	Params       map[string]float64
	Seed         int64
	Metrics      map[string]float64
	PeakRetained int
	Dropped      int
	Err          error
}

// Runner plays every grid point against Seeds sources in parallel.
type Runner struct {
	NewSource func(seed int64) (signal.Source, error)
	Metrics   func() []playback.Metric
	Base      playback.Config
	Seeds     int
	SeedStart int64
	Workers   int // defaults to GOMAXPROCS
	Logger    *slog.Logger
}

type job struct {
	idx   int
	point map[string]float64
	seed  int64
}

// Run returns one trial per point and seed, in grid order. A failing trial
// records its error and does not stop the sweep; cancellation does.
func (r *Runner) Run(ctx context.Context, g *Grid) ([]Trial, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	seeds := max(r.Seeds, 1)
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	points := g.Points()
	trials := make([]Trial, len(points)*seeds)
	jobs := make(chan job)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				trials[j.idx] = r.trial(ctx, j, logger)
			}
		}()
	}

	logger.Debug("sweep started", "points", len(points), "seeds", seeds, "workers", workers)

feed:
	for i, p := range points {
		for s := 0; s < seeds; s++ {
			j := job{idx: i*seeds + s, point: p, seed: r.SeedStart + int64(s)}
			select {
			case jobs <- j:
			case <-ctx.Done():
				break feed
			}
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return trials, nil
}

func (r *Runner) trial(ctx context.Context, j job, logger *slog.Logger) Trial {
	t := Trial{Params: j.point, Seed: j.seed}

	src, err := r.NewSource(j.seed)
	if err != nil {
		t.Err = err
		return t
	}

	pr := playback.New(logger.With("seed", j.seed))
	if r.Metrics != nil {
		for _, m := range r.Metrics() {
			pr.AddMetric(m)
		}
	}

	res, err := pr.Run(ctx, src, Apply(r.Base, j.point))
	if err != nil {
		t.Err = err
		return t
	}
	t.Metrics = res.Metrics
	t.PeakRetained = res.PeakRetained
	t.Dropped = res.Dropped
	return t
}

// Summary averages one metric over the seeds of a grid point.
type Summary struct {
	Params map[string]float64
	Mean   float64
	Runs   int
	Failed int
}

// Summarize groups trials by grid point, in the order the points first
// appear, and averages metric over the successful ones.
func Summarize(trials []Trial, metric string) []Summary {
	out := make([]Summary, 0)
	index := make(map[string]int)

	for _, t := range trials {
		key := pointKey(t.Params)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, Summary{Params: t.Params})
		}
		if t.Err != nil {
			out[i].Failed++
			continue
		}
		out[i].Mean += t.Metrics[metric]
		out[i].Runs++
	}

	for i := range out {
		if out[i].Runs > 0 {
			out[i].Mean /= float64(out[i].Runs)
		} else {
			out[i].Mean = math.NaN()
		}
	}
	return out
}

// Best returns the summary with the lowest mean, ignoring points where
// every trial failed.
func Best(summaries []Summary) (Summary, bool) {
	best, found := Summary{Mean: math.Inf(1)}, false
	for _, s := range summaries {
		if s.Runs > 0 && s.Mean < best.Mean {
			best, found = s, true
		}
	}
	return best, found
}

func pointKey(p map[string]float64) string {
	names := make([]string, 0, len(p))
	for n := range p {
		names = append(names, n)
	}
	sort.Strings(names)

	key := make([]byte, 0, 32)
	for _, n := range names {
		key = append(key, n...)
		key = append(key, '=')
		key = strconv.AppendFloat(key, p[n], 'g', -1, 64)
		key = append(key, ';')
	}
	return string(key)
}
