package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/filtvec/internal/playback"
	"github.com/san-kum/filtvec/internal/signal"
)

const (
	metadataFile = "metadata.json"
	eventsFile   = "events.csv"
	framesFile   = "frames.csv"
	zstdSuffix   = ".zst"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo describes how a run was produced.
type RunInfo struct {
	Source   string
	Seed     int64
	Playback playback.Config
	Compress bool
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Source       string             `json:"source"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         int64              `json:"seed"`
	Dimension    int                `json:"dimension"`
	FrameRate    float64            `json:"frame_rate"`
	Duration     float64            `json:"duration"`
	Delay        float64            `json:"delay"`
	FlushLag     float64            `json:"flush_lag"`
	Events       int                `json:"events"`
	Frames       int                `json:"frames"`
	PeakRetained int                `json:"peak_retained"`
	Dropped      int                `json:"dropped"`
	Compressed   bool               `json:"compressed"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding metadata, the input event log and the
// rendered frames, and returns the run id.
func (s *Store) Save(info RunInfo, result *playback.Result) (string, error) {
	now := time.Now()
	runID, runDir, err := s.makeRunDir(info.Source, now)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Source:       info.Source,
		Timestamp:    now,
		Seed:         info.Seed,
		Dimension:    result.Dim,
		FrameRate:    info.Playback.FrameRate,
		Duration:     info.Playback.Duration,
		Delay:        info.Playback.Delay,
		FlushLag:     info.Playback.FlushLag,
		Events:       len(result.Events),
		Frames:       len(result.Frames),
		PeakRetained: result.PeakRetained,
		Dropped:      result.Dropped,
		Compressed:   info.Compress,
		Metrics:      result.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	ef, err := os.Create(filepath.Join(runDir, eventsFile))
	if err != nil {
		return "", err
	}
	defer ef.Close()
	if err := signal.WriteEvents(ef, result.Dim, result.Events); err != nil {
		return "", fmt.Errorf("storage: write events: %w", err)
	}

	framesPath := filepath.Join(runDir, framesFile)
	if info.Compress {
		framesPath += zstdSuffix
	}
	if err := writeFramesFile(framesPath, result.Dim, result.Frames, info.Compress); err != nil {
		return "", fmt.Errorf("storage: write frames: %w", err)
	}

	return runID, nil
}

// makeRunDir creates <source>_<unix>, adding a counter when a run with the
// same id already exists.
func (s *Store) makeRunDir(source string, now time.Time) (string, string, error) {
	base := fmt.Sprintf("%s_%d", source, now.Unix())
	runID := base
	for n := 2; ; n++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, n)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns the runs under the base directory, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: metadata for %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads frames.csv, or frames.csv.zst when the run was saved
// compressed.
func (s *Store) LoadFrames(runID string) ([]playback.Frame, error) {
	runDir := filepath.Join(s.baseDir, runID)

	path := filepath.Join(runDir, framesFile)
	compressed := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		path += zstdSuffix
		compressed = true
	}
	return readFramesFile(path, compressed)
}

func (s *Store) LoadEvents(runID string) ([]signal.Event, int, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, eventsFile))
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return signal.ReadEvents(f)
}
