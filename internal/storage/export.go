package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/filtvec/internal/playback"
)

type ExportData struct {
	ID           string             `json:"id"`
	Source       string             `json:"source"`
	Dimension    int                `json:"dimension"`
	FrameRate    float64            `json:"frame_rate"`
	Delay        float64            `json:"delay"`
	Steps        int                `json:"steps"`
	Times        []float64          `json:"times"`
	Values       [][]float64        `json:"values"`
	Velocities   [][]float64        `json:"velocities"`
	Retained     []int              `json:"retained"`
	PeakRetained int                `json:"peak_retained"`
	Metrics      map[string]float64 `json:"metrics"`
}

func NewExportData(meta *RunMetadata, frames []playback.Frame) ExportData {
	data := ExportData{
		ID:           meta.ID,
		Source:       meta.Source,
		Dimension:    meta.Dimension,
		FrameRate:    meta.FrameRate,
		Delay:        meta.Delay,
		Steps:        len(frames),
		Times:        make([]float64, len(frames)),
		Values:       make([][]float64, len(frames)),
		Velocities:   make([][]float64, len(frames)),
		Retained:     make([]int, len(frames)),
		PeakRetained: meta.PeakRetained,
		Metrics:      meta.Metrics,
	}
	for i, f := range frames {
		data.Times[i] = f.T
		data.Values[i] = f.Value
		data.Velocities[i] = f.Velocity
		data.Retained[i] = f.Retained
	}
	return data
}

func ExportJSON(path string, meta *RunMetadata, frames []playback.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return encodeExport(file, meta, frames)
}

func ExportJSONStdout(meta *RunMetadata, frames []playback.Frame) error {
	return encodeExport(os.Stdout, meta, frames)
}

func encodeExport(w io.Writer, meta *RunMetadata, frames []playback.Frame) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, frames))
}
