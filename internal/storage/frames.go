package storage

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/klauspost/compress/zstd"

	"github.com/san-kum/filtvec/internal/playback"
)

// WriteFrames writes frames as CSV with columns
// t, x0..x{dim-1}, v0..v{dim-1}, retained, stable.
func WriteFrames(w io.Writer, dim int, frames []playback.Frame) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, 2*dim+3)
	header = append(header, "t")
	for i := 0; i < dim; i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	for i := 0; i < dim; i++ {
		header = append(header, fmt.Sprintf("v%d", i))
	}
	header = append(header, "retained", "stable")
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, 0, len(header))
	for _, f := range frames {
		if len(f.Value) != dim || len(f.Velocity) != dim {
			return fmt.Errorf("frame at t=%.4f has %d components, want %d", f.T, len(f.Value), dim)
		}
		row = row[:0]
		row = append(row, formatFloat(f.T))
		for _, v := range f.Value {
			row = append(row, formatFloat(v))
		}
		for _, v := range f.Velocity {
			row = append(row, formatFloat(v))
		}
		row = append(row, strconv.Itoa(f.Retained), strconv.FormatBool(f.Stable))
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadFrames parses the WriteFrames format.
func ReadFrames(r io.Reader) ([]playback.Frame, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return []playback.Frame{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(header) < 5 || (len(header)-3)%2 != 0 {
		return nil, fmt.Errorf("storage: unexpected frames header %v", header)
	}
	dim := (len(header) - 3) / 2

	frames := make([]playback.Frame, 0)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		vals := make([]float64, 1+2*dim)
		for i := range vals {
			if vals[i], err = strconv.ParseFloat(record[i], 64); err != nil {
				return nil, fmt.Errorf("storage: frames line %d: %w", line, err)
			}
		}
		retained, err := strconv.Atoi(record[1+2*dim])
		if err != nil {
			return nil, fmt.Errorf("storage: frames line %d: %w", line, err)
		}
		stable, err := strconv.ParseBool(record[2+2*dim])
		if err != nil {
			return nil, fmt.Errorf("storage: frames line %d: %w", line, err)
		}

		frames = append(frames, playback.Frame{
			T:        vals[0],
			Value:    vals[1 : 1+dim : 1+dim],
			Velocity: vals[1+dim:],
			Retained: retained,
			Stable:   stable,
		})
	}
	return frames, nil
}

func writeFramesFile(path string, dim int, frames []playback.Frame, compress bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if !compress {
		bw := bufio.NewWriter(f)
		if err := WriteFrames(bw, dim, frames); err != nil {
			return err
		}
		return bw.Flush()
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return err
	}
	if err := WriteFrames(enc, dim, frames); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func readFramesFile(path string, compressed bool) ([]playback.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !compressed {
		return ReadFrames(bufio.NewReader(f))
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return ReadFrames(dec)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
