package signal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// WriteEvents writes events as CSV with the header t,op,v0..v{dim-1}.
// Idle rows leave the value columns empty.
func WriteEvents(w io.Writer, dim int, events []Event) error {
	cw := csv.NewWriter(w)

	header := []string{"t", "op"}
	for i := 0; i < dim; i++ {
		header = append(header, fmt.Sprintf("v%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, e := range events {
		row[0] = strconv.FormatFloat(e.T, 'g', -1, 64)
		row[1] = e.Op.String()
		for i := 0; i < dim; i++ {
			row[2+i] = ""
			if i < len(e.Values) {
				row[2+i] = strconv.FormatFloat(e.Values[i], 'g', -1, 64)
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadEvents parses an event log written by WriteEvents and returns the
// events together with the dimension declared by the header.
func ReadEvents(r io.Reader) ([]Event, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, &ParseError{Line: 1, Wrapped: errors.New("missing header")}
		}
		return nil, 0, err
	}
	if len(header) < 3 || header[0] != "t" || header[1] != "op" {
		return nil, 0, &ParseError{Line: 1, Wrapped: fmt.Errorf("unexpected header %v", header)}
	}
	dim := len(header) - 2

	events := make([]Event, 0)
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, 0, &ParseError{Line: line, Wrapped: err}
		}

		e, err := parseEvent(record, dim)
		if err != nil {
			return nil, 0, &ParseError{Line: line, Wrapped: err}
		}
		events = append(events, e)
	}

	return events, dim, nil
}

func parseEvent(record []string, dim int) (Event, error) {
	if len(record) < 2 {
		return Event{}, fmt.Errorf("expected at least 2 fields, got %d", len(record))
	}
	t, err := strconv.ParseFloat(record[0], 64)
	if err != nil {
		return Event{}, fmt.Errorf("bad time %q: %w", record[0], err)
	}
	op, err := ParseOp(record[1])
	if err != nil {
		return Event{}, err
	}

	e := Event{T: t, Op: op}
	if op == OpIdle {
		return e, nil
	}

	if len(record)-2 < dim {
		return Event{}, fmt.Errorf("%s needs %d values, got %d", op, dim, len(record)-2)
	}
	e.Values = make([]float64, dim)
	for i := 0; i < dim; i++ {
		v, err := strconv.ParseFloat(record[2+i], 64)
		if err != nil {
			return Event{}, fmt.Errorf("bad value %q: %w", record[2+i], err)
		}
		e.Values[i] = v
	}
	return e, nil
}
