package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/cyclosim/internal/lorentz"
	"github.com/san-kum/cyclosim/internal/sim"
	"gonum.org/v1/gonum/spatial/r3"
)

var Columns = []string{"time", "x", "y", "z", "vx", "vy", "vz", "speed", "energy", "radius", "outcome"}

func WriteCSV(w io.Writer, samples []sim.Sample) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return err
	}

	for _, smp := range samples {
		row := make([]string, 0, len(Columns))
		for _, v := range []float64{
			smp.Time,
			smp.Position.X, smp.Position.Y, smp.Position.Z,
			smp.Velocity.X, smp.Velocity.Y, smp.Velocity.Z,
			smp.Speed, smp.Energy, smp.Radius,
		} {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		row = append(row, smp.Outcome.String())

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses rows written by WriteCSV. Rows that fail to parse are
// reported with their line number.
func ReadCSV(r io.Reader) ([]sim.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Columns)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		vals := make([]float64, len(Columns)-1)
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %s: %w", i+2, Columns[j], err)
			}
			vals[j] = v
		}

		samples = append(samples, sim.Sample{
			Time:     vals[0],
			Position: r3.Vec{X: vals[1], Y: vals[2], Z: vals[3]},
			Velocity: r3.Vec{X: vals[4], Y: vals[5], Z: vals[6]},
			Speed:    vals[7],
			Energy:   vals[8],
			Radius:   vals[9],
			Outcome:  lorentz.ParseOutcome(record[len(Columns)-1]),
		})
	}
	return samples, nil
}
