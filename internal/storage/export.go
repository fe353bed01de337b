package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/cyclosim/internal/sim"
)

type ExportSample struct {
	Time     float64    `json:"t"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
	Speed    float64    `json:"speed"`
	Energy   float64    `json:"energy"`
	Radius   float64    `json:"radius"`
	Outcome  string     `json:"outcome"`
}

type ExportData struct {
	RunMetadata
	Samples []ExportSample `json:"samples"`
}

func NewExportData(meta RunMetadata, samples []sim.Sample) ExportData {
	data := ExportData{
		RunMetadata: meta,
		Samples:     make([]ExportSample, len(samples)),
	}
	for i, s := range samples {
		data.Samples[i] = ExportSample{
			Time:     s.Time,
			Position: [3]float64{s.Position.X, s.Position.Y, s.Position.Z},
			Velocity: [3]float64{s.Velocity.X, s.Velocity.Y, s.Velocity.Z},
			Speed:    s.Speed,
			Energy:   s.Energy,
			Radius:   s.Radius,
			Outcome:  s.Outcome.String(),
		}
	}
	return data
}

func WriteJSON(w io.Writer, meta RunMetadata, samples []sim.Sample) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, samples))
}

// ExportJSON writes a stored run as one JSON document. An empty path
// writes to stdout.
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	if path == "" {
		return WriteJSON(os.Stdout, *meta, samples)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, *meta, samples)
}

// ExportCSV copies a stored run's samples to path, or to stdout when
// path is empty.
func (s *Store) ExportCSV(runID, path string) error {
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}
	if path == "" {
		return WriteCSV(os.Stdout, samples)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, samples)
}
