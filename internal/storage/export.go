package storage

import (
	"encoding/json"
	"os"
)

// ExportData is the flat JSON form of a stored run, trajectory included.
type ExportData struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Integrator   string             `json:"integrator"`
	Oscillators  int                `json:"oscillators"`
	MaxAmplitude float64            `json:"max_amplitude"`
	Spacing      float64            `json:"spacing"`
	Steps        int                `json:"steps"`
	Times        []float64          `json:"times"`
	States       [][]float64        `json:"states"`
	Metrics      map[string]float64 `json:"metrics"`
}

// ExportJSON writes a stored run as a single JSON document to path, or to
// stdout when path is empty.
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		ID:           meta.ID,
		Name:         meta.Name,
		Integrator:   meta.Integrator,
		Oscillators:  meta.Oscillators,
		MaxAmplitude: meta.MaxAmplitude,
		Spacing:      meta.Spacing,
		Steps:        len(times),
		Times:        times,
		States:       states,
		Metrics:      meta.Metrics,
	}

	out := os.Stdout
	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
