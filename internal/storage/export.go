package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/moran/internal/moran"
)

type ExportData struct {
	ID         string              `json:"id"`
	Variant    string              `json:"variant"`
	Seed       int64               `json:"seed"`
	FreqA      float64             `json:"freq_a"`
	Advantage  float64             `json:"advantage"`
	Size       int                 `json:"population_size"`
	Iterations int                 `json:"iterations"`
	Steps      int                 `json:"steps"`
	Counts     []moran.Composition `json:"counts,omitempty"`
	Lifetimes  []int               `json:"lifetimes,omitempty"`
	Metrics    map[string]float64  `json:"metrics"`
}

func NewExportData(meta *RunMetadata, counts []moran.Composition, lifetimes []int) ExportData {
	return ExportData{
		ID:         meta.ID,
		Variant:    meta.Variant,
		Seed:       meta.Seed,
		FreqA:      meta.FreqA,
		Advantage:  meta.Advantage,
		Size:       meta.Size,
		Iterations: meta.Iterations,
		Steps:      meta.Steps,
		Counts:     counts,
		Lifetimes:  lifetimes,
		Metrics:    meta.Metrics,
	}
}

func ExportJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSONFile(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return ExportJSON(file, data)
}

// ExportRun loads a stored run and writes it as JSON.
func (s *Store) ExportRun(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	var data ExportData
	if meta.HasLifetimes() {
		lifetimes, err := s.LoadLifetimes(runID)
		if err != nil {
			return err
		}
		data = NewExportData(meta, nil, lifetimes)
	} else {
		counts, err := s.LoadCounts(runID)
		if err != nil {
			return err
		}
		data = NewExportData(meta, counts, nil)
	}
	return ExportJSON(w, data)
}
