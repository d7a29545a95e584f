package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the full-trace JSON export of a stored run.
type ExportData struct {
	ID         string             `json:"id"`
	Course     string             `json:"course"`
	Controller string             `json:"controller"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Cycles     int                `json:"cycles"`
	Times      []float64          `json:"times"`
	Readings   [][2]int           `json:"readings"`
	Commands   [][2]int           `json:"commands"`
	Metrics    map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run's metadata and full trace as indented JSON.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	trace, err := s.LoadTrace(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		ID:         meta.ID,
		Course:     meta.Course,
		Controller: meta.Controller,
		Dt:         meta.Dt,
		Duration:   meta.Duration,
		Cycles:     len(trace.Times),
		Times:      trace.Times,
		Readings:   make([][2]int, len(trace.Readings)),
		Commands:   make([][2]int, len(trace.Commands)),
		Metrics:    meta.Metrics,
	}

	for i, r := range trace.Readings {
		data.Readings[i] = [2]int{r.Left, r.Right}
	}
	for i, c := range trace.Commands {
		data.Commands[i] = [2]int{c.Left, c.Right}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportJSONFile writes the export to a file path.
func (s *Store) ExportJSONFile(runID, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return s.ExportJSON(runID, file)
}
