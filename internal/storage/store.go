package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/skarn/linectl/internal/drive"
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

type RunMetadata struct {
	ID         string             `json:"id"`
	Course     string             `json:"course"`
	Controller string             `json:"controller"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Params     map[string]float64 `json:"params"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Trace is a stored run's per-cycle record.
type Trace struct {
	Times    []float64
	Readings []drive.SensorPair
	Commands []drive.Command
}

// Errors returns the differential error signal of the trace.
func (tr *Trace) Errors() []float64 {
	errs := make([]float64, len(tr.Readings))
	for i, s := range tr.Readings {
		errs[i] = float64(s.Error())
	}
	return errs
}

func (s *Store) Save(course, controller string, dt, duration float64, seed int64, params map[string]float64, result *drive.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", course, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Course:     course,
		Controller: controller,
		Timestamp:  time.Now(),
		Seed:       seed,
		Dt:         dt,
		Duration:   duration,
		Params:     params,
		Metrics:    result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "trace.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time", "left", "right", "cmd_left", "cmd_right"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range result.Readings {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.Itoa(result.Readings[i].Left),
			strconv.Itoa(result.Readings[i].Right),
			strconv.Itoa(result.Commands[i].Left),
			strconv.Itoa(result.Commands[i].Right),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTrace(runID string) (*Trace, error) {
	csvPath := filepath.Join(s.baseDir, runID, "trace.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	trace := &Trace{
		Times:    make([]float64, 0, len(records)),
		Readings: make([]drive.SensorPair, 0, len(records)),
		Commands: make([]drive.Command, 0, len(records)),
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 5 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		left, err := strconv.Atoi(record[1])
		if err != nil {
			continue
		}
		right, err := strconv.Atoi(record[2])
		if err != nil {
			continue
		}
		cmdLeft, err := strconv.Atoi(record[3])
		if err != nil {
			continue
		}
		cmdRight, err := strconv.Atoi(record[4])
		if err != nil {
			continue
		}

		trace.Times = append(trace.Times, t)
		trace.Readings = append(trace.Readings, drive.SensorPair{Left: left, Right: right})
		trace.Commands = append(trace.Commands, drive.Command{Left: cmdLeft, Right: cmdRight})
	}

	return trace, nil
}

// ExportCSV copies a stored trace to an external path.
func (s *Store) ExportCSV(runID, outPath string) error {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, data, 0644)
}
