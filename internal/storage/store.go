package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/varint/internal/config"
	"github.com/san-kum/varint/internal/metrics"
	"github.com/san-kum/varint/internal/sim"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
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
	Model      string             `json:"model"`
	Timestamp  time.Time          `json:"timestamp"`
	Integrator string             `json:"integrator"`
	Family     string             `json:"family,omitempty"`
	Nodes      int                `json:"nodes,omitempty"`
	Explicit   bool               `json:"explicit"`
	Dt         float64            `json:"dt"`
	Start      float64            `json:"start"`
	End        float64            `json:"end"`
	P0         float64            `json:"p0"`
	Q0         float64            `json:"q0"`
	Params     map[string]float64 `json:"params,omitempty"`
	Steps      int                `json:"steps"`
	Complete   bool               `json:"complete"`
	Metrics    map[string]float64 `json:"metrics"`
	Summary    metrics.Summary    `json:"summary"`
}

// NewMetadata fills the run description from cfg. ID and Timestamp are set
// by Save.
func NewMetadata(cfg *config.Config, integrator string, m map[string]float64) RunMetadata {
	meta := RunMetadata{
		Model:      cfg.Model,
		Integrator: integrator,
		Explicit:   cfg.Explicit,
		Dt:         cfg.Dt,
		Start:      cfg.Start,
		End:        cfg.End,
		P0:         cfg.P0,
		Q0:         cfg.Q0,
		Params:     cfg.Params,
		Metrics:    m,
	}
	if cfg.Reference == "" {
		meta.Family = cfg.Family
		meta.Nodes = cfg.Nodes
	}
	return meta
}

// Save writes metadata.json and trajectory.csv into a new run directory and
// returns the run ID.
func (s *Store) Save(meta RunMetadata, tr *sim.Trajectory) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Model, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Steps = tr.Steps
	meta.Complete = tr.Complete()
	meta.Summary = metrics.Summarize(tr.Observables)

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), tr); err != nil {
		return "", err
	}
	return runID, nil
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

func writeTrajectory(path string, tr *sim.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "p", "q", "observable"}); err != nil {
		return err
	}
	for i := 0; i < tr.Len(); i++ {
		row := []string{
			formatFloat(tr.Times[i]),
			formatFloat(tr.Momenta[i]),
			formatFloat(tr.Positions[i]),
			formatFloat(tr.Observables[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// List returns every readable run, newest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory reads a saved trajectory. Steps is taken from the
// metadata when present.
func (s *Store) LoadTrajectory(runID string) (*sim.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	tr := &sim.Trajectory{}
	for i := 1; i < len(records); i++ {
		var row [4]float64
		for j, cell := range records[i] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", trajectoryFile, i+1, err)
			}
			row[j] = v
		}
		tr.Times = append(tr.Times, row[0])
		tr.Momenta = append(tr.Momenta, row[1])
		tr.Positions = append(tr.Positions, row[2])
		tr.Observables = append(tr.Observables, row[3])
	}

	tr.Steps = tr.Len() - 1
	if meta, err := s.Load(runID); err == nil {
		tr.Steps = meta.Steps
	}
	return tr, nil
}
