package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/varint/internal/sim"
)

type ExportData struct {
	RunMetadata
	Times       []float64 `json:"times"`
	Momenta     []float64 `json:"momenta"`
	Positions   []float64 `json:"positions"`
	Observables []float64 `json:"observables"`
}

func newExportData(meta RunMetadata, tr *sim.Trajectory) ExportData {
	meta.Steps = tr.Steps
	meta.Complete = tr.Complete()
	return ExportData{
		RunMetadata: meta,
		Times:       tr.Times,
		Momenta:     tr.Momenta,
		Positions:   tr.Positions,
		Observables: tr.Observables,
	}
}

// WriteJSON encodes the run as indented JSON.
func WriteJSON(w io.Writer, meta RunMetadata, tr *sim.Trajectory) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newExportData(meta, tr))
}

// ExportJSON writes the run to path, or to stdout when path is "-".
func ExportJSON(path string, meta RunMetadata, tr *sim.Trajectory) error {
	if path == "-" {
		return WriteJSON(os.Stdout, meta, tr)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, tr)
}
