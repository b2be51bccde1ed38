package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/dmolina-v/efield/internal/particle"
	"github.com/dmolina-v/efield/internal/vec"
)

type ExportData struct {
	Kind      string       `json:"kind"`
	Dt        float64      `json:"dt"`
	MaxSteps  int          `json:"max_steps"`
	Steps     int          `json:"steps"`
	Status    string       `json:"status"`
	Mass      float64      `json:"mass"`
	Charge    float64      `json:"charge"`
	Times     []float64    `json:"times"`
	Positions [][3]float64 `json:"positions"`
	Velocity  [][3]float64 `json:"velocities"`
}

func exportData(kind string, cfg particle.StepConfig, tr *particle.Trajectory) ExportData {
	data := ExportData{
		Kind:      kind,
		Dt:        cfg.Dt,
		MaxSteps:  cfg.MaxSteps,
		Steps:     len(tr.States),
		Status:    string(tr.Status),
		Times:     tr.Times,
		Positions: make([][3]float64, len(tr.States)),
		Velocity:  make([][3]float64, len(tr.States)),
	}
	if len(tr.States) > 0 {
		data.Mass = tr.States[0].Mass
		data.Charge = tr.States[0].Charge
	}
	for i, s := range tr.States {
		data.Positions[i] = flatten(s.Pos)
		data.Velocity[i] = flatten(s.Vel)
	}
	return data
}

func flatten(v vec.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func ExportJSON(path string, kind string, cfg particle.StepConfig, tr *particle.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, kind, cfg, tr)
}

func ExportJSONStdout(kind string, cfg particle.StepConfig, tr *particle.Trajectory) error {
	return writeExport(os.Stdout, kind, cfg, tr)
}

func writeExport(w io.Writer, kind string, cfg particle.StepConfig, tr *particle.Trajectory) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData(kind, cfg, tr))
}
