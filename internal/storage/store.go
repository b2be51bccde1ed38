// Package storage persists trajectory runs and sampled grids on disk.
// Each run is a directory holding metadata.json and trajectory.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dmolina-v/efield/internal/particle"
	"github.com/dmolina-v/efield/internal/sample"
	"github.com/dmolina-v/efield/internal/vec"
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
	ID        string             `json:"id"`
	Kind      string             `json:"kind"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	MaxSteps  int                `json:"max_steps"`
	Steps     int                `json:"steps"`
	Status    string             `json:"status"`
	Mass      float64            `json:"mass"`
	Charge    float64            `json:"charge"`
	Elements  int                `json:"elements"`
	Metrics   map[string]float64 `json:"metrics"`
}

var trajectoryHeader = []string{"time", "x", "y", "z", "vx", "vy", "vz", "collided"}

func (s *Store) Save(kind string, cfg particle.StepConfig, elements int, tr *particle.Trajectory, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", kind, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	first := tr.States[0]
	meta := RunMetadata{
		ID:        runID,
		Kind:      kind,
		Timestamp: time.Now(),
		Dt:        cfg.Dt,
		MaxSteps:  cfg.MaxSteps,
		Steps:     len(tr.States),
		Status:    string(tr.Status),
		Mass:      first.Mass,
		Charge:    first.Charge,
		Elements:  elements,
		Metrics:   metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(trajectoryHeader); err != nil {
		return "", err
	}
	for i, st := range tr.States {
		row := []string{
			strconv.FormatFloat(tr.Times[i], 'f', 6, 64),
			strconv.FormatFloat(st.Pos.X, 'g', 12, 64),
			strconv.FormatFloat(st.Pos.Y, 'g', 12, 64),
			strconv.FormatFloat(st.Pos.Z, 'g', 12, 64),
			strconv.FormatFloat(st.Vel.X, 'g', 12, 64),
			strconv.FormatFloat(st.Vel.Y, 'g', 12, 64),
			strconv.FormatFloat(st.Vel.Z, 'g', 12, 64),
			strconv.FormatBool(st.Collided),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// SaveGrid writes a sampled field grid next to an existing run, one
// CSV row per sample point.
func (s *Store) SaveGrid(runID string, grid *sample.Grid) error {
	csvFile, err := os.Create(filepath.Join(s.baseDir, runID, "grid.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "z", "ex", "ey", "ez", "v"}); err != nil {
		return err
	}
	for _, p := range grid.Points {
		row := []string{
			strconv.FormatFloat(p.Pos.X, 'g', 12, 64),
			strconv.FormatFloat(p.Pos.Y, 'g', 12, 64),
			strconv.FormatFloat(p.Pos.Z, 'g', 12, 64),
			strconv.FormatFloat(p.E.X, 'g', 12, 64),
			strconv.FormatFloat(p.E.Y, 'g', 12, 64),
			strconv.FormatFloat(p.E.Z, 'g', 12, 64),
			strconv.FormatFloat(p.V, 'g', 12, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory reads back the states and times of a saved run.
// Rows that fail to parse are skipped.
func (s *Store) LoadTrajectory(runID string) (*particle.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	tr := &particle.Trajectory{}
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) != len(trajectoryHeader) {
			continue
		}
		vals := make([]float64, 7)
		ok := true
		for j := 0; j < 7; j++ {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		collided, err := strconv.ParseBool(rec[7])
		if err != nil {
			continue
		}

		tr.Times = append(tr.Times, vals[0])
		tr.States = append(tr.States, particle.State{
			Pos:      vec.Vec3{X: vals[1], Y: vals[2], Z: vals[3]},
			Vel:      vec.Vec3{X: vals[4], Y: vals[5], Z: vals[6]},
			Collided: collided,
		})
	}

	if meta, err := s.Load(runID); err == nil {
		tr.Status = particle.Status(meta.Status)
		for i := range tr.States {
			tr.States[i].Mass = meta.Mass
			tr.States[i].Charge = meta.Charge
		}
	}

	return tr, nil
}
