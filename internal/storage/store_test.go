package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmolina-v/efield/internal/particle"
	"github.com/dmolina-v/efield/internal/sample"
	"github.com/dmolina-v/efield/internal/vec"
)

func sampleTrajectory() *particle.Trajectory {
	return &particle.Trajectory{
		States: []particle.State{
			{Pos: vec.Vec3{Z: 0.2}, Mass: 1e-3, Charge: -1e-6},
			{Pos: vec.Vec3{Z: 0.15}, Vel: vec.Vec3{Z: -0.5}, Mass: 1e-3, Charge: -1e-6},
			{Pos: vec.Vec3{Z: 0.04}, Vel: vec.Vec3{Z: -1.1}, Mass: 1e-3, Charge: -1e-6, Collided: true},
		},
		Times:  []float64{0.01, 0.02, 0.03},
		Status: particle.Collided,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := particle.StepConfig{Dt: 0.01, MaxSteps: 200}
	runID, err := st.Save("plate", cfg, 400, sampleTrajectory(), map[string]float64{"path_length": 0.16})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Kind != "plate" {
		t.Errorf("expected kind plate, got %s", meta.Kind)
	}
	if meta.Steps != 3 {
		t.Errorf("expected 3 steps, got %d", meta.Steps)
	}
	if meta.Status != "collided" {
		t.Errorf("expected status collided, got %s", meta.Status)
	}
	if meta.Elements != 400 {
		t.Errorf("expected 400 elements, got %d", meta.Elements)
	}
	if meta.Metrics["path_length"] != 0.16 {
		t.Errorf("expected path_length metric 0.16, got %f", meta.Metrics["path_length"])
	}
}

func TestLoadTrajectoryRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	want := sampleTrajectory()
	cfg := particle.StepConfig{Dt: 0.01, MaxSteps: 200}
	runID, err := st.Save("plate", cfg, 400, want, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}

	if len(got.States) != len(want.States) {
		t.Fatalf("expected %d states, got %d", len(want.States), len(got.States))
	}
	if got.Status != particle.Collided {
		t.Errorf("expected collided status, got %s", got.Status)
	}
	final := got.States[len(got.States)-1]
	if !final.Collided {
		t.Error("final state should be collided")
	}
	if final.Mass != 1e-3 || final.Charge != -1e-6 {
		t.Errorf("mass and charge should come from metadata: %+v", final)
	}
	if d := final.Pos.Distance(want.States[2].Pos); d > 1e-9 {
		t.Errorf("position drifted through round trip by %g", d)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	cfg := particle.StepConfig{Dt: 0.01, MaxSteps: 200}
	if _, err := st.Save("ring", cfg, 40, sampleTrajectory(), nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	cfg := particle.StepConfig{Dt: 0.01, MaxSteps: 200}
	runID, err := st.Save("sphere", cfg, 800, sampleTrajectory(), nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(dir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "trajectory.csv")); os.IsNotExist(err) {
		t.Error("trajectory.csv not created")
	}
}

func TestSaveGrid(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	cfg := particle.StepConfig{Dt: 0.01, MaxSteps: 200}
	runID, err := st.Save("sphere", cfg, 800, sampleTrajectory(), nil)
	if err != nil {
		t.Fatal(err)
	}

	grid := &sample.Grid{
		Resolution: 2,
		Points: []sample.Point{
			{Pos: vec.Vec3{X: -1}, E: vec.Vec3{X: 2}, V: 3},
			{Pos: vec.Vec3{X: 1}, E: vec.Vec3{X: -2}, V: 3},
		},
	}
	if err := st.SaveGrid(runID, grid); err != nil {
		t.Fatalf("save grid failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, runID, "grid.csv")); os.IsNotExist(err) {
		t.Error("grid.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	cfg := particle.StepConfig{Dt: 0.01, MaxSteps: 200}

	if err := ExportJSON(path, "plate", cfg, sampleTrajectory()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var out ExportData
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("exported file is not valid JSON: %v", err)
	}
	if out.Kind != "plate" || out.Steps != 3 {
		t.Errorf("unexpected export header: %+v", out)
	}
	if len(out.Positions) != 3 || out.Positions[0][2] != 0.2 {
		t.Errorf("positions did not export: %+v", out.Positions)
	}
}
