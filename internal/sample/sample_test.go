package sample

import (
	"errors"
	"testing"

	"github.com/dmolina-v/efield/internal/field"
	"github.com/dmolina-v/efield/internal/geometry"
	"github.com/dmolina-v/efield/internal/vec"
)

func sphereEvaluator(t *testing.T) *field.Evaluator {
	t.Helper()
	cfg := geometry.Default(geometry.Sphere)
	cfg.N = 12
	ev, err := field.New(cfg)
	if err != nil {
		t.Fatalf("evaluator: %v", err)
	}
	return ev
}

func TestOverDimensions(t *testing.T) {
	ev := sphereEvaluator(t)
	b := DefaultBounds(ev.Config())

	grid, err := Over(ev, b, 5)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	if len(grid.Points) != 125 {
		t.Errorf("expected 125 points, got %d", len(grid.Points))
	}

	first := grid.At(0, 0, 0)
	if first.Pos != b.Min {
		t.Errorf("expected first sample at %+v, got %+v", b.Min, first.Pos)
	}
	last := grid.At(4, 4, 4)
	if last.Pos.Distance(b.Max) > 1e-12 {
		t.Errorf("expected last sample at %+v, got %+v", b.Max, last.Pos)
	}
}

func TestOverIsRepeatable(t *testing.T) {
	ev := sphereEvaluator(t)
	b := DefaultBounds(ev.Config())

	g1, err := Over(ev, b, 4)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := Over(ev, b, 4)
	if err != nil {
		t.Fatal(err)
	}

	for i := range g1.Points {
		if g1.Points[i] != g2.Points[i] {
			t.Fatalf("point %d differs between calls: %+v vs %+v", i, g1.Points[i], g2.Points[i])
		}
	}
}

func TestOverRejectsBadInputs(t *testing.T) {
	ev := sphereEvaluator(t)
	b := DefaultBounds(ev.Config())

	if _, err := Over(ev, b, 1); !errors.Is(err, ErrBadResolution) {
		t.Errorf("expected ErrBadResolution, got %v", err)
	}

	inverted := Bounds{Min: vec.Vec3{X: 1}, Max: vec.Vec3{X: -1, Y: 1, Z: 1}}
	if _, err := Over(ev, inverted, 4); !errors.Is(err, ErrBadBounds) {
		t.Errorf("expected ErrBadBounds, got %v", err)
	}
}

func TestPotentialFallsOffWithDistance(t *testing.T) {
	ev := sphereEvaluator(t)

	near := ev.PotentialAt(vec.Vec3{X: 1.5})
	far := ev.PotentialAt(vec.Vec3{X: 2.9})
	if near <= far {
		t.Errorf("potential should fall off: near %g, far %g", near, far)
	}
}

func TestDefaultBoundsPerKind(t *testing.T) {
	tests := []struct {
		kind   geometry.Kind
		extent float64
	}{
		{geometry.Plate, 2.0},
		{geometry.Sphere, 3.0},
		{geometry.Cylinder, 3.5},
		{geometry.Ring, 3.0},
	}

	for _, tt := range tests {
		b := DefaultBounds(geometry.Default(tt.kind))
		if b.Max.X != tt.extent || b.Min.X != -tt.extent {
			t.Errorf("%s: expected extent %g, got %+v", tt.kind, tt.extent, b)
		}
	}
}

func TestDefaultResolutionScalesWithN(t *testing.T) {
	cfg := geometry.Default(geometry.Sphere)

	cfg.N = 5
	coarse := DefaultResolution(cfg)
	cfg.N = 40
	fine := DefaultResolution(cfg)

	if coarse >= fine {
		t.Errorf("expected finer grid for larger N: coarse %d, fine %d", coarse, fine)
	}
	if fine > 40 {
		t.Errorf("resolution must stay capped, got %d", fine)
	}
}
