package vec

import (
	"math"
	"testing"
)

func TestNorm(t *testing.T) {
	v := Vec3{3, 4, 0}
	if v.Norm() != 5 {
		t.Errorf("expected norm 5, got %f", v.Norm())
	}
	if v.Norm2() != 25 {
		t.Errorf("expected norm2 25, got %f", v.Norm2())
	}
}

func TestNormalize(t *testing.T) {
	v := Vec3{0, 0, 2}.Normalize()
	if v != (Vec3{0, 0, 1}) {
		t.Errorf("expected unit z, got %+v", v)
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("expected zero vector, got %+v", zero)
	}
}

func TestArithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{-1, 0.5, 2}

	if got := a.Add(b); got != (Vec3{0, 2.5, 5}) {
		t.Errorf("add: got %+v", got)
	}
	if got := a.Sub(b); got != (Vec3{2, 1.5, 1}) {
		t.Errorf("sub: got %+v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("scale: got %+v", got)
	}
	if got := a.Dot(b); got != 6 {
		t.Errorf("dot: got %f", got)
	}
}

func TestDistance(t *testing.T) {
	a := Vec3{1, 0, 0}
	b := Vec3{1, 0, 3}
	if a.Distance(b) != 3 {
		t.Errorf("expected distance 3, got %f", a.Distance(b))
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want bool
	}{
		{"finite", Vec3{1, -2, 3}, true},
		{"zero", Vec3{}, true},
		{"nan", Vec3{math.NaN(), 0, 0}, false},
		{"inf", Vec3{0, math.Inf(1), 0}, false},
		{"neg inf", Vec3{0, 0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.IsValid() != tt.want {
				t.Errorf("IsValid(%+v) = %v, want %v", tt.v, tt.v.IsValid(), tt.want)
			}
		})
	}
}
