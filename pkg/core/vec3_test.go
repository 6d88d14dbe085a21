package core

import (
	"math"
	"testing"
)

func TestVec3_Basics(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	vecsClose(t, a.Add(b), NewVec3(5, -3, 9), tolerance)
	vecsClose(t, a.Subtract(b), NewVec3(-3, 7, -3), tolerance)
	vecsClose(t, a.Multiply(2), NewVec3(2, 4, 6), tolerance)
	if got := a.Dot(b); math.Abs(got-12) > tolerance {
		t.Errorf("expected dot 12, got %g", got)
	}
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	vecsClose(t, x.Cross(y), NewVec3(0, 0, 1), tolerance)
	vecsClose(t, y.Cross(x), NewVec3(0, 0, -1), tolerance)
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4)
	n := v.Normalize()
	if math.Abs(n.Length()-1) > tolerance {
		t.Errorf("expected unit length, got %g", n.Length())
	}
	// Zero vector stays zero rather than dividing by zero
	vecsClose(t, NewVec3(0, 0, 0).Normalize(), NewVec3(0, 0, 0), tolerance)
}

func TestVec3_AngleBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want float64
	}{
		{"parallel", NewVec3(1, 0, 0), NewVec3(2, 0, 0), 0},
		{"perpendicular", NewVec3(1, 0, 0), NewVec3(0, 3, 0), math.Pi / 2},
		{"opposite", NewVec3(1, 0, 0), NewVec3(-1, 0, 0), math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.AngleBetween(tt.b); math.Abs(got-tt.want) > tolerance {
				t.Errorf("expected %g, got %g", tt.want, got)
			}
		})
	}
}
