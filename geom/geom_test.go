package geom

import (
	"math"
	"testing"
)

func TestMatrix4Identity(t *testing.T) {
	var m Matrix4
	if m.IsIdentity() {
		t.Error("zero matrix reported as identity")
	}
	m.SetToIdentity()
	if !m.IsIdentity() {
		t.Error("SetToIdentity did not produce identity")
	}
}

func TestMultiplyTranslation(t *testing.T) {
	a := Translation(Vec3{1, 2, 3})
	b := Translation(Vec3{10, 20, 30})
	got := Multiply(a, b).MulPoint(Vec3{})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("translated origin = %v, want %v", got, want)
	}
	if Multiply(Identity4(), a) != a {
		t.Error("identity multiply changed matrix")
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}.Normalize()
	if math.Abs(v.Len()-1) > 1e-12 {
		t.Errorf("Len() = %v, want 1", v.Len())
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("degenerate vector should normalize to zero")
	}
}

func TestLineIntersectPlaneZ(t *testing.T) {
	tests := []struct {
		name   string
		line   Line
		height float64
		want   Vec3
		ok     bool
	}{
		{
			name: "straight down",
			line: Line{Origin: Vec3{5, 6, 100}, Direction: Vec3{0, 0, -1}},
			want: Vec3{5, 6, 0},
			ok:   true,
		},
		{
			name:   "raised plane",
			line:   Line{Origin: Vec3{0, 0, 100}, Direction: Vec3{0, 0, -2}},
			height: 40,
			want:   Vec3{0, 0, 40},
			ok:     true,
		},
		{
			name: "parallel",
			line: Line{Origin: Vec3{0, 0, 100}, Direction: Vec3{1, 0, 0}},
		},
		{
			name: "pointing away",
			line: Line{Origin: Vec3{0, 0, 100}, Direction: Vec3{0, 0, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.line.IntersectPlaneZ(tt.height)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("point = %v, want %v", got, tt.want)
			}
		})
	}
}
