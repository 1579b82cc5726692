package worldwind

import (
	"image"
	"testing"

	"github.com/gogpu/worldwind/geom"
)

func TestScreenNavigator_Matrices(t *testing.T) {
	p, mv, inf := ScreenNavigator{}.Matrices(image.Rect(0, 0, 10, 10))
	for name, m := range map[string]geom.Matrix4{"projection": p, "modelview": mv, "infinite": inf} {
		if !m.IsIdentity() {
			t.Errorf("%s is not identity", name)
		}
	}
}

func TestScreenNavigator_PickRay(t *testing.T) {
	vp := image.Rect(0, 0, 10, 10)
	tests := []struct {
		name   string
		nav    ScreenNavigator
		p      image.Point
		wantOK bool
		origin geom.Vec3
	}{
		{"default altitude", ScreenNavigator{}, image.Pt(3, 4), true, geom.Vec3{3.5, 4.5, DefaultEyeAltitude}},
		{"custom altitude", ScreenNavigator{EyeAltitude: 7}, image.Pt(0, 0), true, geom.Vec3{0.5, 0.5, 7}},
		{"outside", ScreenNavigator{}, image.Pt(10, 3), false, geom.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray, ok := tt.nav.PickRay(vp, tt.p)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if ray.Origin != tt.origin {
				t.Errorf("origin = %v, want %v", ray.Origin, tt.origin)
			}
			if ray.Direction != (geom.Vec3{0, 0, -1}) {
				t.Errorf("direction = %v, want -Z", ray.Direction)
			}
		})
	}
}
