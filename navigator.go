package worldwind

import (
	"image"

	"github.com/gogpu/worldwind/geom"
)

// Navigator supplies the viewing matrices and pick rays for the current
// viewpoint. It is called on the render goroutine.
type Navigator interface {
	// Matrices returns the projection, modelview and infinite projection
	// for viewport.
	Matrices(viewport image.Rectangle) (projection, modelview, infinite geom.Matrix4)

	// PickRay returns the ray through screen point p. It reports false when
	// p has no ray, for example outside the viewport.
	PickRay(viewport image.Rectangle, p image.Point) (geom.Line, bool)
}

// DefaultEyeAltitude is the ScreenNavigator eye height when none is set.
const DefaultEyeAltitude = 1e4

// ScreenNavigator looks straight down on a screen-aligned model: model x
// and y are pixel coordinates and z is height.
type ScreenNavigator struct {
	// EyeAltitude is the height rays start from. Zero means
	// DefaultEyeAltitude.
	EyeAltitude float64
}

// Matrices returns identity matrices.
func (ScreenNavigator) Matrices(image.Rectangle) (projection, modelview, infinite geom.Matrix4) {
	return geom.Identity4(), geom.Identity4(), geom.Identity4()
}

// PickRay casts a ray along -Z through the centre of pixel p.
func (n ScreenNavigator) PickRay(viewport image.Rectangle, p image.Point) (geom.Line, bool) {
	if !p.In(viewport) {
		return geom.Line{}, false
	}
	alt := n.EyeAltitude
	if alt == 0 {
		alt = DefaultEyeAltitude
	}
	return geom.Line{
		Origin:    geom.Vec3{float64(p.X) + 0.5, float64(p.Y) + 0.5, alt},
		Direction: geom.Vec3{0, 0, -1},
	}, true
}
