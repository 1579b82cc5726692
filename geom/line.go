package geom

// Line is a ray with an origin and a direction. The direction need not be
// unit length.
type Line struct {
	Origin    Vec3
	Direction Vec3
}

// PointAt returns Origin + Direction*t.
func (l Line) PointAt(t float64) Vec3 {
	return l.Origin.Add(l.Direction.Scale(t))
}

// IntersectPlaneZ intersects the ray with the horizontal plane z == height.
// It reports false when the ray is parallel to the plane or the plane lies
// behind the origin.
func (l Line) IntersectPlaneZ(height float64) (Vec3, bool) {
	dz := l.Direction[2]
	if dz > -1e-12 && dz < 1e-12 {
		return Vec3{}, false
	}
	t := (height - l.Origin[2]) / dz
	if t < 0 {
		return Vec3{}, false
	}
	return l.PointAt(t), true
}
