package geom

// Matrix4 is a 4×4 matrix stored row-major.
// The zero value is NOT the identity; use Identity4 or SetToIdentity.
type Matrix4 [16]float64

// Identity4 returns the identity matrix.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// SetToIdentity overwrites m with the identity matrix.
func (m *Matrix4) SetToIdentity() {
	*m = Identity4()
}

// Multiply returns a × b.
func Multiply(a, b Matrix4) Matrix4 {
	var m Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4+0]*b[0*4+c] + a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] + a[r*4+3]*b[3*4+c]
		}
	}
	return m
}

// MulPoint transforms a point (w=1) by m, without perspective division.
func (m Matrix4) MulPoint(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11],
	}
}

// Translation returns a matrix translating by t.
func Translation(t Vec3) Matrix4 {
	return Matrix4{
		1, 0, 0, t[0],
		0, 1, 0, t[1],
		0, 0, 1, t[2],
		0, 0, 0, 1,
	}
}

// IsIdentity reports whether m is approximately the identity.
func (m Matrix4) IsIdentity() bool {
	id := Identity4()
	for i := 0; i < 16; i++ {
		d := m[i] - id[i]
		if d > 1e-8 || d < -1e-8 {
			return false
		}
	}
	return true
}
