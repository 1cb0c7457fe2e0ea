package mathutil

import "math"

// Mat4 is a 4×4 matrix stored row-major and applied to row vectors
// (p' = p × M). A product A × B therefore applies A first, then B.
type Mat4 [16]float64

// Mat4Identity returns the identity matrix.
func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4+0]*b[0*4+c] + a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] + a[r*4+3]*b[3*4+c]
		}
	}
	return m
}

// Mul returns m × n.
func (m Mat4) Mul(n Mat4) Mat4 {
	return Mat4Mul(m, n)
}

// Scale returns a non-uniform scale matrix.
func Scale(x, y, z float64) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// ScaleVec is Scale with the factors taken from v.
func ScaleVec(v Vec3) Mat4 {
	return Scale(v[0], v[1], v[2])
}

// Translation returns a translation matrix. The offset lives in the last row.
func Translation(x, y, z float64) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// TranslationVec is Translation with the offset taken from v.
func TranslationVec(v Vec3) Mat4 {
	return Translation(v[0], v[1], v[2])
}

// Projection returns a left-handed perspective projection that maps view
// depth [near, far] to [0, 1]. fov is the vertical field of view in radians.
func Projection(fov, aspect, near, far float64) Mat4 {
	yScale := 1 / math.Tan(fov/2)
	xScale := yScale / aspect
	return Mat4{
		xScale, 0, 0, 0,
		0, yScale, 0, 0,
		0, 0, far / (far - near), 1,
		0, 0, -near * far / (far - near), 0,
	}
}

// TransformVec4 returns (v, w) × M as a homogeneous 4-vector.
func (m Mat4) TransformVec4(v Vec3, w float64) [4]float64 {
	var out [4]float64
	for c := 0; c < 4; c++ {
		out[c] = v[0]*m[c] + v[1]*m[4+c] + v[2]*m[8+c] + w*m[12+c]
	}
	return out
}

// TransformPoint transforms a 3D point (w=1), ignoring the projective row.
func (m Mat4) TransformPoint(v Vec3) Vec3 {
	p := m.TransformVec4(v, 1)
	return Vec3{p[0], p[1], p[2]}
}

// Float32 returns the matrix in the float32 layout GPU instance buffers use.
func (m Mat4) Float32() [16]float32 {
	var out [16]float32
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

// ApproxEqual reports whether every element of m and n differs by at most eps.
func (m Mat4) ApproxEqual(n Mat4, eps float64) bool {
	for i := 0; i < 16; i++ {
		if math.Abs(m[i]-n[i]) > eps {
			return false
		}
	}
	return true
}

// IsIdentity checks if the matrix is approximately identity.
func (m Mat4) IsIdentity() bool {
	return m.ApproxEqual(Mat4Identity(), 1e-8)
}
