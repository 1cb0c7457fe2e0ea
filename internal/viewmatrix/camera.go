package viewmatrix

import "instancing-renderer/internal/mathutil"

// Camera holds the fixed projection parameters.
type Camera struct {
	FOV  float64 // vertical, radians
	Near float64
	Far  float64
}

// DefaultCamera is a 45° perspective over [0.1, 100].
func DefaultCamera() Camera {
	return Camera{FOV: mathutil.Deg2Rad(45), Near: 0.1, Far: 100}
}

// SurfacePretransform is the swap-chain orientation fix-up. Offscreen
// targets are never rotated, so it is always identity.
func SurfacePretransform() mathutil.Mat4 {
	return mathutil.Mat4Identity()
}

// Projection returns the projection for a width×height target.
func (c Camera) Projection(width, height int) mathutil.Mat4 {
	aspect := 1.0
	if width > 0 && height > 0 {
		aspect = float64(width) / float64(height)
	}
	return mathutil.Projection(c.FOV, aspect, c.Near, c.Far)
}

// ViewProj returns view × pretransform × projection.
func (c Camera) ViewProj(view mathutil.Mat4, width, height int) mathutil.Mat4 {
	return view.Mul(SurfacePretransform()).Mul(c.Projection(width, height))
}
