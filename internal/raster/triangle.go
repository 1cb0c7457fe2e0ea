package raster

import (
	"image"
	"image/color"
	"math"
)

// Vertex is a projected vertex: pixel coordinates, NDC depth, 1/w and
// perspective-divided texture coordinates (U/w, V/w).
type Vertex struct {
	X, Y, Z float64
	InvW    float64
	UW, VW  float64
}

// RasterizeTriangle fills one screen-space triangle with depth testing and
// perspective-correct texturing. shade is the flat lighting scalar for the
// face; lc == nil writes texels unlit. Returns the number of pixels written.
//
// This is the hot path: no allocation inside the pixel loop.
func RasterizeTriangle(
	fb *FrameBuffer,
	v [3]Vertex,
	tex *image.NRGBA,
	base color.NRGBA,
	shade float64,
	lc *LightConfig,
) int {
	x0, y0 := v[0].X, v[0].Y
	x1, y1 := v[1].X, v[1].Y
	x2, y2 := v[2].X, v[2].Y

	// Bounding box, clamped to the target
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return 0
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return 0
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	written := 0
	for sy := minY; sy <= maxY; sy++ {
		py := float64(sy) + 0.5
		dsy := py - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			px := float64(sx) + 0.5
			dsx := px - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*v[0].Z + w1*v[1].Z + w2*v[2].Z
			if z < 0 || z > 1 {
				continue
			}
			zIdx := rowOff + sx
			if z >= fb.Depth[zIdx] {
				continue
			}

			cr, cg, cb, ca := base.R, base.G, base.B, base.A
			if tex != nil {
				invW := w0*v[0].InvW + w1*v[1].InvW + w2*v[2].InvW
				u := (w0*v[0].UW + w1*v[1].UW + w2*v[2].UW) / invW
				tv := (w0*v[0].VW + w1*v[1].VW + w2*v[2].VW) / invW
				cr, cg, cb, ca = SampleTexture(tex, u, tv)
			}

			// Skip transparent texels
			if ca < 8 {
				continue
			}
			fb.Depth[zIdx] = z

			if lc != nil {
				cr, cg, cb = lc.Shade(cr, cg, cb, shade)
			}

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = cr
			fb.Color[pxIdx+1] = cg
			fb.Color[pxIdx+2] = cb
			fb.Color[pxIdx+3] = 255
			written++
		}
	}
	return written
}
