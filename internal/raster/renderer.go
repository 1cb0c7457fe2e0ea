package raster

import (
	"image"
	"image/color"

	"instancing-renderer/internal/mathutil"
	"instancing-renderer/internal/mesh"
)

// nearW is the smallest clip-space w a vertex may have before its triangle is
// dropped. Triangles crossing the near plane are not clipped.
const nearW = 1e-6

// DefaultColor is used for meshes drawn without a texture.
var DefaultColor = color.NRGBA{R: 160, G: 160, B: 170, A: 255}

// Stats counts the work done by one draw call.
type Stats struct {
	Instances int
	Triangles int // triangles submitted
	Culled    int // dropped behind the near plane or degenerate
	Pixels    int // pixels written
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Instances += o.Instances
	s.Triangles += o.Triangles
	s.Culled += o.Culled
	s.Pixels += o.Pixels
}

// DrawCall describes one instanced, indexed draw.
type DrawCall struct {
	Mesh      *mesh.Mesh
	Instances []mathutil.Mat4 // per-instance world transforms
	ViewProj  mathutil.Mat4
	Texture   *image.NRGBA // nil draws DefaultColor
	Lights    *LightConfig // nil draws unlit
}

// DrawIndexedInstanced draws every triangle of the mesh once per instance.
func DrawIndexedInstanced(fb *FrameBuffer, dc DrawCall) Stats {
	var st Stats
	m := dc.Mesh
	if m == nil || len(m.Positions) == 0 {
		return st
	}

	n := len(m.Positions)
	world := make([]mathutil.Vec3, n)
	proj := make([]Vertex, n)
	behind := make([]bool, n)
	hasUV := len(m.UVs) == n

	halfW := float64(fb.Width) / 2
	halfH := float64(fb.Height) / 2

	for _, inst := range dc.Instances {
		st.Instances++

		// Vertex stage
		for i, p := range m.Positions {
			w := inst.TransformPoint(p)
			world[i] = w
			clip := dc.ViewProj.TransformVec4(w, 1)
			if clip[3] <= nearW {
				behind[i] = true
				continue
			}
			behind[i] = false
			invW := 1 / clip[3]
			v := Vertex{
				X:    (clip[0]*invW + 1) * halfW,
				Y:    (1 - clip[1]*invW) * halfH,
				Z:    clip[2] * invW,
				InvW: invW,
			}
			if hasUV {
				v.UW = m.UVs[i][0] * invW
				v.VW = m.UVs[i][1] * invW
			}
			proj[i] = v
		}

		// Primitive stage
		for t := 0; t < m.TriangleCount(); t++ {
			st.Triangles++
			tri := m.Triangle(t)
			if tri[0] >= n || tri[1] >= n || tri[2] >= n ||
				behind[tri[0]] || behind[tri[1]] || behind[tri[2]] {
				st.Culled++
				continue
			}

			normal := world[tri[1]].Sub(world[tri[0]]).Cross(world[tri[2]].Sub(world[tri[0]]))
			if normal.Len() < 1e-12 {
				st.Culled++
				continue
			}
			shade := 1.0
			if dc.Lights != nil {
				shade = dc.Lights.ComputeShade(normal.Normalize())
			}

			st.Pixels += RasterizeTriangle(fb,
				[3]Vertex{proj[tri[0]], proj[tri[1]], proj[tri[2]]},
				dc.Texture, DefaultColor, shade, dc.Lights)
		}
	}
	return st
}
