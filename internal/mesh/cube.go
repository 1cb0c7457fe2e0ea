package mesh

import "instancing-renderer/internal/mathutil"

// Mesh is an indexed triangle list with one UV per vertex.
type Mesh struct {
	Positions []mathutil.Vec3
	UVs       [][2]float64
	Indices   []uint32
}

// TriangleCount returns the number of triangles described by Indices.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the vertex indices of triangle i.
func (m *Mesh) Triangle(i int) [3]int {
	return [3]int{int(m.Indices[i*3]), int(m.Indices[i*3+1]), int(m.Indices[i*3+2])}
}

// Cube returns a unit cube spanning [-1, 1] on every axis. Each face has its
// own four vertices so the texture maps once per face.
//
//	      (-1,+1,+1)________________(+1,+1,+1)
//	               /|              /|
//	              / |             / |
//	             /  |            /  |
//	            /   |           /   |
//	(-1,-1,+1) /____|__________/(+1,-1,+1)
//	           |    |__________|____|
//	           |   /(-1,+1,-1) |    /(+1,+1,-1)
//	           |  /            |   /
//	           | /             |  /
//	           |/              | /
//	           /_______________|/
//	      (-1,-1,-1)       (+1,-1,-1)
func Cube() *Mesh {
	pos := []mathutil.Vec3{
		{-1, -1, -1}, {-1, +1, -1}, {+1, +1, -1}, {+1, -1, -1}, // -Z
		{-1, -1, -1}, {-1, -1, +1}, {+1, -1, +1}, {+1, -1, -1}, // -Y
		{+1, -1, -1}, {+1, -1, +1}, {+1, +1, +1}, {+1, +1, -1}, // +X
		{+1, +1, -1}, {+1, +1, +1}, {-1, +1, +1}, {-1, +1, -1}, // +Y
		{-1, +1, -1}, {-1, +1, +1}, {-1, -1, +1}, {-1, -1, -1}, // -X
		{-1, -1, +1}, {+1, -1, +1}, {+1, +1, +1}, {-1, +1, +1}, // +Z
	}
	uv := [][2]float64{
		{0, 1}, {0, 0}, {1, 0}, {1, 1},
		{0, 1}, {0, 0}, {1, 0}, {1, 1},
		{0, 1}, {1, 1}, {1, 0}, {0, 0},
		{0, 1}, {0, 0}, {1, 0}, {1, 1},
		{1, 0}, {0, 0}, {0, 1}, {1, 1},
		{1, 1}, {0, 1}, {0, 0}, {1, 0},
	}
	idx := make([]uint32, 0, 36)
	for face := uint32(0); face < 6; face++ {
		b := face * 4
		idx = append(idx, b+2, b, b+1, b+2, b+3, b)
	}
	return &Mesh{Positions: pos, UVs: uv, Indices: idx}
}
