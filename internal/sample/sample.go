// Package sample drives the instanced tower scene one frame at a time, the
// way a render host calls Update then Render on each tick.
package sample

import (
	"image"

	"instancing-renderer/internal/mathutil"
	"instancing-renderer/internal/mesh"
	"instancing-renderer/internal/raster"
	"instancing-renderer/internal/scene"
	"instancing-renderer/internal/viewmatrix"
)

// Options configures a Sample.
type Options struct {
	Width, Height int
	Layout        []scene.Placement // nil uses scene.DefaultLayout
	WrapAngle     bool
	Texture       *image.NRGBA
	Lights        *raster.LightConfig
	ClearColor    [3]uint8
}

// Snapshot is everything needed to draw one frame after the fact. It owns
// its instance slice, so it can be rendered on another goroutine while the
// sample moves on.
type Snapshot struct {
	Frame     int
	Angle     float64
	View      viewmatrix.Option
	ViewProj  mathutil.Mat4
	Instances []mathutil.Mat4
}

// Sample holds the per-frame state of the scene.
type Sample struct {
	opts      Options
	camera    viewmatrix.Camera
	generator *scene.Generator
	cube      *mesh.Mesh

	frame    int
	view     viewmatrix.Option
	viewProj mathutil.Mat4
	rotation mathutil.Mat4
	buffer   []mathutil.Mat4
}

// New returns a Sample with the angle at scene.InitialAngle and the front view.
func New(opts Options) *Sample {
	g := scene.NewGenerator()
	g.State.Wrap = opts.WrapAngle
	if opts.Layout != nil {
		g.Layout = opts.Layout
	}
	s := &Sample{
		opts:      opts,
		camera:    viewmatrix.DefaultCamera(),
		generator: g,
		cube:      mesh.Cube(),
		rotation:  mathutil.Mat4Identity(),
		buffer:    make([]mathutil.Mat4, len(g.Layout)),
	}
	s.Update(int(viewmatrix.Front))
	return s
}

// Update applies the current view selection and recomputes the
// view-projection matrix. It does not touch the angle.
func (s *Sample) Update(option int) {
	s.view = viewmatrix.Option(option)
	if !s.view.Valid() {
		s.view = viewmatrix.Front
	}
	view := viewmatrix.Select(option)
	s.viewProj = s.camera.ViewProj(view, s.opts.Width, s.opts.Height)
	s.rotation = mathutil.Mat4Identity()
}

// PopulateInstanceBuffer advances the angle one step and regenerates every
// instance transform. The returned slice is reused on the next call.
func (s *Sample) PopulateInstanceBuffer() []mathutil.Mat4 {
	s.buffer = s.generator.Populate(s.buffer)
	s.frame++
	return s.buffer
}

// Angle returns the current rotation phase.
func (s *Sample) Angle() float64 {
	return s.generator.State.Angle
}

// View returns the active view option.
func (s *Sample) View() viewmatrix.Option {
	return s.view
}

// ViewProj returns the matrix computed by the last Update.
func (s *Sample) ViewProj() mathutil.Mat4 {
	return s.viewProj
}

// Rotation returns the global model rotation uploaded next to ViewProj.
// The tower spins through its instance transforms, so this stays identity.
func (s *Sample) Rotation() mathutil.Mat4 {
	return s.rotation
}

// Frame runs one tick: Update with option, then PopulateInstanceBuffer, and
// returns a Snapshot of the result.
func (s *Sample) Frame(option int) Snapshot {
	s.Update(option)
	inst := s.PopulateInstanceBuffer()
	return Snapshot{
		Frame:     s.frame - 1,
		Angle:     s.Angle(),
		View:      s.view,
		ViewProj:  s.viewProj,
		Instances: append([]mathutil.Mat4(nil), inst...),
	}
}

// Render clears fb and draws the current instance buffer in one instanced call.
func (s *Sample) Render(fb *raster.FrameBuffer) raster.Stats {
	return RenderSnapshot(fb, Snapshot{
		ViewProj:  s.viewProj,
		Instances: s.buffer,
	}, s.cube, s.opts)
}

// RenderSnapshot clears fb to the configured clear color and draws snap.
// cube may be shared between goroutines; it is only read.
func RenderSnapshot(fb *raster.FrameBuffer, snap Snapshot, cube *mesh.Mesh, opts Options) raster.Stats {
	c := opts.ClearColor
	fb.Clear(c[0], c[1], c[2], 255)
	return raster.DrawIndexedInstanced(fb, raster.DrawCall{
		Mesh:      cube,
		Instances: snap.Instances,
		ViewProj:  snap.ViewProj,
		Texture:   opts.Texture,
		Lights:    opts.Lights,
	})
}

// Mesh returns the cube every instance draws.
func (s *Sample) Mesh() *mesh.Mesh {
	return s.cube
}

// Options returns the options the sample was built with.
func (s *Sample) Options() Options {
	return s.opts
}
