package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDownsample(t *testing.T) {
	t.Parallel()

	c := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	out := Downsample(solid(64, 32, c), 32, 16)
	require.Equal(t, image.Rect(0, 0, 32, 16), out.Bounds())

	got := out.NRGBAAt(10, 8)
	assert.InDelta(t, 200, int(got.R), 1)
	assert.InDelta(t, 100, int(got.G), 1)
	assert.InDelta(t, 50, int(got.B), 1)
	assert.Equal(t, uint8(255), got.A)
}

func TestDownsampleNoop(t *testing.T) {
	t.Parallel()

	img := solid(8, 8, color.NRGBA{A: 255})
	assert.Same(t, img, Downsample(img, 8, 8))
}

// Transparent background must not darken the colour of the opaque half.
func TestDownsampleKeepsEdgeColour(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	out := Downsample(img, 16, 16)
	edge := out.NRGBAAt(7, 8)
	require.Positive(t, edge.A)
	assert.Greater(t, edge.R, uint8(240))
}

func TestOverlay(t *testing.T) {
	t.Parallel()

	bg := color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	img := solid(200, 100, bg)
	out := Overlay(img, "Vista de Camara", "Vista: Superior")

	require.Equal(t, img.Bounds(), out.Bounds())
	assert.NotSame(t, img, out)

	// Title bar is painted, the far corner is untouched.
	bar := out.NRGBAAt(10, 10)
	assert.Greater(t, bar.B, bar.R)
	assert.Equal(t, bg, out.NRGBAAt(199, 99))
	assert.Equal(t, bg, img.NRGBAAt(10, 10))
}
