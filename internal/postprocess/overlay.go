package postprocess

import (
	"image"
	"image/draw"

	"github.com/fogleman/gg"
)

// Panel layout in pixels. Text uses gg's built-in 7×13 face.
const (
	panelMargin  = 8
	panelPadding = 6
	lineHeight   = 15
)

// Overlay draws a small window in the top-left corner with a title bar and
// one line per entry, in the style of an immediate-mode debug panel.
func Overlay(img *image.NRGBA, title string, lines ...string) *image.NRGBA {
	dc := gg.NewContextForImage(img)

	width := 0.0
	for _, s := range append([]string{title}, lines...) {
		if w, _ := dc.MeasureString(s); w > width {
			width = w
		}
	}
	width += 2 * panelPadding
	height := float64(len(lines)+1)*lineHeight + 2*panelPadding

	x, y := float64(panelMargin), float64(panelMargin)

	// Body
	dc.SetRGBA(0.06, 0.06, 0.06, 0.85)
	dc.DrawRectangle(x, y, width, height)
	dc.Fill()

	// Title bar
	dc.SetRGBA(0.16, 0.29, 0.48, 1)
	dc.DrawRectangle(x, y, width, lineHeight+panelPadding)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	baseline := y + panelPadding + lineHeight - 4
	dc.DrawString(title, x+panelPadding, baseline)
	for i, s := range lines {
		dc.DrawString(s, x+panelPadding, baseline+float64(i+1)*lineHeight+panelPadding/2)
	}

	out := image.NewNRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), dc.Image(), dc.Image().Bounds().Min, draw.Src)
	return out
}
