package texture

import (
	"bytes"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// Extensions lists the file types LoadTexture can decode, in lookup priority.
var Extensions = []string{".png", ".tga", ".jpg", ".jpeg", ".bmp", ".webp"}

// LoadTexture reads and decodes an image file and returns it as NRGBA with
// its origin at (0, 0). The decoder is picked from the file extension.
func LoadTexture(path string) (*image.NRGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "texture: read %s", path)
	}
	img, err := Decode(raw, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrapf(err, "texture: decode %s", path)
	}
	return img, nil
}

// Decode decodes data as the format named by ext (".png", ".tga", ...)
// into NRGBA. TGA has no magic bytes, so format sniffing is never used.
func Decode(data []byte, ext string) (*image.NRGBA, error) {
	var dec func(io.Reader) (image.Image, error)
	switch strings.ToLower(ext) {
	case ".png":
		dec = png.Decode
	case ".jpg", ".jpeg":
		dec = jpeg.Decode
	case ".tga":
		dec = tga.Decode
	case ".bmp":
		dec = bmp.Decode
	case ".webp":
		dec = webp.Decode
	default:
		return nil, errors.Errorf("unsupported texture extension %q", ext)
	}

	img, err := dec(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return toNRGBA(img), nil
}

// toNRGBA converts any image to a zero-origin NRGBA.
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
