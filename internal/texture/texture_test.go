package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

var encoders = map[string]func(io.Writer, image.Image) error{
	".png":  png.Encode,
	".tga":  tga.Encode,
	".bmp":  bmp.Encode,
	".jpg":  func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, &jpeg.Options{Quality: 100}) },
	".jpeg": func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, &jpeg.Options{Quality: 100}) },
	".webp": func(w io.Writer, m image.Image) error { return nativewebp.Encode(w, m, nil) },
}

func solid(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// writeImage encodes a 2x2 solid image in the format named by path's extension.
func writeImage(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	enc, ok := encoders[filepath.Ext(path)]
	require.True(t, ok, "no encoder for %s", path)

	var buf bytes.Buffer
	require.NoError(t, enc(&buf, solid(c)))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestLoadTexture(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	writeImage(t, path, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	img, err := LoadTexture(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, img.NRGBAAt(1, 1))
}

func TestLoadTextureFormats(t *testing.T) {
	t.Parallel()

	want := color.NRGBA{R: 200, G: 120, B: 40, A: 255}
	for _, ext := range Extensions {
		t.Run(ext, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "logo"+ext)
			writeImage(t, path, want)

			img, err := LoadTexture(path)
			require.NoError(t, err)
			require.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())

			got := img.NRGBAAt(1, 1)
			delta := 0.0
			if ext == ".jpg" || ext == ".jpeg" {
				delta = 4
			}
			assert.InDelta(t, want.R, got.R, delta)
			assert.InDelta(t, want.G, got.G, delta)
			assert.InDelta(t, want.B, got.B, delta)
			assert.Equal(t, uint8(255), got.A)
		})
	}
}

func TestDecodeByExtension(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(color.NRGBA{R: 1, A: 255})))

	img, err := Decode(buf.Bytes(), ".PNG")
	require.NoError(t, err)
	assert.Equal(t, uint8(1), img.NRGBAAt(0, 0).R)

	// PNG bytes are never handed to another decoder.
	_, err = Decode(buf.Bytes(), ".tga")
	assert.Error(t, err)

	_, err = Decode(buf.Bytes(), ".gif")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported texture extension")
}

func TestLoadTextureErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := LoadTexture(filepath.Join(dir, "missing.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "texture: read")

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = LoadTexture(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "texture: decode")
}

func TestToNRGBARebasesOrigin(t *testing.T) {
	t.Parallel()

	src := image.NewRGBA(image.Rect(5, 5, 7, 8))
	src.Set(5, 5, color.RGBA{R: 255, A: 255})
	dst := toNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 3), dst.Bounds())
	assert.Equal(t, uint8(255), dst.NRGBAAt(0, 0).R)
}

func TestIndexResolve(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "DGLogo.png"), color.NRGBA{A: 255})
	writeImage(t, filepath.Join(dir, "sub", "Stone.png"), color.NRGBA{A: 255})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	idx := BuildIndex(dir)
	assert.Equal(t, 2, idx.Len())

	p, ok := idx.ResolvePath("dglogo")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "DGLogo.png"), p)

	_, ok = idx.ResolvePath(`textures\STONE.jpg`)
	assert.True(t, ok)

	_, ok = idx.ResolvePath("notes")
	assert.False(t, ok)
}

func TestIndexPrefersEarlierExtension(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		files []string
		want  string
	}{
		{"png over bmp", []string{"a/wood.bmp", "b/wood.png"}, ".png"},
		{"tga over jpg", []string{"wood.jpg", "wood.tga"}, ".tga"},
		{"jpg over webp", []string{"x/wood.webp", "wood.jpg"}, ".jpg"},
		{"jpeg over bmp", []string{"wood.bmp", "wood.jpeg"}, ".jpeg"},
		{"bmp over webp", []string{"wood.webp", "wood.bmp"}, ".bmp"},
		{"case-insensitive stem", []string{"WOOD.webp", "sub/Wood.png"}, ".png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for _, f := range tc.files {
				writeImage(t, filepath.Join(dir, filepath.FromSlash(f)), color.NRGBA{A: 255})
			}

			idx := BuildIndex(dir)
			assert.Equal(t, 1, idx.Len())
			p, ok := idx.ResolvePath("wood")
			require.True(t, ok)
			assert.Equal(t, tc.want, filepath.Ext(p))

			_, err := LoadTexture(p)
			assert.NoError(t, err)
		})
	}
}

func TestBuildIndexEmptyDir(t *testing.T) {
	t.Parallel()

	assert.Zero(t, BuildIndex("").Len())
	assert.Zero(t, BuildIndex(filepath.Join(t.TempDir(), "nope")).Len())
}

func TestCacheResolve(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	writeImage(t, path, color.NRGBA{G: 99, A: 255})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("junk"), 0o644))

	c := NewCache(BuildIndex(dir), nil)
	first := c.Resolve("logo")
	require.NotNil(t, first)
	assert.Same(t, first, c.Resolve("LOGO.png"))

	// Removing the file does not evict the cached image.
	require.NoError(t, os.Remove(path))
	assert.Same(t, first, c.Resolve("logo"))

	assert.Nil(t, c.Resolve("broken"))
	assert.Nil(t, c.Resolve("unknown"))

	var _ Resolver = c
}
