package defringe

import (
	"image"
	"image/color"
	"testing"
)

// newGrid creates a width x height grid filled with c.
func newGrid(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// cloneGrid returns a deep copy of img.
func cloneGrid(img *image.NRGBA) *image.NRGBA {
	out := &image.NRGBA{
		Pix:    make([]uint8, len(img.Pix)),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
	copy(out.Pix, img.Pix)
	return out
}

// assertPixel fails the test if the pixel at (x, y) is not want.
func assertPixel(t *testing.T, img *image.NRGBA, x, y int, want color.NRGBA) {
	t.Helper()
	if got := img.NRGBAAt(x, y); got != want {
		t.Errorf("pixel (%d,%d): got %v, want %v", x, y, got, want)
	}
}

// fringeGrid builds an opaque block with a stale-colored transparent border of
// mixed alpha values, the typical output of a bad export.
func fringeGrid() *image.NRGBA {
	img := newGrid(6, 5, color.NRGBA{255, 0, 255, 0})
	img.SetNRGBA(0, 0, color.NRGBA{12, 200, 7, 128})
	img.SetNRGBA(5, 4, color.NRGBA{90, 90, 90, 254})
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(40 * x), uint8(50 * y), 100, 255})
		}
	}
	return img
}
