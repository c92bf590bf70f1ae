package defringe

import (
	"image"
	"image/color"
)

// opaqueAlpha is the only alpha value that counts as opaque.
const opaqueAlpha = 255

// IsTransparent reports whether a pixel needs recoloring, i.e. its alpha is
// below 255.
func IsTransparent(c color.NRGBA) bool {
	return c.A < opaqueAlpha
}

// CountTransparent returns the number of transparent pixels in img.
func CountTransparent(img *image.NRGBA) int {
	n := 0
	forEachPixel(img, func(i int) {
		if IsTransparent(pixelAt(img.Pix, i)) {
			n++
		}
	})
	return n
}

// pixelAt reads the pixel starting at byte offset i of an NRGBA buffer.
func pixelAt(pix []uint8, i int) color.NRGBA {
	s := pix[i : i+4 : i+4]
	return color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]}
}

// setPixel writes c at byte offset i of an NRGBA buffer.
func setPixel(pix []uint8, i int, c color.NRGBA) {
	s := pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = c.R, c.G, c.B, c.A
}

// forEachPixel calls fn with the Pix offset of every pixel in img, in raster
// order.
func forEachPixel(img *image.NRGBA, fn func(i int)) {
	b := img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			fn(i)
			i += 4
		}
	}
}
