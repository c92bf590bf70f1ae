package defringe

import (
	"image"
	"image/color"
)

// transparentBlack is what the black strategy writes.
var transparentBlack = color.NRGBA{}

// RecolorUniform overwrites every transparent pixel with (0,0,0,0) and returns
// the number of pixels it rewrote. Opaque pixels are left untouched.
//
// Original alpha is discarded for transparent pixels. Applying RecolorUniform
// a second time changes nothing.
func RecolorUniform(img *image.NRGBA) int {
	changed := 0
	forEachPixel(img, func(i int) {
		if IsTransparent(pixelAt(img.Pix, i)) {
			setPixel(img.Pix, i, transparentBlack)
			changed++
		}
	})
	return changed
}
