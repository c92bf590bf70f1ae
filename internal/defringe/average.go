package defringe

import (
	"errors"
	"image"
	"image/color"
)

// ErrNoOpaquePixels is returned by the average strategy when the image has no
// opaque pixel to average over.
var ErrNoOpaquePixels = errors.New("no opaque pixels in image")

// AverageColor returns the mean color of all opaque pixels in img.
//
// Each channel is the truncated integer mean of the opaque pixels' values.
// The returned alpha is always 0. If img has no opaque pixel, AverageColor
// returns ErrNoOpaquePixels.
func AverageColor(img *image.NRGBA) (color.NRGBA, error) {
	var r, g, b, count uint64
	forEachPixel(img, func(i int) {
		p := pixelAt(img.Pix, i)
		if IsTransparent(p) {
			return
		}
		r += uint64(p.R)
		g += uint64(p.G)
		b += uint64(p.B)
		count++
	})

	if count == 0 {
		return color.NRGBA{}, ErrNoOpaquePixels
	}

	return color.NRGBA{
		R: uint8(r / count),
		G: uint8(g / count),
		B: uint8(b / count),
		A: 0,
	}, nil
}

// RecolorAverage overwrites every transparent pixel with the mean color of the
// opaque pixels, alpha 0, and returns that color.
//
// The average is computed before anything is written, so on error img is
// unchanged.
func RecolorAverage(img *image.NRGBA) (color.NRGBA, error) {
	avg, err := AverageColor(img)
	if err != nil {
		return color.NRGBA{}, err
	}

	forEachPixel(img, func(i int) {
		if IsTransparent(pixelAt(img.Pix, i)) {
			setPixel(img.Pix, i, avg)
		}
	})
	return avg, nil
}
