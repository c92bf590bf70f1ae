package defringe

import (
	"image"
	"image/color"
)

// neighborhood lists the offsets of the 8 cells surrounding a pixel.
var neighborhood = [8]image.Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// RecolorInterpolated fills every transparent pixel with the color of its
// nearest opaque content and then restores the original alpha channel, so
// only RGB changes. It returns the number of passes that found at least one
// pixel still waiting for a color.
//
// # Algorithm
//
// Each pass reads from a copy of the grid taken when the pass starts, so no
// pixel ever sees a value written earlier in the same pass:
//
//  1. For every pixel transparent in the copy, collect the opaque pixels among
//     its 8 neighbors (fewer at edges and corners).
//  2. If there is at least one, write the truncated mean of their RGB with
//     alpha 255. The pixel is now a color source for the next pass.
//  3. Otherwise leave the pixel pending.
//
// The loop ends on the first pass that finds no transparent pixel. A pixel
// N rings (8-connected distance) from the nearest opaque pixel is therefore
// colored on pass N.
//
// If a pass finds transparent pixels but can color none of them, the image
// has no opaque pixel at all. Every pending pixel then gets RGB (0,0,0) and
// the loop ends after that single pass.
//
// # Memory
//
// One read buffer the size of img.Pix is allocated and reused by every pass,
// plus one byte per pixel for the alpha snapshot.
func RecolorInterpolated(img *image.NRGBA) int {
	alpha := snapshotAlpha(img)
	prev := make([]uint8, len(img.Pix))

	passes := 0
	for {
		copy(prev, img.Pix)

		pending, resolved := 0, 0
		b := img.Rect
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				i := img.PixOffset(x, y)
				if !IsTransparent(pixelAt(prev, i)) {
					continue
				}
				pending++

				c, ok := neighborAverage(img, prev, x, y)
				if !ok {
					continue
				}
				setPixel(img.Pix, i, c)
				resolved++
			}
		}

		if pending == 0 {
			break
		}
		passes++

		if resolved == 0 {
			fillPending(img)
			break
		}
	}

	restoreAlpha(img, alpha)
	return passes
}

// neighborAverage averages the RGB of the opaque neighbors of (x, y) in the
// read buffer prev, which shares img's layout. The result is opaque. ok is
// false when no neighbor is opaque.
func neighborAverage(img *image.NRGBA, prev []uint8, x, y int) (c color.NRGBA, ok bool) {
	var r, g, b, n uint32
	for _, d := range neighborhood {
		p := image.Point{X: x + d.X, Y: y + d.Y}
		if !p.In(img.Rect) {
			continue
		}
		np := pixelAt(prev, img.PixOffset(p.X, p.Y))
		if IsTransparent(np) {
			continue
		}
		r += uint32(np.R)
		g += uint32(np.G)
		b += uint32(np.B)
		n++
	}
	if n == 0 {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: opaqueAlpha}, true
}

// fillPending turns every still-transparent pixel into an opaque black source.
func fillPending(img *image.NRGBA) {
	forEachPixel(img, func(i int) {
		if IsTransparent(pixelAt(img.Pix, i)) {
			setPixel(img.Pix, i, color.NRGBA{A: opaqueAlpha})
		}
	})
}

// snapshotAlpha copies the alpha channel of img in raster order.
func snapshotAlpha(img *image.NRGBA) []uint8 {
	alpha := make([]uint8, 0, img.Rect.Dx()*img.Rect.Dy())
	forEachPixel(img, func(i int) {
		alpha = append(alpha, img.Pix[i+3])
	})
	return alpha
}

// restoreAlpha writes a snapshot taken by snapshotAlpha back into img.
func restoreAlpha(img *image.NRGBA, alpha []uint8) {
	k := 0
	forEachPixel(img, func(i int) {
		img.Pix[i+3] = alpha[k]
		k++
	})
}
