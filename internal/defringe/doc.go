// Package defringe recolors the transparent pixels of an RGBA image so that
// their stale color values no longer bleed into composites or filtered
// upscales.
//
// A pixel is transparent when its alpha is below 255. Transparency is treated
// as a binary property; partially transparent pixels are recolored exactly
// like fully transparent ones.
//
// # Strategies
//
// Three strategies are available, selected by Action:
//   - black: transparent pixels become (0,0,0,0)
//   - avg: transparent pixels take the mean color of all opaque pixels, alpha 0
//   - match: transparent pixels take the color of their nearest opaque
//     neighbors, propagated outward one ring per pass; original alpha is kept
//
// The black and avg strategies zero the alpha of every pixel they touch, while
// match restores each pixel's original alpha. The two contracts differ on
// purpose and callers should not expect a uniform rule.
//
// # Pixel Grid
//
// All operations work in place on *image.NRGBA. Non-premultiplied storage is
// required because premultiplied RGBA has already discarded the color of an
// alpha-0 pixel. The grid must be at least 1×1; its bounds need not start at
// the origin.
//
// # Thread Safety
//
// Operations are synchronous and keep no package state. A grid must not be
// read or written by other goroutines while an operation runs on it.
package defringe
