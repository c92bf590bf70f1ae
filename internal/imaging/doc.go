// Package imaging provides the file and pixel plumbing around the defringe
// core: decoding images into mutable grids, encoding results, and inspecting
// or previewing them.
//
// All operations use a coordinate system where (0,0) is at the top-left
// corner, X increases rightward, and Y increases downward.
//
// # Pixel Grids
//
// Recoloring needs a non-premultiplied, caller-owned copy of the decoded
// image. LoadGrid and ToNRGBA always return a fresh *image.NRGBA; images held
// by ImageCache are never mutated. Note that sources stored premultiplied
// (for example *image.RGBA) have already lost the color of fully transparent
// pixels, so there is nothing left to recover for them.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Other functions are
// stateless and can be called concurrently on different images.
//
// # Color Representation
//
// Colors are reported in multiple formats:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Error Handling
//
// Functions return wrapped errors for:
//   - Coordinates outside image bounds
//   - File I/O errors during loading or saving
//   - Unsupported output formats
//   - Invalid color strings
package imaging
