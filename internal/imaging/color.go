package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents a non-premultiplied RGBA color with 8-bit components.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex         string    `json:"hex"`         // Hex format "#RRGGBB" (no alpha)
	RGB         RGBColor  `json:"rgb"`         // RGB components
	RGBA        RGBAColor `json:"rgba"`        // RGBA components with alpha
	HSL         HSLColor  `json:"hsl"`         // HSL representation
	Transparent bool      `json:"transparent"` // Alpha below 255; a defringe target
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// The color is read without premultiplication, so for a transparent pixel the
// result shows the RGB it actually stores. This is the value that leaks into
// composites as a fringe, and the one a defringe pass rewrites.
//
// Coordinates are 0-based relative to the image bounds' origin.
//
// # Errors
//
// Returns an error if (x, y) lies outside the image bounds.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	px, py := bounds.Min.X+x, bounds.Min.Y+y
	if !(image.Point{X: px, Y: py}).In(bounds) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := color.NRGBAModel.Convert(img.At(px, py)).(color.NRGBA)

	return &ColorResult{
		Hex:         fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B),
		RGB:         RGBColor{R: c.R, G: c.G, B: c.B},
		RGBA:        RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL:         toHSL(c),
		Transparent: c.A < 255,
	}, nil
}

// toHSL converts the RGB part of c to HSL with integer degrees and percents.
func toHSL(c color.NRGBA) HSLColor {
	h, s, l := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hsl()

	return HSLColor{
		H: int(h),
		S: int(s * 100),
		L: int(l * 100),
	}
}
