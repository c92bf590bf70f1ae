package defringe

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownAction is returned by ParseAction for names outside the
// recognized set.
var ErrUnknownAction = errors.New("unknown action")

// Action names one recoloring strategy.
type Action string

const (
	ActionBlack   Action = "black" // RecolorUniform
	ActionAverage Action = "avg"   // RecolorAverage
	ActionMatch   Action = "match" // RecolorInterpolated
)

// Actions returns the recognized actions in the order they are presented to
// users.
func Actions() []Action {
	return []Action{ActionBlack, ActionAverage, ActionMatch}
}

// Description returns a one-line explanation of the action for help text.
func (a Action) Description() string {
	switch a {
	case ActionBlack:
		return "transparent pixels go towards black"
	case ActionAverage:
		return "transparent pixels go towards the average of all opaque pixels"
	case ActionMatch:
		return "transparent pixels are interpolated to match their nearest neighbours"
	default:
		return ""
	}
}

// ParseAction maps a user-supplied name to an Action. Matching ignores case
// and surrounding whitespace.
func ParseAction(name string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Actions() {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// RGBColor is an 8-bit RGB triple.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Result summarizes one Apply call.
type Result struct {
	// Action is the strategy that ran.
	Action Action `json:"action"`

	// Width and Height are the grid dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// TransparentPixels is the number of transparent pixels before recoloring.
	TransparentPixels int `json:"transparent_pixels"`

	// PixelsChanged is the number of pixels rewritten by the black strategy.
	PixelsChanged int `json:"pixels_changed,omitempty"`

	// Passes is the number of propagation passes run by the match strategy.
	Passes int `json:"passes,omitempty"`

	// AverageColor and AverageHex hold the color written by the avg strategy.
	AverageColor *RGBColor `json:"average_color,omitempty"`
	AverageHex   string    `json:"average_hex,omitempty"`
}

// Apply runs the strategy named by action on img in place.
//
// On error img is unchanged. Errors wrap ErrUnknownAction or
// ErrNoOpaquePixels.
func Apply(img *image.NRGBA, action Action) (*Result, error) {
	res := &Result{
		Action:            action,
		Width:             img.Rect.Dx(),
		Height:            img.Rect.Dy(),
		TransparentPixels: CountTransparent(img),
	}

	switch action {
	case ActionBlack:
		res.PixelsChanged = RecolorUniform(img)
	case ActionAverage:
		avg, err := RecolorAverage(img)
		if err != nil {
			return nil, fmt.Errorf("failed to compute average color: %w", err)
		}
		res.AverageColor = &RGBColor{R: avg.R, G: avg.G, B: avg.B}
		res.AverageHex = hexOf(avg)
	case ActionMatch:
		res.Passes = RecolorInterpolated(img)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, string(action))
	}

	return res, nil
}

// hexOf formats the RGB part of c as "#rrggbb".
func hexOf(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}
