package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPreviewBackground is a color that rarely occurs in artwork, so any
// fringe left over stands out against it.
const DefaultPreviewBackground = "#FF00FF"

// PreviewResult contains a flattened preview encoded as base64 PNG.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Background  string `json:"background"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview flattens img over a solid background, optionally upscaling it
// first, and returns the result as an opaque PNG.
//
// Parameters:
//   - img: The image to preview, usually a defringed grid.
//   - backgroundHex: Background as "#RRGGBB" or "#RGB". Empty selects
//     DefaultPreviewBackground.
//   - scale: Upscale factor applied with linear filtering before compositing.
//     Values <= 0 or 1.0 leave the size unchanged.
//
// # Errors
//
//   - backgroundHex is not a valid hex color
//   - PNG encoding fails
func Preview(img image.Image, backgroundHex string, scale float64) (*PreviewResult, error) {
	if backgroundHex == "" {
		backgroundHex = DefaultPreviewBackground
	}
	bg, err := colorful.Hex(backgroundHex)
	if err != nil {
		return nil, fmt.Errorf("invalid background color %q: %w", backgroundHex, err)
	}

	src := ToNRGBA(img)
	if scale > 0 && scale != 1.0 {
		w := max(1, int(float64(src.Bounds().Dx())*scale))
		h := max(1, int(float64(src.Bounds().Dy())*scale))
		src = imaging.Resize(src, w, h, imaging.Linear)
	}

	backdrop := imaging.New(src.Bounds().Dx(), src.Bounds().Dy(), bg)
	flat := blend.Normal(backdrop, src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, flat); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       flat.Bounds().Dx(),
		Height:      flat.Bounds().Dy(),
		Background:  bg.Hex(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
