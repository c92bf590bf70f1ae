package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// KeepsAlpha reports whether the format chosen by the extension of path stores
// a full 8-bit alpha channel. GIF is excluded since its transparency is a
// single palette entry. Unknown extensions report false.
func KeepsAlpha(path string) bool {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return false
	}
	switch format {
	case imaging.PNG, imaging.TIFF:
		return true
	default:
		return false
	}
}

// Save encodes img to path, choosing the format from the file extension
// (png, jpg/jpeg, gif, tif/tiff, bmp). Missing parent directories are created.
//
// # Errors
//
//   - The extension does not name a supported format
//   - The directory or file cannot be created
//   - Encoding fails
func Save(img image.Image, path string) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}
