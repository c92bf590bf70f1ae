package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/png-defringe/internal/defringe"
)

// ErrEmptyImage is returned when a decoded image has no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// ImageCache provides thread-safe caching of decoded images to avoid redundant
// disk reads.
//
// The cache stores decoded image.Image objects keyed by their file path. Cached
// images are shared and must be treated as read-only; use LoadGrid or ToNRGBA
// to obtain a copy that can be recolored.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	grid, err := imaging.LoadGrid(cache, "/path/to/sprite.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defringe.RecolorInterpolated(grid)
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk if not
// cached. Supported formats are PNG, JPEG, and GIF.
//
// The image is cached using the exact path string provided. Different paths to
// the same file (e.g., relative vs absolute) result in separate cache entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path. Evicting a path
// that is not cached does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ToNRGBA returns a deep copy of img as a non-premultiplied RGBA grid with
// bounds starting at (0,0). The copy is owned by the caller.
func ToNRGBA(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// LoadGrid loads the image at path through cache and returns a mutable
// NRGBA copy of it.
//
// # Errors
//
//   - The file cannot be opened or decoded
//   - The image is 0 pixels wide or tall (ErrEmptyImage)
func LoadGrid(cache *ImageCache, path string) (*image.NRGBA, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyImage)
	}
	return ToNRGBA(img), nil
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected image format: "png", "jpeg", "gif", or "unknown".
	// Detection is based on file extension, not file contents.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the decoded image type carries an alpha
	// channel.
	HasAlpha bool `json:"has_alpha"`

	// Premultiplied is true when the decoded pixels are stored with
	// premultiplied alpha, in which case transparent pixels carry no color.
	Premultiplied bool `json:"premultiplied"`

	// TransparentPixels is the number of pixels with alpha below 255.
	TransparentPixels int `json:"transparent_pixels"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image and returns metadata about it, including how
// many of its pixels a defringe pass would recolor.
//
// # Format Detection
//
// The format is determined by file extension:
//   - ".png" -> "png"
//   - ".jpg", ".jpeg" -> "jpeg"
//   - ".gif" -> "gif"
//   - Other extensions -> "unknown"
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	hasAlpha := false
	premultiplied := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.NRGBA:
		hasAlpha = true
	case *image.RGBA:
		hasAlpha = true
		premultiplied = true
	case *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.RGBA64:
		hasAlpha = true
		premultiplied = true
		colorDepth = "16-bit"
	case *image.Paletted:
		hasAlpha = true
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:             bounds.Dx(),
		Height:            bounds.Dy(),
		Format:            format,
		ColorDepth:        colorDepth,
		HasAlpha:          hasAlpha,
		Premultiplied:     premultiplied,
		TransparentPixels: defringe.CountTransparent(ToNRGBA(img)),
		FileSizeBytes:     stat.Size(),
	}, nil
}
