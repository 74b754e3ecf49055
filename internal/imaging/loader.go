package imaging

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/gridmark/gridmark/internal/watermark"
)

// Cache holds decoded images keyed by their file path so a file is read
// and decoded at most once while it is being processed.
//
// Batch processing is sequential, so the cache carries no locking; each
// image is owned by the operation currently processing it. Entries stay
// until Evict or Clear — the batch runner evicts each file after its
// output is written to keep memory bounded.
//
// # Example Usage
//
//	cache := imaging.NewCache()
//	img, err := cache.Load("/path/to/image.png")
//	if err != nil {
//	    return err
//	}
//	// estimate, render, save...
//	cache.Evict("/path/to/image.png")
type Cache struct {
	images map[string]image.Image
}

// NewCache creates an empty image cache ready for use.
func NewCache() *Cache {
	return &Cache{images: make(map[string]image.Image)}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// The image is cached under the exact path string provided; different
// spellings of the same path (relative vs absolute) are separate
// entries, so callers should resolve paths before loading.
//
// # Errors
//
// Unreadable files and undecodable content both wrap
// watermark.ErrProcessingFailure: a corrupt image aborts only the file
// being processed, never the whole batch.
func (c *Cache) Load(path string) (image.Image, error) {
	if img, ok := c.images[path]; ok {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", watermark.ErrProcessingFailure, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", watermark.ErrProcessingFailure, path, err)
	}

	c.images[path] = img
	return img, nil
}

// Evict removes a specific image from the cache by its path. Evicting
// an uncached path does nothing.
func (c *Cache) Evict(path string) {
	delete(c.images, path)
}

// Clear removes all images from the cache, freeing the associated
// memory.
func (c *Cache) Clear() {
	c.images = make(map[string]image.Image)
}

// Info contains metadata about a loaded image file.
type Info struct {
	// Width and Height are the pixel dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the detected image format, "png" or "jpeg", based on
	// the file extension.
	Format string `json:"format"`

	// HasAlpha reports whether the decoded image carries an alpha
	// (transparency) channel.
	HasAlpha bool `json:"has_alpha"`
}

// LoadInfo loads an image through the cache and returns its metadata.
// The parameter estimator consumes only the dimensions; the writer uses
// the format to decide whether alpha survives the round trip.
func LoadInfo(cache *Cache, path string) (*Info, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	}

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
	}

	bounds := img.Bounds()
	return &Info{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Format:   format,
		HasAlpha: hasAlpha,
	}, nil
}
