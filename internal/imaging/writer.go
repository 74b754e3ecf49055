package imaging

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/gridmark/gridmark/internal/watermark"
)

// JPEGQuality is the encode quality for JPEG outputs.
const JPEGQuality = 90

// FlattenOpaque returns an opaque copy of img. Color channels are
// copied straight and alpha is forced to full, the same channel-drop an
// RGBA-to-RGB conversion performs. Use it before encoding to a format
// without an alpha channel.
func FlattenOpaque(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

// Save encodes img to path, choosing the format from the extension
// (case-insensitive). JPEG outputs are flattened to opaque first; PNG
// outputs keep their alpha channel.
func Save(img image.Image, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		flat := FlattenOpaque(img)
		if err := imaging.Save(flat, path, imaging.JPEGQuality(JPEGQuality)); err != nil {
			return fmt.Errorf("%w: save %s: %v", watermark.ErrProcessingFailure, path, err)
		}
		return nil
	case ".png":
		if err := imaging.Save(img, path); err != nil {
			return fmt.Errorf("%w: save %s: %v", watermark.ErrProcessingFailure, path, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported output format %q", watermark.ErrInvalidInput, filepath.Ext(path))
	}
}
