package watermark

import (
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Metrics is the measured ink bounding box of a string rendered with a
// given face. It is derived data: recompute it whenever the text, font,
// or size changes.
type Metrics struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Measure returns the ink bounding box of text in whole pixels.
func Measure(face font.Face, text string) Metrics {
	bounds, _ := font.BoundString(face, text)
	return Metrics{
		Width:  (bounds.Max.X - bounds.Min.X).Ceil(),
		Height: (bounds.Max.Y - bounds.Min.Y).Ceil(),
	}
}

// inkBounds returns the raw fixed-point bounding box, used by the
// compositor to anchor the ink box top-left at an exact pixel position.
func inkBounds(face font.Face, text string) fixed.Rectangle26_6 {
	bounds, _ := font.BoundString(face, text)
	return bounds
}
