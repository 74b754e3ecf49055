package watermark

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font"
)

// Defaults for the rendering recipe. These apply when a field is neither
// estimated from the image nor supplied by the user.
const (
	DefaultGridRows = 3
	DefaultGridCols = 3
	DefaultAngle    = -30.0
	DefaultSpacing  = 1.5
	DefaultFontSize = 36
	DefaultOpacity  = 128
)

// DefaultColor is the default watermark fill color (white).
var DefaultColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// FontResolver yields a font face at a requested pixel size. It is the
// only collaborator the estimator performs I/O through.
type FontResolver interface {
	Face(size int) (font.Face, error)
}

// Spec is the rendering recipe for a single watermark pass: the text,
// the face it is drawn with, and the grid geometry. A Spec is treated as
// immutable for the duration of a Render call.
type Spec struct {
	// Text is the watermark string. Required.
	Text string

	// Face is the font face used both to measure and to draw Text.
	Face font.Face

	// Color is the fill color. The alpha channel is ignored; opacity is
	// controlled by Opacity.
	Color color.NRGBA

	// Opacity is the tile opacity, 0 (invisible) to 255 (opaque).
	Opacity uint8

	// Angle is the per-tile rotation in degrees. Each tile rotates about
	// its own center; content leaving the image bounds is clipped.
	Angle float64

	// Rows and Cols define the tile grid.
	Rows int
	Cols int

	// Spacing multiplies the text bounding box to compute the minimum
	// inter-tile pitch. Must be >= 1.
	Spacing float64
}

// NewSpec returns a Spec for text and face with all other fields at
// their defaults.
func NewSpec(text string, face font.Face) Spec {
	return Spec{
		Text:    text,
		Face:    face,
		Color:   DefaultColor,
		Opacity: DefaultOpacity,
		Angle:   DefaultAngle,
		Rows:    DefaultGridRows,
		Cols:    DefaultGridCols,
		Spacing: DefaultSpacing,
	}
}

func (s Spec) validate() error {
	if s.Text == "" {
		return fmt.Errorf("%w: watermark text is empty", ErrInvalidInput)
	}
	if s.Face == nil {
		return fmt.Errorf("%w: no font face", ErrInvalidInput)
	}
	if s.Rows < 1 || s.Cols < 1 {
		return fmt.Errorf("%w: grid %dx%d must be at least 1x1", ErrInvalidInput, s.Rows, s.Cols)
	}
	if s.Spacing < 1 {
		return fmt.Errorf("%w: spacing factor %.2f must be >= 1", ErrInvalidInput, s.Spacing)
	}
	return nil
}
