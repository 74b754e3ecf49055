package watermark

import (
	"fmt"
)

// Estimate option defaults.
const (
	DefaultMinGrid          = 2
	DefaultMaxGrid          = 4
	DefaultTargetSizeRatio  = 4
	DefaultInitialSizeRatio = 15
)

// EstimateOptions tune the parameter estimation heuristic. The zero
// value selects the defaults.
type EstimateOptions struct {
	// MinGrid and MaxGrid clamp the derived grid dimensions.
	MinGrid int
	MaxGrid int

	// TargetSizeRatio sets the watermark footprint as a fraction of the
	// smaller image dimension: footprint = min(w,h)/TargetSizeRatio.
	TargetSizeRatio int

	// InitialSizeRatio sets the provisional font size used for the first
	// text measurement: size = min(w,h)/InitialSizeRatio.
	InitialSizeRatio int
}

func (o EstimateOptions) withDefaults() EstimateOptions {
	if o.MinGrid <= 0 {
		o.MinGrid = DefaultMinGrid
	}
	if o.MaxGrid <= 0 {
		o.MaxGrid = DefaultMaxGrid
	}
	if o.TargetSizeRatio <= 0 {
		o.TargetSizeRatio = DefaultTargetSizeRatio
	}
	if o.InitialSizeRatio <= 0 {
		o.InitialSizeRatio = DefaultInitialSizeRatio
	}
	return o
}

// Params is the estimator output: a grid, a font size, and a spacing
// factor scaled to be visually proportionate to the image dimensions.
type Params struct {
	Rows     int     `json:"rows"`
	Cols     int     `json:"cols"`
	FontSize int     `json:"font_size"`
	Spacing  float64 `json:"spacing_factor"`
}

// Estimate derives watermark parameters for an image of the given pixel
// dimensions. It is a pure function of its inputs; the only I/O is
// reading font data through the resolver.
//
// The heuristic sizes the text footprint to min(w,h)/TargetSizeRatio,
// fits enough grid cells that tiles sit roughly two text widths apart,
// and widens the spacing factor for near-square images (1.8 for
// extremely elongated ones up to 2.2 for squares).
func Estimate(width, height int, text string, fonts FontResolver, opts EstimateOptions) (Params, error) {
	if width <= 0 || height <= 0 {
		return Params{}, fmt.Errorf("%w: image dimensions %dx%d", ErrInvalidInput, width, height)
	}
	if fonts == nil {
		return Params{}, fmt.Errorf("%w: no font resolver", ErrInvalidInput)
	}
	opts = opts.withDefaults()

	short, long := width, height
	if short > long {
		short, long = long, short
	}

	// Provisional size, refined below once the text has been measured.
	initialSize := short / opts.InitialSizeRatio
	if initialSize < 1 {
		initialSize = 1
	}
	face, err := fonts.Face(initialSize)
	if err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrResourceUnavailable, err)
	}
	m := Measure(face, text).floor1()

	target := float64(short) / float64(opts.TargetSizeRatio)
	scale := target / float64(max(m.Width, m.Height))
	fontSize := int(float64(initialSize) * scale)
	if fontSize < 1 {
		fontSize = 1
	}

	face, err = fonts.Face(fontSize)
	if err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrResourceUnavailable, err)
	}
	m = Measure(face, text).floor1()

	cols := clamp(width/(m.Width*2), opts.MinGrid, opts.MaxGrid)
	rows := clamp(int(float64(height)/(float64(m.Height)*2.5)), opts.MinGrid, opts.MaxGrid)

	spacing := 1.8 + float64(short)/float64(long)*0.4

	return Params{
		Rows:     rows,
		Cols:     cols,
		FontSize: fontSize,
		Spacing:  spacing,
	}, nil
}

// floor1 guards against zero-size metrics (empty or all-whitespace
// text) so the footprint math never divides by zero.
func (m Metrics) floor1() Metrics {
	if m.Width < 1 {
		m.Width = 1
	}
	if m.Height < 1 {
		m.Height = 1
	}
	return m
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
