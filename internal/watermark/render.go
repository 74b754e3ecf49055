package watermark

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Render composites the watermark grid described by spec onto a copy of
// src and returns the result. The source image is never mutated.
//
// Each grid cell draws one tile: the text is painted onto a fresh
// transparent buffer, rotated about the tile center with the output
// size unchanged, and source-over composited onto an accumulating
// overlay. The completed overlay is then composited onto the source.
// Tile centers wrap modulo the image dimensions, so tiles stay
// reachable even when the cell pitch exceeds the image size.
//
// Rendering is deterministic: identical inputs produce pixel-identical
// output.
func Render(src image.Image, spec Spec) (*image.NRGBA, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	// Work in a color+alpha format so compositing is well-defined even
	// for sources without an alpha channel.
	base := imaging.Clone(src)
	bounds := base.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	ink := inkBounds(spec.Face, spec.Text)
	textW := (ink.Max.X - ink.Min.X).Ceil()
	textH := (ink.Max.Y - ink.Min.Y).Ceil()
	if textW <= 0 || textH <= 0 {
		// Nothing to draw; the copy is already the final image.
		return base, nil
	}

	overlay := image.NewNRGBA(image.Rect(0, 0, w, h))
	tint := image.NewUniform(color.NRGBA{
		R: spec.Color.R,
		G: spec.Color.G,
		B: spec.Color.B,
		A: spec.Opacity,
	})

	xSpacing := math.Max(float64(w)/float64(spec.Cols), float64(textW)*spec.Spacing)
	ySpacing := math.Max(float64(h)/float64(spec.Rows), float64(textH)*spec.Spacing)

	for row := 0; row < spec.Rows; row++ {
		for col := 0; col < spec.Cols; col++ {
			cx := math.Mod(float64(col)*xSpacing+xSpacing/2, float64(w))
			cy := math.Mod(float64(row)*ySpacing+ySpacing/2, float64(h))

			tile := image.NewNRGBA(image.Rect(0, 0, w, h))
			drawTileText(tile, spec.Face, spec.Text, tint, ink, int(cx)-textW/2, int(cy)-textH/2)

			var rotated image.Image = tile
			if spec.Angle != 0 {
				pivot := image.Pt(int(cx), int(cy))
				rotated = transform.Rotate(tile, spec.Angle, &transform.RotationOptions{
					ResizeBounds: false,
					Pivot:        &pivot,
				})
			}

			draw.Draw(overlay, overlay.Bounds(), rotated, image.Point{}, draw.Over)
		}
	}

	draw.Draw(base, base.Bounds(), overlay, image.Point{}, draw.Over)
	return base, nil
}

// drawTileText paints text so that the top-left corner of its ink
// bounding box lands exactly at (x, y).
func drawTileText(dst draw.Image, face font.Face, text string, src image.Image, ink fixed.Rectangle26_6, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(x) - ink.Min.X,
			Y: fixed.I(y) - ink.Min.Y,
		},
	}
	d.DrawString(text)
}
