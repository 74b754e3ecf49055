// Package watermark implements the core of gridmark: estimating
// proportionate watermark parameters for an image and compositing a
// repeating, rotated text tile grid onto it.
//
// The two entry points are Estimate and Render. Both are pure with
// respect to their inputs: Estimate reads font data through its
// resolver and nothing else, and Render always works on a copy of the
// source image. Neither function logs; callers receive results and
// errors only.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left
// corner: X increases rightward, Y increases downward. Tile centers are
// computed in this space and wrap modulo the image dimensions, so every
// grid cell lands inside the image even when the cell pitch exceeds the
// image size.
//
// # Error Kinds
//
// Failures are classified by three sentinel errors that callers test
// with errors.Is:
//   - ErrInvalidInput: malformed parameters or missing inputs
//   - ErrResourceUnavailable: no usable font could be loaded
//   - ErrProcessingFailure: an image could not be read, rendered, or written
package watermark
