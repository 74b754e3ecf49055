package watermark

import "errors"

// Sentinel error kinds. Call sites wrap these with fmt.Errorf("...: %w", ...)
// so that callers can classify failures with errors.Is while still seeing
// the underlying cause.
var (
	// ErrInvalidInput indicates a missing directory/file or malformed
	// parameters. At the directory level this is fatal to a batch.
	ErrInvalidInput = errors.New("invalid input")

	// ErrResourceUnavailable indicates that a font could not be loaded
	// from any configured source.
	ErrResourceUnavailable = errors.New("resource unavailable")

	// ErrProcessingFailure indicates a corrupt or unreadable image, a
	// render failure, or a write failure. Batch processing records these
	// per file and continues.
	ErrProcessingFailure = errors.New("processing failure")
)
