// Package imaging provides the image I/O plumbing around the watermark
// core: a cached loader, lightweight metadata, and a format-aware
// writer.
//
// # Loading
//
// Images are decoded through a Cache keyed by file path. The batch
// runner loads each file once, hands the decoded image to the estimator
// and compositor, and evicts it afterwards so memory stays bounded for
// large directories. Supported input formats are PNG and JPEG.
//
// # Writing
//
// Save picks the encoder from the output extension. PNG preserves any
// alpha composited into the image; JPEG has no alpha channel, so the
// image is flattened to an opaque buffer first (straight channel copy
// with alpha forced to full, matching an RGBA-to-RGB conversion).
//
// # Error Handling
//
// Failures wrap the watermark package's sentinel kinds: unreadable or
// corrupt files and encode/write failures are processing failures, an
// unsupported output extension is invalid input.
package imaging
