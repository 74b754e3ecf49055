// Package batch sequentially watermarks every image in a directory.
//
// For each enumerated file the runner estimates parameters from the
// image dimensions, merges any explicit user overrides over the
// estimate, renders the tile grid, and writes the result to the output
// directory. A failure on one file is logged and recorded in the
// summary; the batch always continues to the next file. Only
// directory-level problems (missing input directory, unusable output
// directory, invalid option values) abort the whole run.
package batch
