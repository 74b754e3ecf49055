package batch

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gridmark/gridmark/internal/fonts"
	"github.com/gridmark/gridmark/internal/imaging"
	"github.com/gridmark/gridmark/internal/watermark"
)

// DefaultOutputSubdir is created under the input directory when no
// output directory is configured.
const DefaultOutputSubdir = "watermarked"

// imageExtensions is the case-insensitive extension allow-list for
// input files.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Options is the batch configuration surface. Pointer fields are
// per-field overrides: nil means "use the estimated value" (grid, font
// size, spacing) or the package default (angle, opacity); a non-nil
// value always wins over the estimate.
type Options struct {
	// Text is the watermark string. Required.
	Text string

	// OutputDir receives the watermarked files. Empty selects
	// <input>/watermarked.
	OutputDir string

	// FontPath is an optional custom font file; when empty the resolver
	// falls back to system fonts and then the builtin face.
	FontPath string

	GridRows *int
	GridCols *int
	FontSize *int
	Spacing  *float64
	Angle    *float64
	Opacity  *uint8
	Color    *color.NRGBA
}

func (o Options) validate() error {
	if o.Text == "" {
		return fmt.Errorf("%w: watermark text is required", watermark.ErrInvalidInput)
	}
	if o.Spacing != nil && *o.Spacing < 1 {
		return fmt.Errorf("%w: spacing factor %.2f must be >= 1", watermark.ErrInvalidInput, *o.Spacing)
	}
	if o.GridRows != nil && *o.GridRows < 1 {
		return fmt.Errorf("%w: grid rows must be at least 1", watermark.ErrInvalidInput)
	}
	if o.GridCols != nil && *o.GridCols < 1 {
		return fmt.Errorf("%w: grid columns must be at least 1", watermark.ErrInvalidInput)
	}
	if o.FontSize != nil && *o.FontSize < 1 {
		return fmt.Errorf("%w: font size must be at least 1", watermark.ErrInvalidInput)
	}
	return nil
}

// Failure records one file the batch could not process.
type Failure struct {
	File  string `json:"file"`
	Cause string `json:"cause"`
}

// Summary is the batch result: how many files were found, how many
// outputs were written, and which files failed.
type Summary struct {
	Found    int       `json:"found"`
	Written  int       `json:"written"`
	Failures []Failure `json:"failures,omitempty"`
}

// Runner processes directories. The logger is injected; the core
// estimator and compositor never log.
type Runner struct {
	Log   zerolog.Logger
	Fonts *fonts.Resolver
	Cache *imaging.Cache
}

// NewRunner builds a Runner around a logger and a font resolver.
func NewRunner(log zerolog.Logger, resolver *fonts.Resolver) *Runner {
	return &Runner{
		Log:   log,
		Fonts: resolver,
		Cache: imaging.NewCache(),
	}
}

// Run watermarks every image in inputDir. Per-file failures are logged
// and recorded in the summary; only directory-level invalid input
// returns an error.
func (r *Runner) Run(inputDir string, opts Options) (*Summary, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: input directory %s: %v", watermark.ErrInvalidInput, inputDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", watermark.ErrInvalidInput, inputDir)
	}

	files, err := listImages(inputDir)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Found: len(files)}
	if len(files) == 0 {
		r.Log.Warn().Str("dir", inputDir).Msg("no image files found")
		return summary, nil
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = filepath.Join(inputDir, DefaultOutputSubdir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create output directory %s: %v", watermark.ErrInvalidInput, outDir, err)
	}

	r.Log.Info().Int("count", len(files)).Str("dir", inputDir).Msg("processing images")

	for _, path := range files {
		name := filepath.Base(path)
		outPath := filepath.Join(outDir, name)
		if err := r.processFile(path, outPath, opts); err != nil {
			summary.Failures = append(summary.Failures, Failure{File: name, Cause: err.Error()})
			r.Log.Error().Err(err).Str("file", name).Msg("failed to process")
			continue
		}
		summary.Written++
		r.Log.Info().Str("file", name).Str("output", outPath).Msg("watermarked")
	}

	return summary, nil
}

// processFile runs the estimate -> render -> save pipeline for a single
// image. The decoded image is evicted from the cache on the way out
// regardless of success or failure.
func (r *Runner) processFile(inPath, outPath string, opts Options) error {
	defer r.Cache.Evict(inPath)

	img, err := r.Cache.Load(inPath)
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	params, err := watermark.Estimate(bounds.Dx(), bounds.Dy(), opts.Text, r.Fonts, watermark.EstimateOptions{})
	if err != nil {
		return err
	}

	spec, err := r.buildSpec(params, opts)
	if err != nil {
		return err
	}

	result, err := watermark.Render(img, spec)
	if err != nil {
		return err
	}

	return imaging.Save(result, outPath)
}

// buildSpec merges explicit user values over the estimated parameters,
// field by field, and resolves the face at the final size.
func (r *Runner) buildSpec(params watermark.Params, opts Options) (watermark.Spec, error) {
	rows, cols := params.Rows, params.Cols
	size := params.FontSize
	spacing := params.Spacing

	if opts.GridRows != nil {
		rows = *opts.GridRows
	}
	if opts.GridCols != nil {
		cols = *opts.GridCols
	}
	if opts.FontSize != nil {
		size = *opts.FontSize
	}
	if opts.Spacing != nil {
		spacing = *opts.Spacing
	}

	face, err := r.Fonts.Face(size)
	if err != nil {
		return watermark.Spec{}, fmt.Errorf("%w: %v", watermark.ErrResourceUnavailable, err)
	}

	spec := watermark.NewSpec(opts.Text, face)
	spec.Rows = rows
	spec.Cols = cols
	spec.Spacing = spacing
	if opts.Angle != nil {
		spec.Angle = *opts.Angle
	}
	if opts.Opacity != nil {
		spec.Opacity = *opts.Opacity
	}
	if opts.Color != nil {
		spec.Color = *opts.Color
	}
	return spec, nil
}

// listImages enumerates the regular files in dir whose extension
// matches the allow-list, de-duplicated by resolved absolute path so a
// file reachable under multiple names is processed once. Results are
// sorted for deterministic batch order.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read directory %s: %v", watermark.ErrInvalidInput, dir, err)
	}

	seen := make(map[string]bool)
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		key, err := filepath.Abs(path)
		if err != nil {
			key = path
		}
		if resolved, err := filepath.EvalSymlinks(key); err == nil {
			key = resolved
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}
