package fonts

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Source is one candidate provider of font data.
type Source interface {
	// Name identifies the source in error messages and logs.
	Name() string

	// Load reads and parses the font. Called at most once per resolve.
	Load() (*opentype.Font, error)
}

// FileSource loads a TrueType/OpenType font from a file path.
type FileSource string

func (s FileSource) Name() string { return string(s) }

func (s FileSource) Load() (*opentype.Font, error) {
	data, err := os.ReadFile(string(s))
	if err != nil {
		return nil, err
	}
	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", string(s), err)
	}
	return fnt, nil
}

// Builtin is the Go Regular font compiled into the binary. Unlike a
// fixed-size bitmap fallback it scales to any requested size, so a
// resolver ending in Builtin can always produce a face.
type Builtin struct{}

func (Builtin) Name() string { return "builtin Go Regular" }

func (Builtin) Load() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
}

// systemFontPaths are well-known scalable font locations tried when no
// explicit font path is configured.
var systemFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/msttcorefonts/Arial.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/Library/Fonts/Arial.ttf",
	`C:\Windows\Fonts\arial.ttf`,
}

// Resolver tries its sources in order and caches the first font that
// loads. It is not safe for concurrent use; batch processing is
// sequential and shares one resolver across files.
type Resolver struct {
	sources []Source
	fnt     *opentype.Font
	chosen  string
}

// NewResolver builds the default source chain: the custom path if one
// is given, then well-known system fonts, then the builtin face.
func NewResolver(customPath string) *Resolver {
	var sources []Source
	if customPath != "" {
		sources = append(sources, FileSource(customPath))
	} else {
		for _, p := range systemFontPaths {
			sources = append(sources, FileSource(p))
		}
	}
	sources = append(sources, Builtin{})
	return &Resolver{sources: sources}
}

// NewResolverFromSources builds a resolver over an explicit chain.
// Callers that must fail rather than fall back simply omit Builtin.
func NewResolverFromSources(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// Face returns a face at the given pixel size. Sizes below 1 are
// raised to 1.
func (r *Resolver) Face(size int) (font.Face, error) {
	fnt, err := r.font()
	if err != nil {
		return nil, err
	}
	if size < 1 {
		size = 1
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build face at size %d: %w", size, err)
	}
	return face, nil
}

// SourceName reports which source satisfied the resolver, or "" if no
// resolve has happened yet.
func (r *Resolver) SourceName() string { return r.chosen }

func (r *Resolver) font() (*opentype.Font, error) {
	if r.fnt != nil {
		return r.fnt, nil
	}
	var attempts []string
	for _, s := range r.sources {
		fnt, err := s.Load()
		if err != nil {
			attempts = append(attempts, fmt.Sprintf("%s: %v", s.Name(), err))
			continue
		}
		r.fnt = fnt
		r.chosen = s.Name()
		return fnt, nil
	}
	return nil, fmt.Errorf("no usable font source: %s", strings.Join(attempts, "; "))
}
