package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/gridmark/gridmark/internal/batch"
	"github.com/gridmark/gridmark/internal/fonts"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// fileConfig mirrors the flag surface for the optional YAML config
// file. Flags override config file values; config file values override
// estimated/default values.
type fileConfig struct {
	Text     string   `yaml:"text"`
	Input    string   `yaml:"input"`
	Output   string   `yaml:"output"`
	Font     string   `yaml:"font"`
	Rows     *int     `yaml:"rows"`
	Cols     *int     `yaml:"cols"`
	FontSize *int     `yaml:"font_size"`
	Spacing  *float64 `yaml:"spacing"`
	Angle    *float64 `yaml:"angle"`
	Opacity  *int     `yaml:"opacity"`
	Color    string   `yaml:"color"`
}

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("gridmark %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		}
	}

	os.Exit(run(os.Args[1:]))
}

func printUsage() {
	fmt.Println("gridmark - batch text watermarking for images")
	fmt.Println()
	fmt.Println("Usage: gridmark -text <watermark> [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -text string      Watermark text (required)")
	fmt.Println("  -in string        Input directory (default \".\")")
	fmt.Println("  -out string       Output directory (default <in>/watermarked)")
	fmt.Println("  -font string      Custom font file (TTF/OTF)")
	fmt.Println("  -rows int         Grid rows (default: estimated per image)")
	fmt.Println("  -cols int         Grid columns (default: estimated per image)")
	fmt.Println("  -size int         Font size in pixels (default: estimated per image)")
	fmt.Println("  -spacing float    Tile spacing factor (default: estimated per image)")
	fmt.Println("  -angle float      Tile rotation in degrees (default -30)")
	fmt.Println("  -color string     Watermark color as hex, e.g. #ffffff (default white)")
	fmt.Println("  -opacity int      Watermark opacity 0-255 (default 128)")
	fmt.Println("  -config string    YAML config file (flags take precedence)")
	fmt.Println("  -json             Print the batch summary as JSON on stdout")
	fmt.Println("  -debug            Enable debug logging")
	fmt.Println("  --version, -v     Print version information")
	fmt.Println("  --help, -h        Print this help message")
	fmt.Println()
	fmt.Println("Inputs are .jpg/.jpeg/.png files (case-insensitive). One output is")
	fmt.Println("written per input with the same base filename; JPEG outputs are")
	fmt.Println("flattened to opaque color since JPEG has no transparency.")
}

func run(args []string) int {
	fs := flag.NewFlagSet("gridmark", flag.ExitOnError)
	var (
		textFlag    = fs.String("text", "", "watermark text")
		inFlag      = fs.String("in", ".", "input directory")
		outFlag     = fs.String("out", "", "output directory")
		fontFlag    = fs.String("font", "", "custom font file")
		rowsFlag    = fs.Int("rows", 0, "grid rows")
		colsFlag    = fs.Int("cols", 0, "grid columns")
		sizeFlag    = fs.Int("size", 0, "font size in pixels")
		spacingFlag = fs.Float64("spacing", 0, "tile spacing factor")
		angleFlag   = fs.Float64("angle", 0, "tile rotation in degrees")
		colorFlag   = fs.String("color", "", "watermark color as hex")
		opacityFlag = fs.Int("opacity", 0, "watermark opacity 0-255")
		configFlag  = fs.String("config", "", "YAML config file")
		jsonFlag    = fs.Bool("json", false, "print the batch summary as JSON")
		debugFlag   = fs.Bool("debug", false, "enable debug logging")
	)
	fs.Parse(args)

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if *debugFlag {
		logger = logger.Level(zerolog.DebugLevel)
	}

	inputDir := *inFlag
	opts := batch.Options{}

	if *configFlag != "" {
		cfg, err := loadConfig(*configFlag)
		if err != nil {
			logger.Error().Err(err).Str("config", *configFlag).Msg("cannot read config file")
			return 1
		}
		if err := applyConfig(cfg, &opts, &inputDir); err != nil {
			logger.Error().Err(err).Str("config", *configFlag).Msg("invalid config file")
			return 1
		}
	}

	// Flags set on the command line override the config file.
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "text":
			opts.Text = *textFlag
		case "in":
			inputDir = *inFlag
		case "out":
			opts.OutputDir = *outFlag
		case "font":
			opts.FontPath = *fontFlag
		case "rows":
			opts.GridRows = rowsFlag
		case "cols":
			opts.GridCols = colsFlag
		case "size":
			opts.FontSize = sizeFlag
		case "spacing":
			opts.Spacing = spacingFlag
		case "angle":
			opts.Angle = angleFlag
		case "opacity":
			o, err := opacityValue(*opacityFlag)
			if err != nil {
				flagErr = err
				return
			}
			opts.Opacity = o
		case "color":
			c, err := parseHexColor(*colorFlag)
			if err != nil {
				flagErr = err
				return
			}
			opts.Color = c
		}
	})
	if flagErr != nil {
		logger.Error().Err(flagErr).Msg("invalid flag value")
		return 1
	}

	if opts.Text == "" {
		logger.Error().Msg("watermark text is required (-text)")
		return 1
	}

	logger.Debug().
		Str("input", inputDir).
		Str("output", opts.OutputDir).
		Str("font", opts.FontPath).
		Msg("starting batch")

	resolver := fonts.NewResolver(opts.FontPath)
	runner := batch.NewRunner(logger, resolver)

	summary, err := runner.Run(inputDir, opts)
	if err != nil {
		logger.Error().Err(err).Msg("batch failed")
		return 1
	}

	if *jsonFlag {
		if err := json.NewEncoder(os.Stdout).Encode(summary); err != nil {
			logger.Error().Err(err).Msg("cannot encode summary")
			return 1
		}
	} else {
		logger.Info().
			Int("found", summary.Found).
			Int("written", summary.Written).
			Int("failed", len(summary.Failures)).
			Msg("batch complete")
	}

	// Partial success still exits 0; only a batch that produced nothing
	// from a non-empty directory counts as failure.
	if summary.Found > 0 && summary.Written == 0 {
		return 1
	}
	return 0
}

func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyConfig(cfg *fileConfig, opts *batch.Options, inputDir *string) error {
	if cfg.Text != "" {
		opts.Text = cfg.Text
	}
	if cfg.Input != "" {
		*inputDir = cfg.Input
	}
	if cfg.Output != "" {
		opts.OutputDir = cfg.Output
	}
	if cfg.Font != "" {
		opts.FontPath = cfg.Font
	}
	opts.GridRows = cfg.Rows
	opts.GridCols = cfg.Cols
	opts.FontSize = cfg.FontSize
	opts.Spacing = cfg.Spacing
	opts.Angle = cfg.Angle
	if cfg.Opacity != nil {
		o, err := opacityValue(*cfg.Opacity)
		if err != nil {
			return err
		}
		opts.Opacity = o
	}
	if cfg.Color != "" {
		c, err := parseHexColor(cfg.Color)
		if err != nil {
			return err
		}
		opts.Color = c
	}
	return nil
}

func opacityValue(v int) (*uint8, error) {
	if v < 0 || v > 255 {
		return nil, fmt.Errorf("opacity %d out of range [0,255]", v)
	}
	o := uint8(v)
	return &o, nil
}

func parseHexColor(s string) (*color.NRGBA, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", s, err)
	}
	return &color.NRGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: 255,
	}, nil
}
