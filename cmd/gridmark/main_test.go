package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gridmark/gridmark/internal/batch"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		wantErr bool
	}{
		{"#ffffff", 255, 255, 255, false},
		{"ffffff", 255, 255, 255, false},
		{"#000000", 0, 0, 0, false},
		{"#ff8000", 255, 128, 0, false},
		{"#zzz", 0, 0, 0, true},
		{"", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := parseHexColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseHexColor(%q) should fail", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseHexColor(%q) failed: %v", tt.in, err)
			}
			if c.R != tt.r || c.G != tt.g || c.B != tt.b {
				t.Errorf("color: got (%d,%d,%d), want (%d,%d,%d)", c.R, c.G, c.B, tt.r, tt.g, tt.b)
			}
			if c.A != 255 {
				t.Errorf("alpha: got %d, want 255", c.A)
			}
		})
	}
}

func TestOpacityValue(t *testing.T) {
	if _, err := opacityValue(-1); err == nil {
		t.Error("opacityValue(-1) should fail")
	}
	if _, err := opacityValue(256); err == nil {
		t.Error("opacityValue(256) should fail")
	}

	o, err := opacityValue(128)
	if err != nil {
		t.Fatalf("opacityValue(128) failed: %v", err)
	}
	if *o != 128 {
		t.Errorf("opacity: got %d, want 128", *o)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
text: "© ACME"
input: /images
output: /marked
rows: 3
cols: 4
font_size: 42
spacing: 1.9
angle: -45
opacity: 200
color: "#ff0000"
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	var opts batch.Options
	inputDir := "."
	if err := applyConfig(cfg, &opts, &inputDir); err != nil {
		t.Fatalf("applyConfig failed: %v", err)
	}

	if opts.Text != "© ACME" {
		t.Errorf("Text: got %q, want © ACME", opts.Text)
	}
	if inputDir != "/images" {
		t.Errorf("input: got %q, want /images", inputDir)
	}
	if opts.OutputDir != "/marked" {
		t.Errorf("OutputDir: got %q, want /marked", opts.OutputDir)
	}
	if opts.GridRows == nil || *opts.GridRows != 3 {
		t.Errorf("GridRows: got %v, want 3", opts.GridRows)
	}
	if opts.GridCols == nil || *opts.GridCols != 4 {
		t.Errorf("GridCols: got %v, want 4", opts.GridCols)
	}
	if opts.FontSize == nil || *opts.FontSize != 42 {
		t.Errorf("FontSize: got %v, want 42", opts.FontSize)
	}
	if opts.Spacing == nil || *opts.Spacing != 1.9 {
		t.Errorf("Spacing: got %v, want 1.9", opts.Spacing)
	}
	if opts.Angle == nil || *opts.Angle != -45 {
		t.Errorf("Angle: got %v, want -45", opts.Angle)
	}
	if opts.Opacity == nil || *opts.Opacity != 200 {
		t.Errorf("Opacity: got %v, want 200", opts.Opacity)
	}
	if opts.Color == nil || opts.Color.R != 255 || opts.Color.G != 0 || opts.Color.B != 0 {
		t.Errorf("Color: got %v, want red", opts.Color)
	}
}

func TestApplyConfig_InvalidValues(t *testing.T) {
	badOpacity := 999
	var opts batch.Options
	inputDir := "."

	if err := applyConfig(&fileConfig{Opacity: &badOpacity}, &opts, &inputDir); err == nil {
		t.Error("applyConfig should reject opacity out of range")
	}
	if err := applyConfig(&fileConfig{Color: "nope"}, &opts, &inputDir); err == nil {
		t.Error("applyConfig should reject an unparseable color")
	}
}
