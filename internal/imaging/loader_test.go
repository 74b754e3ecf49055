package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gridmark/gridmark/internal/watermark"
)

// createTestPNG writes a solid-color PNG into a temp dir and returns
// its path.
func createTestPNG(t *testing.T, width, height int, c color.NRGBA) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "test-image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// createTestJPEG writes a solid-color JPEG into a temp dir and returns
// its path.
func createTestJPEG(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{128, 128, 128, 255})
		}
	}

	path := filepath.Join(t.TempDir(), "test-image.jpg")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestCache_Load(t *testing.T) {
	path := createTestPNG(t, 50, 40, color.NRGBA{200, 100, 50, 255})
	cache := NewCache()

	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 50 || img.Bounds().Dy() != 40 {
		t.Errorf("dimensions: got %dx%d, want 50x40", img.Bounds().Dx(), img.Bounds().Dy())
	}

	// Second load serves the cached copy even if the file is gone.
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}
	if _, err := cache.Load(path); err != nil {
		t.Errorf("cached Load failed: %v", err)
	}
}

func TestCache_Evict(t *testing.T) {
	path := createTestPNG(t, 10, 10, color.NRGBA{0, 0, 0, 255})
	cache := NewCache()

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Evict(path)
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}

	if _, err := cache.Load(path); err == nil {
		t.Error("Load after evict should hit the removed file and fail")
	}

	// Evicting an uncached path is a no-op.
	cache.Evict("/never/loaded.png")
}

func TestCache_LoadMissingFile(t *testing.T) {
	_, err := NewCache().Load("/nonexistent/image.png")
	if !errors.Is(err, watermark.ErrProcessingFailure) {
		t.Errorf("error: got %v, want ErrProcessingFailure", err)
	}
}

func TestCache_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.png")
	if err := os.WriteFile(path, []byte("not an image at all"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := NewCache().Load(path)
	if !errors.Is(err, watermark.ErrProcessingFailure) {
		t.Errorf("error: got %v, want ErrProcessingFailure", err)
	}
}

func TestLoadInfo(t *testing.T) {
	cache := NewCache()

	pngPath := createTestPNG(t, 30, 20, color.NRGBA{10, 20, 30, 255})
	info, err := LoadInfo(cache, pngPath)
	if err != nil {
		t.Fatalf("LoadInfo failed: %v", err)
	}
	if info.Width != 30 || info.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %q, want png", info.Format)
	}
	if !info.HasAlpha {
		t.Error("HasAlpha: got false, want true for decoded PNG")
	}

	jpgPath := createTestJPEG(t, 16, 16)
	info, err = LoadInfo(cache, jpgPath)
	if err != nil {
		t.Fatalf("LoadInfo failed: %v", err)
	}
	if info.Format != "jpeg" {
		t.Errorf("Format: got %q, want jpeg", info.Format)
	}
	if info.HasAlpha {
		t.Error("HasAlpha: got true, want false for decoded JPEG")
	}
}
