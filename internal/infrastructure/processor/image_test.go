package processor

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/andreyxaxa/Media-Processor/internal/dto"
	"github.com/andreyxaxa/Media-Processor/internal/entity"
)

func writeTestPNG(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "in.png")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("os.Create: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}

	return path
}

func TestProbe(t *testing.T) {
	path := writeTestPNG(t, 64, 48)

	meta, err := NewImage().Probe(path)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}

	if meta.Width != 64 || meta.Height != 48 {
		t.Errorf("geometry = %dx%d, want 64x48", meta.Width, meta.Height)
	}
	if meta.Size <= 0 {
		t.Errorf("size = %d, want > 0", meta.Size)
	}
}

func TestProbeNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.bin")
	if err := os.WriteFile(path, []byte("not an image"), 0o600); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}

	if _, err := NewImage().Probe(path); err == nil {
		t.Fatal("expected error for non-image input")
	}
}

func TestTransformCrop(t *testing.T) {
	path := writeTestPNG(t, 64, 48)
	out := filepath.Join(t.TempDir(), "out.webp")

	err := NewImage().Transform(context.Background(), path, out, dto.ImageOptions{
		Crop: &entity.CropRect{X: 8, Y: 8, Width: 32, Height: 16},
	})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	meta, err := NewImage().Probe(out)
	if err != nil {
		t.Fatalf("Probe output: %v", err)
	}
	if meta.Width != 32 || meta.Height != 16 {
		t.Errorf("output geometry = %dx%d, want 32x16", meta.Width, meta.Height)
	}
}
