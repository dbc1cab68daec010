package service

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100" viewBox="0 0 100 100"><rect x="0" y="0" width="100" height="100" fill="#FF0000"/></svg>`

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 0x20, G: 0x80, B: 0xff, A: 0xff})
		}
	}
	path := filepath.Join(dir, "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeSVG(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "test.svg")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRaster(t *testing.T) {
	path := writePNG(t, t.TempDir(), 8, 6)

	dec, err := NewImageService().Load(path)
	if err != nil {
		t.Fatal(err)
	}
	raster, ok := dec.(*RasterImage)
	if !ok {
		t.Fatalf("expected *RasterImage, got %T", dec)
	}
	if w, h := raster.Size(); w != 8 || h != 6 {
		t.Errorf("Size = %dx%d, want 8x6", w, h)
	}
}

func TestLoadDispatchesVector(t *testing.T) {
	path := writeSVG(t, t.TempDir(), testSVG)

	dec, err := NewImageService().Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := dec.(*VectorDoc); !ok {
		t.Fatalf("expected *VectorDoc for .svg, got %T", dec)
	}
}

func TestParseVectorSize(t *testing.T) {
	path := writeSVG(t, t.TempDir(), testSVG)

	doc, err := NewImageService().ParseVector(path)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := doc.Size(); w != 100 || h != 100 {
		t.Errorf("Size = %dx%d, want 100x100", w, h)
	}
}

func TestRasterizeRoundsUp(t *testing.T) {
	path := writeSVG(t, t.TempDir(), testSVG)
	doc, err := NewImageService().ParseVector(path)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		scale        float64
		wantW, wantH int
	}{
		{1.0, 100, 100},
		{1.5, 150, 150},
		{1.01, 101, 101},
		{0.333, 34, 34},
	}
	for _, tt := range tests {
		img, err := doc.Rasterize(tt.scale)
		if err != nil {
			t.Fatalf("Rasterize(%v): %v", tt.scale, err)
		}
		b := img.Bounds()
		if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
			t.Errorf("Rasterize(%v) = %dx%d, want %dx%d", tt.scale, b.Dx(), b.Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestRasterizeDrawsContent(t *testing.T) {
	path := writeSVG(t, t.TempDir(), testSVG)
	doc, err := NewImageService().ParseVector(path)
	if err != nil {
		t.Fatal(err)
	}

	img, err := doc.Rasterize(1.0)
	if err != nil {
		t.Fatal(err)
	}
	r, g, _, a := img.At(50, 50).RGBA()
	if r < 0xc000 || g > 0x4000 || a < 0xc000 {
		t.Errorf("center pixel = %v, want solid red", img.At(50, 50))
	}
}

func TestRasterizeRejectsOversizedTarget(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="4000" height="4000" viewBox="0 0 4000 4000"><rect width="4000" height="4000" fill="#000"/></svg>`
	path := writeSVG(t, t.TempDir(), svg)
	doc, err := NewImageService().ParseVector(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := doc.Rasterize(10.0); !errors.Is(err, ErrBitmapTooLarge) {
		t.Errorf("expected ErrBitmapTooLarge, got %v", err)
	}
}

func TestParseVectorDegenerateViewbox(t *testing.T) {
	path := writeSVG(t, t.TempDir(), `<svg xmlns="http://www.w3.org/2000/svg" width="0" height="0"></svg>`)

	_, err := NewImageService().ParseVector(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestDecodeRasterMissingFile(t *testing.T) {
	_, err := NewImageService().DecodeRaster(filepath.Join(t.TempDir(), "nope.png"))
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if derr.Path == "" {
		t.Error("DecodeError lost the offending path")
	}
}

func TestDecodeRasterGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.png")
	if err := os.WriteFile(path, []byte("this is not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewImageService().DecodeRaster(path)
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
}

func TestLoadFrom(t *testing.T) {
	svc := NewImageService()

	dec, err := svc.LoadFrom("inline.svg", strings.NewReader(testSVG))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := dec.(*VectorDoc); !ok {
		t.Fatalf("expected *VectorDoc, got %T", dec)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 3))); err != nil {
		t.Fatal(err)
	}
	dec, err = svc.LoadFrom("inline.png", &buf)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := dec.Size(); w != 4 || h != 3 {
		t.Errorf("Size = %dx%d, want 4x3", w, h)
	}

	_, err = svc.LoadFrom("inline.png", strings.NewReader("junk"))
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if derr.Path != "inline.png" {
		t.Errorf("error labeled %q, want inline.png", derr.Path)
	}
}

func TestGetImageInfo(t *testing.T) {
	path := writePNG(t, t.TempDir(), 8, 6)

	info, err := NewImageService().GetImageInfo(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Width != 8 || info.Height != 6 {
		t.Errorf("dimensions = %dx%d, want 8x6", info.Width, info.Height)
	}
	if info.Size <= 0 {
		t.Errorf("file size = %d, want > 0", info.Size)
	}
	if len(info.EXIFData) != 0 {
		t.Errorf("plain PNG reported EXIF data: %v", info.EXIFData)
	}
}
