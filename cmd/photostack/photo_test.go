package main

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	xdraw "golang.org/x/image/draw"
)

// writePNG writes a w x h image of color c in dir.
func writePNG(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
	path := filepath.Join(dir, name)
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

func TestPhotoImageLoad(t *testing.T) {
	path := writePNG(t, t.TempDir(), "wide.png", 400, 200, color.RGBA{255, 0, 0, 255})
	pi := NewPhoto(path).NewPhotoImage("wide", image.Pt(100, 100), xdraw.BiLinear, logr.Discard())

	if _, err := pi.Image(); !errors.Is(err, errNotLoaded) {
		t.Fatalf("expected errNotLoaded before Load, got %v", err)
	}
	if got := pi.DisplaySize(); got != image.Pt(100, 100) {
		t.Fatalf("expected the fit size before Load, got %v", got)
	}

	if err := pi.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	img, err := pi.Image()
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(200, 100) {
		t.Fatalf("expected the image kept at twice the fit size, got %v", got)
	}
	if got := pi.DisplaySize(); got != image.Pt(100, 50) {
		t.Fatalf("expected display size 100x50, got %v", got)
	}
	if pi.ExifInfo() != "" {
		t.Fatalf("expected no EXIF for a PNG, got %q", pi.ExifInfo())
	}

	pi.Unload()
	if _, err := pi.Image(); !errors.Is(err, errNotLoaded) {
		t.Fatalf("expected errNotLoaded after Unload, got %v", err)
	}
}

func TestPhotoImageLoadErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.png")
	if err := os.WriteFile(path, []byte("not an image at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	pi := NewPhoto(path).NewPhotoImage("fake", image.Pt(10, 10), xdraw.BiLinear, logr.Discard())
	if err := pi.Load(); !errors.Is(err, errNotSupportedFormat) {
		t.Fatalf("expected errNotSupportedFormat, got %v", err)
	}

	pi = NewPhoto(filepath.Join(dir, "missing.png")).NewPhotoImage("missing", image.Pt(10, 10), xdraw.BiLinear, logr.Discard())
	if err := pi.Load(); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a missing file error, got %v", err)
	}
}

func TestOrient(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, red)
	img.Set(1, 0, blue)

	if got := orient(img, 1); got != image.Image(img) {
		t.Fatalf("expected orientation 1 to keep the image")
	}

	flipped := orient(img, 3).(*image.RGBA)
	if flipped.RGBAAt(0, 0) != blue || flipped.RGBAAt(1, 0) != red {
		t.Fatalf("expected the image upside down, got %v %v", flipped.RGBAAt(0, 0), flipped.RGBAAt(1, 0))
	}

	turned := orient(img, 6).(*image.RGBA)
	if got := turned.Bounds().Size(); got != image.Pt(1, 2) {
		t.Fatalf("expected a 1x2 image, got %v", got)
	}
	if turned.RGBAAt(0, 0) != red || turned.RGBAAt(0, 1) != blue {
		t.Fatalf("expected the image turned clockwise, got %v %v", turned.RGBAAt(0, 0), turned.RGBAAt(0, 1))
	}
}
