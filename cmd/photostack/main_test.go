package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/anastasop/photostack"
)

func TestStringToPoint(t *testing.T) {
	for _, c := range []struct {
		in   string
		want image.Point
		ok   bool
	}{
		{"320x240", image.Pt(320, 240), true},
		{"320", image.Point{}, false},
		{"axb", image.Point{}, false},
		{"0x10", image.Point{}, false},
		{"1x2x3", image.Point{}, false},
	} {
		got, ok := stringToPoint(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("stringToPoint(%q): expected %v %v, got %v %v", c.in, c.want, c.ok, got, ok)
		}
	}
}

func TestScanForImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png", 2, 2, color.White)
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(dir, "sub"), "b.PNG", 2, 2, color.White)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if photos := addImagesOfPath(dir); len(photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(photos))
	}
	if photos := addImagesOfPath(filepath.Join(dir, "notes.txt")); len(photos) != 0 {
		t.Fatalf("expected text files ignored, got %d", len(photos))
	}
	if photos := addImagesOfPath(filepath.Join(dir, "missing")); photos != nil {
		t.Fatalf("expected nothing for a missing path")
	}
}

func TestParseConfig(t *testing.T) {
	opts, err := parseConfig([]byte("border_width: 8\nshow_border: false\nrotation_offset: 10\nhighlight_color: '#ff000080'\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := photostack.New(image.Rect(0, 0, 100, 100), opts...).Config()
	if cfg.BorderWidth != 8 || cfg.ShowBorder || cfg.RotationOffset != 10 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.HighlightColor != (color.NRGBA{255, 0, 0, 128}) {
		t.Fatalf("unexpected highlight color %v", cfg.HighlightColor)
	}

	opts, err = parseConfig([]byte("border_width: 2\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg = photostack.New(image.Rect(0, 0, 100, 100), opts...).Config()
	if def := photostack.DefaultConfig(); cfg.ShowBorder != def.ShowBorder || cfg.RotationOffset != def.RotationOffset {
		t.Fatalf("expected missing fields to keep the defaults, got %+v", cfg)
	}

	if _, err := parseConfig([]byte("highlight_color: red\n")); !errors.Is(err, errBadColor) {
		t.Fatalf("expected errBadColor, got %v", err)
	}
	if _, err := parseConfig([]byte("border_image: /does/not/exist.png\n")); err == nil {
		t.Fatalf("expected an error for a missing border image")
	}
	if _, err := parseConfig([]byte("border_width: [\n")); err == nil {
		t.Fatalf("expected a YAML error")
	}
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#102030")
	if err != nil || c != (color.NRGBA{0x10, 0x20, 0x30, 0xff}) {
		t.Fatalf("expected an opaque color, got %v %v", c, err)
	}
	for _, s := range []string{"102030", "#12345", "#gggggg"} {
		if _, err := parseColor(s); !errors.Is(err, errBadColor) {
			t.Fatalf("parseColor(%q): expected errBadColor, got %v", s, err)
		}
	}
}

func TestToPlan9Bitmap(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(1, 1, color.RGBA{1, 2, 3, 4})
	sub := img.SubImage(image.Rect(1, 1, 2, 2)).(*image.RGBA)

	b := toPlan9Bitmap(sub).Bytes()
	if len(b) != 64 {
		t.Fatalf("expected a 60 byte header and one pixel, got %d bytes", len(b))
	}
	if !bytes.HasPrefix(b, []byte("   r8g8b8a8           0           0           1           1 ")) {
		t.Fatalf("unexpected header %q", b[:60])
	}
	if !bytes.Equal(b[60:], []byte{4, 3, 2, 1}) {
		t.Fatalf("expected the pixel in abgr order, got %v", b[60:])
	}
}
