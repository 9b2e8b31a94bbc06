package render

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/anastasop/photostack"
)

type solidSource struct {
	n    int
	size image.Point
	c    color.Color
}

func (s solidSource) NumberOfPhotos() int { return s.n }

func (s solidSource) ImageAt(int) image.Image {
	img := image.NewRGBA(image.Rectangle{Max: s.size})
	for y := 0; y < s.size.Y; y++ {
		for x := 0; x < s.size.X; x++ {
			img.Set(x, y, s.c)
		}
	}
	return img
}

func newStack(frame image.Rectangle, n int) (*photostack.Stack, *time.Time) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := photostack.New(frame,
		photostack.WithClock(func() time.Time { return now }),
		photostack.WithRand(rand.New(rand.NewPCG(3, 4))))
	s.SetDataSource(solidSource{n: n, size: image.Pt(100, 50), c: color.RGBA{255, 0, 0, 255}})
	return s, &now
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func TestDrawStack(t *testing.T) {
	s, _ := newStack(image.Rect(0, 0, 200, 200), 3)
	dst := image.NewRGBA(image.Rect(0, 0, 200, 200))
	r := New()
	r.Draw(dst, s)

	// the top photo is 110x60 with its border, centered at (100, 100)
	if c := dst.RGBAAt(100, 100); !near(c.R, 255) || !near(c.G, 0) {
		t.Fatalf("expected the photo at the center, got %v", c)
	}
	if c := dst.RGBAAt(46, 71); !near(c.R, 255) || !near(c.G, 255) || !near(c.B, 255) {
		t.Fatalf("expected the white border at the corner of the top photo, got %v", c)
	}
	if len(r.cache) != 3 {
		t.Fatalf("expected 3 composed photos, got %d", len(r.cache))
	}

	s.Press(image.Pt(100, 100), time.Now())
	r.Draw(dst, s)
	if c := dst.RGBAAt(100, 100); c.R > 240 {
		t.Fatalf("expected the highlight to darken the photo, got %v", c)
	}
}

func TestDrawOrigin(t *testing.T) {
	s, _ := newStack(image.Rect(50, 50, 250, 250), 1)
	dst := image.NewRGBA(image.Rect(0, 0, 300, 300))
	New().Draw(dst, s)
	if c := dst.RGBAAt(150, 150); !near(c.R, 255) || !near(c.G, 0) {
		t.Fatalf("expected the photo at the center of the frame, got %v", c)
	}
	if c := dst.RGBAAt(60, 60); c.A != 0 {
		t.Fatalf("expected nothing drawn outside the photo, got %v", c)
	}
}

func TestDrawOverlay(t *testing.T) {
	frame := image.Rect(0, 0, 320, 480)
	s, now := newStack(frame, 4)
	s.ShowAllPhotos()
	for s.Animating() {
		*now = now.Add(20 * time.Millisecond)
		s.Tick(*now)
	}

	dst := image.NewRGBA(frame)
	r := NewFast()
	r.Background = image.White
	r.Draw(dst, s)
	if c := dst.RGBAAt(5, 5); c != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("expected the dimmed backdrop, got %v", c)
	}
	// cell 0 is (20, 20)-(100, 100)
	if c := dst.RGBAAt(60, 60); !near(c.R, 255) || !near(c.G, 0) {
		t.Fatalf("expected photo 0 in its cell, got %v", c)
	}
}

func TestDim(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	r := New()
	r.Dim(dst, dst.Bounds(), 0)
	if c := dst.RGBAAt(1, 1); c.A != 0 {
		t.Fatalf("expected no dimming at 0, got %v", c)
	}
	r.Dim(dst, dst.Bounds(), 2)
	if c := dst.RGBAAt(1, 1); c.A != 255 {
		t.Fatalf("expected the opacity clamped to 1, got %v", c)
	}
}
