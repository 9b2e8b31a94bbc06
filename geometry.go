package photostack

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"
)

// Center assumes sr fits in dr and centers it inside dr. If this is not the case, it returns dr.
func Center(dr, sr image.Rectangle) image.Rectangle {
	dx := dr.Dx() - sr.Dx()
	dy := dr.Dy() - sr.Dy()

	if dx < 0 || dy < 0 {
		return dr
	}

	return sr.Sub(sr.Min).Add(dr.Min.Add(image.Pt(dx, dy).Div(2)))
}

// BestFit scales down sr to fit in dr. If sr already fits, it is not scaled up.
func BestFit(dr, sr image.Rectangle) image.Rectangle {
	var r image.Rectangle
	if sr.Dx() <= dr.Dx() && sr.Dy() <= dr.Dy() {
		r = sr
	} else {
		scale := max(float32(sr.Dy())/float32(dr.Dy()), float32(sr.Dx())/float32(dr.Dx()))
		r.Max.X = int(float32(sr.Dx()) / scale)
		r.Max.Y = int(float32(sr.Dy()) / scale)
	}
	return Center(dr, r)
}

// IntCeil returns the ceiling of a/b
func IntCeil(a, b int) int {
	n := a / b
	if a%b > 0 {
		n++
	}
	return n
}

// midpoint returns the center point of r.
func midpoint(r image.Rectangle) image.Point {
	return r.Min.Add(r.Size().Div(2))
}

// rectAround returns the rectangle of size sz centered at c.
func rectAround(c, sz image.Point) image.Rectangle {
	p := c.Sub(sz.Div(2))
	return image.Rectangle{Min: p, Max: p.Add(sz)}
}

// flingTarget returns where an item flung from the center of bounds with
// velocity v ends up: one full width and/or height away, following the sign
// of each velocity component. A zero component keeps that axis centered.
func flingTarget(bounds image.Rectangle, v f64.Vec2) image.Point {
	p := midpoint(bounds)
	switch {
	case v[0] > 0:
		p.X += bounds.Dx()
	case v[0] < 0:
		p.X -= bounds.Dx()
	}
	switch {
	case v[1] > 0:
		p.Y += bounds.Dy()
	case v[1] < 0:
		p.Y -= bounds.Dy()
	}
	return p
}

// Rotation returns the affine transform that maps a source image of size sz
// onto the destination so that its center lands at c, rotated clockwise by
// deg degrees (y grows downwards).
func Rotation(deg float64, sz, c image.Point) f64.Aff3 {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	hx, hy := float64(sz.X)/2, float64(sz.Y)/2
	return f64.Aff3{
		cos, -sin, float64(c.X) - (cos*hx - sin*hy),
		sin, cos, float64(c.Y) - (sin*hx + cos*hy),
	}
}

// lerpPoint interpolates linearly between a and b, rounding to the nearest pixel.
func lerpPoint(a, b image.Point, t float64) image.Point {
	return image.Pt(
		a.X+int(math.Round(float64(b.X-a.X)*t)),
		a.Y+int(math.Round(float64(b.Y-a.Y)*t)),
	)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
