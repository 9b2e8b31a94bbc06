// Package render paints a photostack.Stack on a raster image.
package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/anastasop/photostack"
)

// Renderer paints stacks. It caches the composed image of every item, the
// photo with its border and highlight, until the item changes size or is
// no longer drawn.
type Renderer struct {
	// Scaler fits photos and border images to the items.
	Scaler xdraw.Scaler
	// Transformer draws the composed items tilted.
	Transformer xdraw.Transformer
	// Background fills the stack area before drawing. Nil leaves dst as is.
	Background image.Image
	// Outline is the color of the plain border.
	Outline image.Image

	cache map[*photostack.PhotoItem]*composed
	frame int
}

type composed struct {
	img         *image.RGBA
	size        image.Point
	highlighted bool
	frame       int
}

// New returns a Renderer that favors quality.
func New() *Renderer {
	return &Renderer{
		Scaler:      xdraw.CatmullRom,
		Transformer: xdraw.BiLinear,
		Outline:     image.White,
		cache:       make(map[*photostack.PhotoItem]*composed),
	}
}

// NewFast returns a Renderer that favors speed.
func NewFast() *Renderer {
	r := New()
	r.Scaler = xdraw.BiLinear
	r.Transformer = xdraw.NearestNeighbor
	return r
}

// Draw paints s on dst. While the grid overlay is shown it paints the
// overlay instead of the stack.
func (r *Renderer) Draw(dst draw.Image, s *photostack.Stack) {
	r.frame++
	cfg := s.Config()

	if o := s.Overlay(); o != nil {
		if r.Background != nil {
			xdraw.Draw(dst, o.Area(), r.Background, image.Point{}, xdraw.Src)
		}
		r.Dim(dst, o.Area(), o.Dim())
		for _, it := range o.Items() {
			r.drawItem(dst, it, image.Point{}, cfg)
		}
	} else {
		if r.Background != nil {
			xdraw.Draw(dst, s.Frame(), r.Background, image.Point{}, xdraw.Src)
		}
		origin := s.Frame().Min
		for _, it := range s.Items() {
			r.drawItem(dst, it, origin, cfg)
		}
	}

	for it, c := range r.cache {
		if c.frame != r.frame {
			delete(r.cache, it)
		}
	}
}

// Dim darkens area of dst with black at opacity alpha.
func (r *Renderer) Dim(dst draw.Image, area image.Rectangle, alpha float64) {
	a := uint8(255 * min(1, max(0, alpha)))
	if a == 0 {
		return
	}
	xdraw.Draw(dst, area, image.NewUniform(color.NRGBA{0, 0, 0, a}), image.Point{}, xdraw.Over)
}

// drawItem paints it tilted around its center, translated by origin.
func (r *Renderer) drawItem(dst draw.Image, it *photostack.PhotoItem, origin image.Point, cfg photostack.Config) {
	if it.Size.X <= 0 || it.Size.Y <= 0 {
		return
	}
	src := r.compose(it, cfg)
	if it.Angle == 0 {
		dr := it.Frame().Add(origin)
		xdraw.Draw(dst, dr, src, image.Point{}, xdraw.Over)
		return
	}
	r.Transformer.Transform(dst, it.Transform(origin), src, src.Bounds(), xdraw.Over, nil)
}

// compose returns the untilted image of it: the border image, the photo
// scaled inside it, the plain outline and the highlight.
func (r *Renderer) compose(it *photostack.PhotoItem, cfg photostack.Config) *image.RGBA {
	if r.cache == nil {
		r.cache = make(map[*photostack.PhotoItem]*composed)
	}
	if c, ok := r.cache[it]; ok && c.size == it.Size && c.highlighted == it.Highlighted {
		c.frame = r.frame
		return c.img
	}

	img := image.NewRGBA(image.Rectangle{Max: it.Size})
	photoR := img.Bounds()
	if it.Inset > 0 && cfg.BorderImage != nil {
		r.Scaler.Scale(img, photoR, cfg.BorderImage, cfg.BorderImage.Bounds(), xdraw.Src, nil)
		photoR = photoR.Inset(it.Inset)
	}
	if it.Image != nil && !photoR.Empty() {
		r.Scaler.Scale(img, photoR, it.Image, it.Image.Bounds(), xdraw.Over, nil)
	}
	if it.Outline > 0 && r.Outline != nil {
		border(img, img.Bounds(), it.Outline, r.Outline)
	}
	if it.Highlighted && cfg.HighlightColor != nil {
		xdraw.Draw(img, photoR, image.NewUniform(cfg.HighlightColor), image.Point{}, xdraw.Over)
	}

	r.cache[it] = &composed{img: img, size: it.Size, highlighted: it.Highlighted, frame: r.frame}
	return img
}

// border draws a border of width n inside rect.
func border(dst draw.Image, rect image.Rectangle, n int, src image.Image) {
	in := rect.Inset(n)
	for _, b := range []image.Rectangle{
		{Min: rect.Min, Max: image.Pt(rect.Max.X, in.Min.Y)},
		{Min: image.Pt(rect.Min.X, in.Max.Y), Max: rect.Max},
		{Min: image.Pt(rect.Min.X, in.Min.Y), Max: image.Pt(in.Min.X, in.Max.Y)},
		{Min: image.Pt(in.Max.X, in.Min.Y), Max: image.Pt(rect.Max.X, in.Max.Y)},
	} {
		xdraw.Draw(dst, b, src, image.Point{}, xdraw.Src)
	}
}
