package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/xor-gate/goexif2/exif"
	"github.com/xor-gate/goexif2/tiff"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	_ "golang.org/x/image/webp"

	"github.com/anastasop/photostack"
)

var (
	errNotSupportedFormat = errors.New("not supported format")
	errNotLoaded          = errors.New("not loaded")
)

// Photo is an image file of the album.
type Photo struct {
	path string
}

// NewPhoto returns a new Photo for path.
func NewPhoto(path string) *Photo {
	return &Photo{path: path}
}

// PhotoImage holds the contents of a photo, ready for the stack.
type PhotoImage struct {
	*Photo
	id     string      // unique in the album, a photo may be added twice
	fit    image.Point // the photo is scaled to fit in this size
	scaler xdraw.Scaler
	log    logr.Logger

	mu       sync.Mutex
	img      image.Image // decoded, oriented and scaled
	exifInfo string      // a summary of the EXIF data if present
}

// NewPhotoImage returns an unloaded image of p that scales it to fit.
func (p *Photo) NewPhotoImage(id string, fit image.Point, scaler xdraw.Scaler, log logr.Logger) *PhotoImage {
	return &PhotoImage{Photo: p, id: id, fit: fit, scaler: scaler, log: log}
}

// Load reads, decodes and scales the photo.
func (i *PhotoImage) Load() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.img != nil {
		return nil
	}

	data, err := os.ReadFile(i.path)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	switch ct := http.DetectContentType(data); ct {
	case "image/gif", "image/jpeg", "image/png", "image/webp":
		// supported format
	default:
		return fmt.Errorf("load: cannot handle %s: %w", ct, errNotSupportedFormat)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("load: decode image: %w", err)
	}
	info, orientation := getExifInfo(bytes.NewReader(data))
	img = orient(img, orientation)

	// keep twice the display size so the stack can scale down nicely
	limit := image.Rectangle{Max: i.fit.Mul(2)}
	dr := photostack.BestFit(limit, img.Bounds())
	scaled := image.NewRGBA(dr.Sub(dr.Min))
	i.scaler.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	i.img = scaled
	i.exifInfo = info
	return nil
}

// Unload frees the image. To use it again, call Load first.
func (i *PhotoImage) Unload() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.img != nil {
		i.log.V(2).Info("unload", "path", i.path)
	}
	i.img = nil
}

// Image returns the loaded image.
func (i *PhotoImage) Image() (image.Image, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.img == nil {
		return nil, fmt.Errorf("image %s: %w", i.path, errNotLoaded)
	}
	return i.img, nil
}

// ExifInfo returns the EXIF summary found by the last Load.
func (i *PhotoImage) ExifInfo() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.exifInfo
}

// DisplaySize is the size of the photo on the stack.
func (i *PhotoImage) DisplaySize() image.Point {
	img, err := i.Image()
	if err != nil {
		return i.fit
	}
	return photostack.BestFit(image.Rectangle{Max: i.fit}, img.Bounds()).Size()
}

// getExifInfo returns an oneline human readable string of the exif data
// and the orientation of the image. Orientation is 1 if unknown.
func getExifInfo(r tiff.ReadAtReaderSeeker) (string, int) {
	ex, err := exif.Decode(r)
	if err != nil {
		return "", 1
	}

	orientation := 1
	if tag, err := ex.Get(exif.Orientation); err == nil {
		if o, err := tag.Int(0); err == nil {
			orientation = o
		}
	}

	asString := func(t *tiff.Tag) string {
		return t.String()
	}

	asRatFloat := func(t *tiff.Tag) string {
		f, _ := t.Rat(0)
		return f.FloatString(2)
	}

	labels := []struct {
		pat     string
		name    exif.FieldName
		printer func(*tiff.Tag) string
	}{
		{"Date: %s", exif.DateTimeOriginal, asString},
		{"Model: %s", exif.Model, asString},
		{"f/%s", exif.FNumber, asRatFloat},
		{"Exp: %s", exif.ExposureTime, asRatFloat},
		{"ISO: %s", exif.ISOSpeedRatings, asString},
	}

	var fields []string
	for _, label := range labels {
		if tag, err := ex.Get(label.name); err == nil {
			fields = append(fields, fmt.Sprintf(label.pat, label.printer(tag)))
		}
	}
	return strings.Join(fields, " "), orientation
}

// orient turns img upright according to its EXIF orientation.
func orient(img image.Image, orientation int) image.Image {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	var m f64.Aff3
	size := b.Size()
	switch orientation {
	case 2: // mirrored
		m = f64.Aff3{-1, 0, w, 0, 1, 0}
	case 3: // upside down
		m = f64.Aff3{-1, 0, w, 0, -1, h}
	case 4: // upside down, mirrored
		m = f64.Aff3{1, 0, 0, 0, -1, h}
	case 5: // transposed
		m, size = f64.Aff3{0, 1, 0, 1, 0, 0}, image.Pt(b.Dy(), b.Dx())
	case 6: // rotated left, turn clockwise
		m, size = f64.Aff3{0, -1, h, 1, 0, 0}, image.Pt(b.Dy(), b.Dx())
	case 7: // transversed
		m, size = f64.Aff3{0, -1, h, -1, 0, w}, image.Pt(b.Dy(), b.Dx())
	case 8: // rotated right, turn counter clockwise
		m, size = f64.Aff3{0, 1, 0, -1, 0, w}, image.Pt(b.Dy(), b.Dx())
	default:
		return img
	}

	// the matrices above are for images at the origin
	m[2] -= m[0]*float64(b.Min.X) + m[1]*float64(b.Min.Y)
	m[5] -= m[3]*float64(b.Min.X) + m[4]*float64(b.Min.Y)

	dst := image.NewRGBA(image.Rectangle{Max: size})
	xdraw.NearestNeighbor.Transform(dst, m, img, b, xdraw.Src, nil)
	return dst
}
