package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/go-logr/logr"
	xdraw "golang.org/x/image/draw"

	"github.com/anastasop/photostack"
)

var errLastPhoto = errors.New("only one photo left")

// Album is the data source of the stack. It holds the photos on the stack,
// loaded through a paged cache, and a pool of photos to add from.
type Album struct {
	pool      []*Photo
	images    []*PhotoImage
	cache     *photoCache[*PhotoImage]
	pageSize  int
	photoSize image.Point
	scaler    xdraw.Scaler
	rand      *rand.Rand
	serial    int
	log       logr.Logger
}

// NewAlbum returns an album with all the photos of pool.
func NewAlbum(pool []*Photo, photoSize image.Point, pageSize int, scaler xdraw.Scaler, log logr.Logger) *Album {
	a := &Album{
		pool:      pool,
		pageSize:  pageSize,
		photoSize: photoSize,
		scaler:    scaler,
		rand:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:       log,
	}
	for _, p := range pool {
		a.images = append(a.images, a.newImage(p))
	}
	a.resetCache()
	return a
}

func (a *Album) newImage(p *Photo) *PhotoImage {
	id := fmt.Sprintf("%s#%d", p.path, a.serial)
	a.serial++
	return p.NewPhotoImage(id, a.photoSize, a.scaler, a.log)
}

func (a *Album) resetCache() {
	if a.cache != nil {
		a.cache.Free()
	}
	a.cache = newPhotoCache(a.images, a.pageSize, a.log)
}

// Free releases the cache.
func (a *Album) Free() {
	a.cache.Free()
}

// Add appends a random photo of the pool to the album.
// It returns the index of the new photo.
func (a *Album) Add() int {
	p := a.pool[a.rand.IntN(len(a.pool))]
	a.images = append(a.images, a.newImage(p))
	a.resetCache()
	a.log.Info("photo added", "path", p.path, "photos", len(a.images))
	return len(a.images) - 1
}

// Delete removes the last photo of the album. The album never becomes empty.
func (a *Album) Delete() error {
	if len(a.images) <= 1 {
		return fmt.Errorf("delete: %w", errLastPhoto)
	}
	last := a.images[len(a.images)-1]
	a.images = a.images[:len(a.images)-1]
	a.resetCache()
	a.log.Info("photo deleted", "path", last.path, "photos", len(a.images))
	return nil
}

// At returns the image at i.
func (a *Album) At(i int) (*PhotoImage, bool) {
	return a.cache.At(i)
}

func (a *Album) NumberOfPhotos() int {
	return a.cache.Len()
}

// ImageAt returns the photo at i. Photos that cannot be loaded are shown
// as a grey placeholder.
func (a *Album) ImageAt(i int) image.Image {
	pi, ok := a.cache.At(i)
	if !ok {
		return a.placeholder()
	}
	img, err := pi.Image()
	if err != nil {
		a.log.Error(err, "image not ready", "index", i)
		return a.placeholder()
	}
	return img
}

func (a *Album) SizeAt(i int) image.Point {
	if pi, ok := a.cache.At(i); ok {
		return pi.DisplaySize()
	}
	return a.photoSize
}

func (a *Album) PhotoID(i int) string {
	if pi, ok := a.cache.At(i); ok {
		return pi.id
	}
	return ""
}

func (a *Album) placeholder() image.Image {
	img := image.NewRGBA(image.Rectangle{Max: a.photoSize})
	xdraw.Draw(img, img.Bounds(), image.NewUniform(color.Gray{0x66}), image.Point{}, xdraw.Src)
	return img
}

var (
	_ photostack.DataSource      = (*Album)(nil)
	_ photostack.PhotoSizer      = (*Album)(nil)
	_ photostack.PhotoIdentifier = (*Album)(nil)
)
