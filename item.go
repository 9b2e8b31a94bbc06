package photostack

import (
	"image"

	"golang.org/x/image/math/f64"
)

// PhotoItem is one photo of the deck as it should be drawn.
// Items are created by a reload and discarded by the next one.
type PhotoItem struct {
	ID    string      // identity of the photo across reloads
	Index int         // position in the data source at the last reload
	Image image.Image // the photo

	PhotoSize image.Point // size the photo is displayed at, border excluded
	Inset     int         // width of the border image around the photo
	Outline   int         // width of the plain border drawn over the photo edge

	Center      image.Point // center of the item. Relative to the stack bounds, or the screen in the grid overlay.
	Size        image.Point // outer size of the item, border included
	Angle       float64     // clockwise tilt in degrees
	Highlighted bool        // true while the top photo is pressed
}

// Frame returns the untilted rectangle the item occupies.
func (it *PhotoItem) Frame() image.Rectangle {
	return rectAround(it.Center, it.Size)
}

// PhotoRect returns the part of Frame covered by the photo.
func (it *PhotoItem) PhotoRect() image.Rectangle {
	return it.Frame().Inset(it.Inset)
}

// Transform maps the item, drawn at the origin with its Size, to its tilted
// position. Center is offset by origin, the frame's Min for deck items.
func (it *PhotoItem) Transform(origin image.Point) f64.Aff3 {
	return Rotation(it.Angle, it.Size, it.Center.Add(origin))
}
