package photostack

import "image"

// DataSource supplies the photos of a Stack.
type DataSource interface {
	// NumberOfPhotos returns the number of photos in the stack.
	NumberOfPhotos() int
	// ImageAt returns the photo at index i. It is called for every i in
	// [0, NumberOfPhotos()) and must return a valid image.
	ImageAt(i int) image.Image
}

// PhotoSizer is implemented by data sources that want the photos displayed
// at a size other than the natural size of their images.
type PhotoSizer interface {
	SizeAt(i int) image.Point
}

// PhotoIdentifier is implemented by data sources whose photos have an
// identity independent of their position. Identities are used to keep the
// tilt and the top photo of the stack across reloads. Without it the index
// of a photo is its identity.
type PhotoIdentifier interface {
	PhotoID(i int) string
}

// Delegate receives notifications from a Stack. Any of the callbacks may be nil.
type Delegate struct {
	// DidSelectPhoto is called when the top photo is tapped.
	DidSelectPhoto func(index int)
	// WillBeginDragging is called when a drag of the top photo starts.
	WillBeginDragging func(index int)
	// DidRevealPhoto is called when a new photo has become the top one.
	DidRevealPhoto func(index int)
	// WillFlickAway is called before the top photo is flung off the stack.
	WillFlickAway func(from, to int)
}

func (d Delegate) didSelectPhoto(index int) {
	if d.DidSelectPhoto != nil {
		d.DidSelectPhoto(index)
	}
}

func (d Delegate) willBeginDragging(index int) {
	if d.WillBeginDragging != nil {
		d.WillBeginDragging(index)
	}
}

func (d Delegate) didRevealPhoto(index int) {
	if d.DidRevealPhoto != nil {
		d.DidRevealPhoto(index)
	}
}

func (d Delegate) willFlickAway(from, to int) {
	if d.WillFlickAway != nil {
		d.WillFlickAway(from, to)
	}
}
