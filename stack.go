// Package photostack implements a photo stack control: a deck of photos
// where the top one can be dragged and flicked away to reveal the next,
// and a grid overlay that shows all of them at once.
//
// The control does not draw and does not read input devices. The host
// feeds it pointer events, calls Tick once per frame and paints the items
// returned by Items, or by the Overlay while one is shown. Package render
// paints a Stack on any draw.Image.
//
// A Stack is not safe for concurrent use. All its methods, and all the
// callbacks it makes, run on the host's event loop goroutine.
package photostack

import (
	"image"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/go-logr/logr"
)

// Stack is the photo stack control.
type Stack struct {
	settings
	frame    image.Rectangle
	source   DataSource
	delegate Delegate

	deck    *Deck
	anim    *Animator
	state   GestureState
	track   tracker
	targets targets

	overlay        *Overlay
	overlayPressed bool
}

// New returns a Stack occupying frame. It is empty until a data source is set.
func New(frame image.Rectangle, opts ...Option) *Stack {
	st := settings{
		config: DefaultConfig(),
		log:    logr.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&st)
	}
	if st.rand == nil {
		st.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Stack{
		settings: st,
		frame:    frame,
		deck:     new(Deck),
		anim:     NewAnimator(st.now),
	}
}

// Frame returns the area of the stack in host coordinates.
func (s *Stack) Frame() image.Rectangle {
	return s.frame
}

// Bounds returns the area of the stack in its own coordinates, the ones
// the centers of the deck items are in.
func (s *Stack) Bounds() image.Rectangle {
	return image.Rectangle{Max: s.frame.Size()}
}

// SetFrame moves or resizes the stack. A change rebuilds the deck.
func (s *Stack) SetFrame(r image.Rectangle) {
	if r.Eq(s.frame) {
		return
	}
	s.frame = r
	s.ReloadData()
}

// Screen returns the area covered by the grid overlay.
func (s *Stack) Screen() image.Rectangle {
	if s.screen.Empty() {
		return s.frame
	}
	return s.screen
}

// SetScreen sets the area covered by the grid overlay.
func (s *Stack) SetScreen(r image.Rectangle) {
	s.screen = r
}

// SetDataSource sets the source of the photos and rebuilds the deck.
func (s *Stack) SetDataSource(src DataSource) {
	s.source = src
	s.ReloadData()
}

// DataSource returns the source of the photos.
func (s *Stack) DataSource() DataSource {
	return s.source
}

// SetDelegate sets the receiver of the stack notifications.
func (s *Stack) SetDelegate(d Delegate) {
	s.delegate = d
}

// Config returns the current configuration.
func (s *Stack) Config() Config {
	return s.config
}

// Configure applies all the options at once. If the configuration changed
// the deck is rebuilt, once.
func (s *Stack) Configure(opts ...Option) {
	old := s.config
	for _, opt := range opts {
		opt(&s.settings)
	}
	if !s.config.equal(old) {
		s.ReloadData()
	}
}

// SetBorderImage sets the image stretched behind every photo.
func (s *Stack) SetBorderImage(img image.Image) { s.Configure(WithBorderImage(img)) }

// SetBorderWidth sets the width of the border around every photo.
func (s *Stack) SetBorderWidth(w int) { s.Configure(WithBorderWidth(w)) }

// SetShowBorder turns the border on or off.
func (s *Stack) SetShowBorder(show bool) { s.Configure(WithShowBorder(show)) }

// SetRotationOffset sets the bound of the random tilt of the photos.
func (s *Stack) SetRotationOffset(deg float64) { s.Configure(WithRotationOffset(deg)) }

// SetHighlightColor sets the color laid over the pressed top photo.
func (s *Stack) SetHighlightColor(c color.Color) { s.Configure(WithHighlightColor(c)) }

// ReloadData rebuilds the deck from the data source. Photos that are still
// there keep their tilt and the top photo stays on top.
func (s *Stack) ReloadData() {
	s.reload(true)
}

func (s *Stack) reload(keepTilts bool) {
	s.deck = buildDeck(s.source, s.config, s.Bounds(), s.deck, s.crookedAngle)
	if !keepTilts && s.deck.Len() > 1 {
		items := s.deck.Items()
		for _, it := range items[:len(items)-1] {
			it.Angle = s.crookedAngle()
		}
	}
	if s.state == Pressed || s.state == Dragging {
		s.state = Idle
	}
	s.log.V(1).Info("reloaded", "photos", s.deck.Len(), "top", s.deck.IndexOfTop())
}

// crookedAngle returns a random tilt in whole degrees strictly inside the
// rotation offset.
func (s *Stack) crookedAngle() float64 {
	b := s.config.tiltBound()
	if b == 0 {
		return 0
	}
	return float64(s.rand.IntN(2*b+1) - b)
}

// TopPhotoIndex returns the index of the photo on top, 0 if there is none.
func (s *Stack) TopPhotoIndex() int {
	return s.deck.IndexOfTop()
}

// Len returns the number of photos in the deck.
func (s *Stack) Len() int {
	return s.deck.Len()
}

// Top returns the item on top, or nil if the deck is empty.
func (s *Stack) Top() *PhotoItem {
	return s.deck.Top()
}

// Items returns the deck items in draw order, back to front.
// The slice must not be modified.
func (s *Stack) Items() []*PhotoItem {
	return s.deck.Items()
}

// State returns the state of the interaction with the top photo.
func (s *Stack) State() GestureState {
	return s.state
}

// Overlay returns the grid overlay, or nil if it is not shown.
func (s *Stack) Overlay() *Overlay {
	return s.overlay
}

// AddTarget subscribes fn to the control events in events. It returns a
// function that cancels the subscription.
func (s *Stack) AddTarget(events ControlEvent, fn func(ControlEvent)) func() {
	return s.targets.add(events, fn)
}

// sendActions notifies the targets of e. The top photo is highlighted
// between a TouchDown and the next event.
func (s *Stack) sendActions(e ControlEvent) {
	s.targets.send(e)
	if top := s.deck.Top(); top != nil {
		top.Highlighted = e == TouchDown
	}
}

// Tick advances the animations to now. The host calls it once per frame.
func (s *Stack) Tick(now time.Time) {
	s.anim.Tick(now)
}

// Animating reports whether an animation is in progress. Hosts may stop
// calling Tick and repainting while it is false.
func (s *Stack) Animating() bool {
	return s.anim.Animating()
}
