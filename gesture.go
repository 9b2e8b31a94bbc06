package photostack

import (
	"fmt"
	"image"
	"math"
	"time"

	"golang.org/x/image/math/f64"
)

const (
	// flingVelocity is the horizontal release speed, in units per second,
	// above which the top photo is flung away instead of returning.
	flingVelocity = 200
	// flipVelocity is the speed of the synthetic fling of FlipToNextPhoto.
	flipVelocity = 400
	// dragDeadZone is how far a press may move before it becomes a drag.
	dragDeadZone = 4
	// velocityWindow is how far back the release velocity looks.
	velocityWindow = 100 * time.Millisecond
)

// GestureState is the state of the interaction with the top photo.
//
//	Idle ──press──► Pressed ──move──► Dragging ──release──► Flung | Returning
//	  ▲                │                                          │
//	  └─────tap────────┘◄─────────────animation done──────────────┘
type GestureState int

const (
	Idle GestureState = iota
	Pressed
	Dragging
	Flung
	Returning
)

func (s GestureState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pressed:
		return "pressed"
	case Dragging:
		return "dragging"
	case Flung:
		return "flung"
	case Returning:
		return "returning"
	default:
		return fmt.Sprintf("GestureState(%d)", int(s))
	}
}

// Direction is the direction of FlipToNextPhoto.
type Direction int

const (
	Left Direction = iota + 1
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// velocity returns the synthetic fling velocity for d. The direction names
// the side the next photo comes in from: Left throws the top photo to the
// right, Up throws it down.
func (d Direction) velocity() f64.Vec2 {
	switch d {
	case Left:
		return f64.Vec2{flipVelocity, 0}
	case Right:
		return f64.Vec2{-flipVelocity, 0}
	case Up:
		return f64.Vec2{0, flipVelocity}
	case Down:
		return f64.Vec2{0, -flipVelocity}
	}
	return f64.Vec2{}
}

// PointerKind is the kind of a PointerEvent.
type PointerKind int

const (
	Press PointerKind = iota
	Move
	Release
)

// PointerEvent is a sample of the single pointer driving the stack.
// Position is in the coordinates of the host, the ones the frame of the
// stack is given in. Only the differences of Time within one gesture matter.
type PointerEvent struct {
	Kind     PointerKind
	Position image.Point
	Time     time.Time
}

// pointerSample is a position of the pointer at an instant.
type pointerSample struct {
	p  image.Point
	at time.Time
}

// tracker follows a gesture and estimates the pointer velocity over the
// samples of the last velocityWindow.
type tracker struct {
	start    image.Point // where the press happened
	last     image.Point // the last sample
	dragFrom image.Point // the position already applied to the dragged item
	samples  []pointerSample
	velocity f64.Vec2
}

func (tr *tracker) reset(p image.Point, at time.Time) {
	*tr = tracker{start: p, last: p, dragFrom: p, samples: []pointerSample{{p, at}}}
}

// sample records p and updates the velocity. The velocity is the movement
// from the oldest sample inside the window to p. With no sample inside the
// window it is measured from the newest one before it, so a pointer that
// rested reads as still. Samples at the same instant keep the previous velocity.
func (tr *tracker) sample(p image.Point, at time.Time) {
	tr.last = p
	tr.samples = append(tr.samples, pointerSample{p, at})

	cutoff := at.Add(-velocityWindow)
	ref := -1
	for i, s := range tr.samples[:len(tr.samples)-1] {
		if !s.at.Before(at) {
			break
		}
		ref = i
		if !s.at.Before(cutoff) {
			break
		}
	}
	if ref < 0 {
		return
	}
	r := tr.samples[ref]
	d, dt := p.Sub(r.p), at.Sub(r.at).Seconds()
	tr.velocity = f64.Vec2{float64(d.X) / dt, float64(d.Y) / dt}
	tr.samples = tr.samples[ref:]
}

// beyondDeadZone reports whether the pointer left the dead zone around the press.
func (tr *tracker) beyondDeadZone() bool {
	d := tr.last.Sub(tr.start)
	return math.Hypot(float64(d.X), float64(d.Y)) > dragDeadZone
}

// drag returns the movement since the last call.
func (tr *tracker) drag() image.Point {
	d := tr.last.Sub(tr.dragFrom)
	tr.dragFrom = tr.last
	return d
}

// HandlePointer dispatches ev to Press, Move or Release.
func (s *Stack) HandlePointer(ev PointerEvent) {
	switch ev.Kind {
	case Press:
		s.Press(ev.Position, ev.Time)
	case Move:
		s.Move(ev.Position, ev.Time)
	case Release:
		s.Release(ev.Position, ev.Time)
	}
}

// Press starts a gesture at p. Presses outside the frame, on an empty
// stack, or while an animation of the top photo runs are ignored. While the
// grid overlay is shown, the press may start a tap that dismisses it.
func (s *Stack) Press(p image.Point, at time.Time) {
	if s.overlay != nil {
		s.overlayPressed = s.overlay.state == OverlayShown
		return
	}
	if s.state != Idle || s.deck.Len() == 0 || !p.In(s.frame) {
		s.log.V(1).Info("press ignored", "state", s.state, "photos", s.deck.Len(), "at", p)
		return
	}
	s.state = Pressed
	s.track.reset(p, at)
	s.sendActions(TouchDown)
}

// Move continues the gesture. A press that leaves the dead zone becomes a
// drag and from then on the top photo follows the pointer.
func (s *Stack) Move(p image.Point, at time.Time) {
	switch s.state {
	case Pressed:
		s.track.sample(p, at)
		s.sendActions(TouchDragInside)
		if !s.track.beyondDeadZone() {
			return
		}
		s.state = Dragging
		s.sendActions(TouchCancel)
		s.delegate.willBeginDragging(s.deck.IndexOfTop())
		s.dragTop()
	case Dragging:
		s.track.sample(p, at)
		s.sendActions(TouchDragInside)
		s.dragTop()
	}
}

func (s *Stack) dragTop() {
	if top := s.deck.Top(); top != nil {
		top.Center = top.Center.Add(s.track.drag())
	}
}

// Release ends the gesture. A press that never became a drag is a tap.
// A drag released fast enough horizontally flings the top photo away,
// otherwise the photo returns to the center.
func (s *Stack) Release(p image.Point, at time.Time) {
	if s.overlay != nil {
		if s.overlayPressed {
			s.overlayPressed = false
			s.dismissAllPhotos()
		}
		return
	}

	switch s.state {
	case Pressed:
		s.state = Idle
		s.sendActions(TouchUpInside)
		s.delegate.didSelectPhoto(s.deck.IndexOfTop())
	case Dragging:
		s.track.sample(p, at)
		top := s.deck.Top()
		if top == nil {
			s.state = Idle
			return
		}
		if v := s.track.velocity; math.Abs(v[0]) > flingVelocity {
			s.flickAway(top, v)
		} else {
			s.returnToCenter(top)
		}
	}
}

// FlipToNextPhoto flings the top photo in direction d as if the user did.
func (s *Stack) FlipToNextPhoto(d Direction) {
	top := s.deck.Top()
	if top == nil || s.state != Idle || s.overlay != nil {
		s.log.V(1).Info("flip ignored", "direction", d, "state", s.state, "photos", s.deck.Len())
		return
	}
	s.flickAway(top, d.velocity())
}

// flickAway throws it off the stack with velocity v and, when it is out of
// sight, puts it at the bottom of the deck.
func (s *Stack) flickAway(it *PhotoItem, v f64.Vec2) {
	from := s.deck.IndexOfTop()
	to := from + 1
	if to >= s.deck.Len() {
		to = 0
	}
	s.delegate.willFlickAway(from, to)
	s.log.V(1).Info("flick away", "from", from, "to", to, "velocity", v)

	s.state = Flung
	step := moveStep(it, flingTarget(s.Bounds(), v), flingDuration)
	step.Easing = EaseOut
	step.Done = func() { s.reveal(it) }
	s.anim.Start(step)
}

// reveal puts the flung item it back under the deck and straightens the new top.
func (s *Stack) reveal(it *PhotoItem) {
	if s.deck.find(it.ID) != it {
		// the deck was reloaded while it was away
		s.state = Idle
		return
	}
	next := s.deck.below()
	angle := 0.0
	if next != it {
		angle = s.crookedAngle()
	}
	s.anim.Group([]Step{
		rotateStep(it, angle),
		{Begin: func() { s.deck.SendToBottom(it) }},
		rotateStep(next, 0),
		moveStep(it, midpoint(s.Bounds()), returnDuration),
	}, func() {
		s.state = Idle
		top := s.deck.IndexOfTop()
		s.log.V(1).Info("revealed", "top", top)
		s.delegate.didRevealPhoto(top)
	})
}

// returnToCenter puts it back in the middle of the stack.
func (s *Stack) returnToCenter(it *PhotoItem) {
	s.state = Returning
	step := moveStep(it, midpoint(s.Bounds()), returnDuration)
	step.Done = func() { s.state = Idle }
	s.anim.Start(step)
}
