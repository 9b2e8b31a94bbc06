package main

import (
	"errors"
	"image"
	"math/rand/v2"
	"time"

	draw9 "9fans.net/go/draw"
	"github.com/go-logr/logr"
	xdraw "golang.org/x/image/draw"

	"github.com/anastasop/photostack"
	"github.com/anastasop/photostack/render"
)

const frameInterval = time.Second / 60

// StackView shows the album as a stack of photos.
type StackView struct {
	album    *Album
	stack    *photostack.Stack
	renderer *render.Renderer
	canvas   *image.RGBA
	buttons  int // mouse buttons of the last event
	log      logr.Logger

	dctl *DisplayControl
}

// NewStackView returns a view of album in the window area r.
func NewStackView(album *Album, r image.Rectangle, renderer *render.Renderer, log logr.Logger, opts ...photostack.Option) *StackView {
	sv := &StackView{
		album:    album,
		renderer: renderer,
		log:      log,
	}
	opts = append([]photostack.Option{photostack.WithLogger(log.WithName("stack"))}, opts...)
	sv.stack = photostack.New(stackFrame(r, album.photoSize), opts...)
	sv.stack.SetScreen(r)
	sv.stack.SetDelegate(photostack.Delegate{
		DidSelectPhoto:    sv.didSelectPhoto,
		WillBeginDragging: func(i int) { sv.log.V(1).Info("dragging", "index", i) },
		WillFlickAway:     sv.willFlickAway,
		DidRevealPhoto:    sv.didRevealPhoto,
	})
	sv.stack.AddTarget(photostack.AllTouchEvents, func(e photostack.ControlEvent) {
		sv.log.V(2).Info("control event", "event", e)
	})
	sv.stack.SetDataSource(album)
	sv.canvas = image.NewRGBA(r)
	return sv
}

// stackFrame is the area of the stack in the window r: one and a half
// times the photo size, centered.
func stackFrame(r image.Rectangle, photoSize image.Point) image.Rectangle {
	return photostack.Center(r, image.Rectangle{Max: photoSize.Mul(3).Div(2)})
}

func (sv *StackView) Connect(dctl *DisplayControl) {
	sv.dctl = dctl
}

// Attach moves the stack to the center of r.
func (sv *StackView) Attach(r image.Rectangle) {
	if r.Eq(sv.canvas.Bounds()) {
		return
	}
	sv.canvas = image.NewRGBA(r)
	sv.stack.SetScreen(r)
	sv.stack.SetFrame(stackFrame(r, sv.album.photoSize))
}

func (sv *StackView) Free() {
	sv.album.Free()
}

func (sv *StackView) didSelectPhoto(i int) {
	if pi, ok := sv.album.At(i); ok {
		sv.log.Info("photo selected", "index", i, "path", pi.path)
		plumbImage(pi.path)
	}
}

func (sv *StackView) willFlickAway(from, to int) {
	sv.log.V(1).Info("flick away", "from", from, "to", to)
}

func (sv *StackView) didRevealPhoto(i int) {
	if pi, ok := sv.album.At(i); ok {
		sv.log.Info("photo revealed", "index", i, "path", pi.path, "exif", pi.ExifInfo())
	}
}

// Handle runs the view until the user exits.
func (sv *StackView) Handle() {
	bt2menu := &draw9.Menu{
		Item: []string{"next", "add", "delete", "show all", "plumb", "exit"},
	}

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	dctl := sv.dctl
	sv.paint(dctl)
	for {
		// frames are needed only while the photos move
		var tick <-chan time.Time
		if sv.stack.Animating() {
			tick = ticker.C
		}

		select {
		case err := <-dctl.errch:
			sv.log.Error(err, "display")
		case now := <-tick:
			sv.stack.Tick(now)
		case k := <-dctl.kctl.C:
			switch k {
			case 'q', escKey:
				return
			case leftArrowKey:
				sv.stack.FlipToNextPhoto(photostack.Left)
			case rightArrowKey:
				sv.stack.FlipToNextPhoto(photostack.Right)
			case upArrowKey:
				sv.stack.FlipToNextPhoto(photostack.Up)
			case downArrowKey:
				sv.stack.FlipToNextPhoto(photostack.Down)
			case 'a':
				sv.add()
			case 'd':
				sv.delete()
			case 'g':
				sv.stack.ShowAllPhotos()
			case 'p':
				sv.didSelectPhoto(sv.stack.TopPhotoIndex())
			}
		case dctl.mctl.Mouse = <-dctl.mctl.C:
			m := dctl.mctl.Mouse
			if m.Buttons&2 != 0 && sv.buttons&1 == 0 {
				switch draw9.MenuHit(2, dctl.mctl, bt2menu, nil) {
				case 0: // next
					sv.stack.FlipToNextPhoto(photostack.Direction(rand.IntN(4) + 1))
				case 1: // add
					sv.add()
				case 2: // delete
					sv.delete()
				case 3: // show all
					sv.stack.ShowAllPhotos()
				case 4: // plumb
					sv.didSelectPhoto(sv.stack.TopPhotoIndex())
				case 5: // exit
					return
				}
				sv.buttons = 0
			} else {
				sv.handleMouse(m)
			}
		case <-dctl.mctl.Resize:
			if err := dctl.display.Attach(draw9.RefNone); err != nil {
				sv.log.Error(err, "display: failed to attach")
				return
			}
			sv.Attach(dctl.display.Image.Bounds())
		}
		sv.paint(dctl)
	}
}

// handleMouse turns the state of button 1 into pointer events for the stack.
func (sv *StackView) handleMouse(m draw9.Mouse) {
	ev := photostack.PointerEvent{
		Position: m.Point,
		Time:     time.UnixMilli(int64(m.Msec)),
	}
	switch down, wasDown := m.Buttons&1 != 0, sv.buttons&1 != 0; {
	case down && !wasDown:
		ev.Kind = photostack.Press
	case down && wasDown:
		ev.Kind = photostack.Move
	case !down && wasDown:
		ev.Kind = photostack.Release
	default:
		sv.buttons = m.Buttons
		return
	}
	sv.buttons = m.Buttons
	sv.stack.HandlePointer(ev)
}

func (sv *StackView) add() {
	i := sv.album.Add()
	sv.stack.ReloadData()
	sv.log.V(1).Info("reloaded", "added", i, "photos", sv.stack.Len())
}

func (sv *StackView) delete() {
	if err := sv.album.Delete(); err != nil {
		if errors.Is(err, errLastPhoto) {
			sv.log.Info("cannot delete the last photo")
			return
		}
		sv.log.Error(err, "delete")
		return
	}
	sv.stack.ReloadData()
}

func (sv *StackView) paint(dctl *DisplayControl) {
	xdraw.Draw(sv.canvas, sv.canvas.Bounds(), background, image.Point{}, xdraw.Src)
	sv.renderer.Draw(sv.canvas, sv.stack)
	if err := blit(dctl.display, dctl.display.Image, sv.canvas.Bounds(), sv.canvas); err != nil {
		sv.log.Error(err, "paint")
	}
	if err := dctl.display.Flush(); err != nil {
		sv.log.Error(err, "display: flush")
	}
}
