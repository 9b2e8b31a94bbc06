package photostack

import (
	"fmt"
	"image"
	"slices"
	"time"
)

// Layout of the grid overlay.
const (
	gridColumns  = 3
	gridCellSize = 80
)

// Grid lays out square cells over an area in a fixed number of columns.
// The padding between the cells, and around them, is computed so that the
// columns fill the width of the area.
type Grid struct {
	area     image.Rectangle
	columns  int
	cellSize int
}

// NewGrid returns a new grid.
func NewGrid(area image.Rectangle, columns, cellSize int) *Grid {
	return &Grid{
		area:     area,
		columns:  columns,
		cellSize: cellSize,
	}
}

// Area returns the area of the grid.
func (g *Grid) Area() image.Rectangle {
	return g.area
}

// Padding is the space between cells and at the edges of the area.
// columns*cellSize + (columns+1)*padding fills the width.
func (g *Grid) Padding() int {
	return (g.area.Dx() - g.columns*g.cellSize) / (g.columns + 1)
}

// Coords returns the row and column of the ith cell.
func (g *Grid) Coords(i int) (row, col int) {
	return i / g.columns, i % g.columns
}

// Cell returns the rectangle of the ith cell.
func (g *Grid) Cell(i int) image.Rectangle {
	row, col := g.Coords(i)
	pad := g.Padding()
	p := g.area.Min.Add(image.Pt(
		pad+col*(g.cellSize+pad),
		pad+row*(g.cellSize+pad),
	))
	return image.Rectangle{Min: p, Max: p.Add(image.Pt(g.cellSize, g.cellSize))}
}

// OverlayState is the lifecycle of the grid overlay.
type OverlayState int

const (
	OverlayShowing OverlayState = iota
	OverlayShown
	OverlayDismissing
)

func (s OverlayState) String() string {
	switch s {
	case OverlayShowing:
		return "showing"
	case OverlayShown:
		return "shown"
	case OverlayDismissing:
		return "dismissing"
	default:
		return fmt.Sprintf("OverlayState(%d)", int(s))
	}
}

// Overlay is the full screen view with all the photos of the deck laid out
// on a grid. While it exists the deck is not drawn: its items belong to the
// overlay and their centers are in screen coordinates.
type Overlay struct {
	grid  *Grid
	state OverlayState
	dim   float64
	items []*PhotoItem
}

// State returns the lifecycle state of the overlay.
func (o *Overlay) State() OverlayState {
	return o.state
}

// Area returns the screen area the overlay covers.
func (o *Overlay) Area() image.Rectangle {
	return o.grid.Area()
}

// Grid returns the layout of the overlay.
func (o *Overlay) Grid() *Grid {
	return o.grid
}

// Dim returns the opacity, in [0, 1], of the black backdrop.
func (o *Overlay) Dim() float64 {
	return o.dim
}

// Items returns the items of the overlay in index order, which is also their draw order.
func (o *Overlay) Items() []*PhotoItem {
	return o.items
}

// dismissOrder returns the items in the order they leave the grid, last first.
func (o *Overlay) dismissOrder() []*PhotoItem {
	items := slices.Clone(o.items)
	slices.Reverse(items)
	return items
}

// dimStep fades the backdrop of o to opacity to.
func dimStep(o *Overlay, to float64, d time.Duration) Step {
	var from float64
	return Step{
		Duration: d,
		Easing:   EaseLinear,
		Begin:    func() { from = o.dim },
		Apply:    func(t float64) { o.dim = lerp(from, to, t) },
	}
}

// ShowAllPhotos covers the screen with a grid of all the photos.
// Each photo leaves the stack in turn and lands on its cell.
// A tap anywhere dismisses the overlay.
func (s *Stack) ShowAllPhotos() {
	if s.overlay != nil || s.state != Idle {
		s.log.V(1).Info("show all ignored", "state", s.state, "overlay", s.overlay != nil)
		return
	}

	o := &Overlay{
		grid:  NewGrid(s.Screen(), gridColumns, gridCellSize),
		state: OverlayShowing,
		items: s.deck.ByIndex(),
	}
	s.overlay = o
	s.log.V(1).Info("show all photos", "photos", len(o.items), "screen", o.Area())

	steps := []Step{dimStep(o, 1, gridFadeDuration)}
	for i, it := range o.items {
		it.Center, it.Size = midpoint(s.frame), s.frame.Size()
		it.Highlighted, it.Angle = false, 0
		steps = append(steps, frameStep(it, o.grid.Cell(i), gridStepDuration, gridStagger*time.Duration(i)))
	}
	s.anim.Group(steps, func() { o.state = OverlayShown })
}

// dismissAllPhotos sends the photos of the overlay back to the stack, from the
// last to the first, and rebuilds the deck when the overlay is gone.
func (s *Stack) dismissAllPhotos() {
	o := s.overlay
	if o == nil || o.state != OverlayShown {
		return
	}
	o.state = OverlayDismissing

	var steps []Step
	for _, it := range o.dismissOrder() {
		steps = append(steps, frameStep(it, s.frame, gridDismissTime, 0))
	}
	steps = append(steps, dimStep(o, 0, gridDismissTime))
	s.anim.Group(steps, func() {
		s.overlay = nil
		s.log.V(1).Info("grid overlay dismissed")
		s.reload(false)
	})
}
