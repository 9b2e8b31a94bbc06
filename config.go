package photostack

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-logr/logr"
	xdraw "golang.org/x/image/draw"
)

// Config holds the appearance settings of a Stack. Changing any of them
// rebuilds the deck.
type Config struct {
	// BorderImage is stretched behind every photo when ShowBorder is set.
	// Without it photos get a plain outline of BorderWidth.
	BorderImage image.Image
	// BorderWidth is the width of the border around every photo.
	BorderWidth int
	// ShowBorder enables the border. When false the border width is 0.
	ShowBorder bool
	// RotationOffset bounds the random tilt, in degrees, of the photos
	// below the top one. 4 means a tilt in (-4, 4).
	RotationOffset float64
	// HighlightColor covers the top photo while it is pressed.
	HighlightColor color.Color
}

var defaultBorderImage = func() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	xdraw.Draw(img, img.Bounds(), image.White, image.Point{}, xdraw.Src)
	return img
}()

// DefaultConfig returns the settings a new Stack starts with.
func DefaultConfig() Config {
	return Config{
		BorderImage:    defaultBorderImage,
		BorderWidth:    5,
		ShowBorder:     true,
		RotationOffset: 4,
		HighlightColor: color.NRGBA{0, 0, 0, 38},
	}
}

// borderWidth is the border actually applied to the photos.
func (c Config) borderWidth() int {
	if !c.ShowBorder {
		return 0
	}
	return max(0, c.BorderWidth)
}

// tiltBound is the largest tilt, in whole degrees, strictly inside RotationOffset.
func (c Config) tiltBound() int {
	b := int(math.Abs(c.RotationOffset))
	if float64(b) == math.Abs(c.RotationOffset) {
		b--
	}
	return max(0, b)
}

func (c Config) equal(o Config) bool {
	return c.BorderImage == o.BorderImage &&
		c.BorderWidth == o.BorderWidth &&
		c.ShowBorder == o.ShowBorder &&
		c.RotationOffset == o.RotationOffset &&
		sameColor(c.HighlightColor, o.HighlightColor)
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

// settings is everything an Option can change.
type settings struct {
	config Config
	log    logr.Logger
	now    func() time.Time
	rand   *rand.Rand
	screen image.Rectangle
}

// Option configures a Stack. Options are accepted by New and Configure.
type Option func(*settings)

// WithBorderImage sets the image stretched behind every photo.
func WithBorderImage(img image.Image) Option {
	return func(s *settings) { s.config.BorderImage = img }
}

// WithBorderWidth sets the border width.
func WithBorderWidth(w int) Option {
	return func(s *settings) { s.config.BorderWidth = w }
}

// WithShowBorder turns the border on or off.
func WithShowBorder(show bool) Option {
	return func(s *settings) { s.config.ShowBorder = show }
}

// WithRotationOffset sets the bound of the random tilt in degrees.
func WithRotationOffset(deg float64) Option {
	return func(s *settings) { s.config.RotationOffset = deg }
}

// WithHighlightColor sets the color laid over the pressed top photo.
func WithHighlightColor(c color.Color) Option {
	return func(s *settings) { s.config.HighlightColor = c }
}

// WithConfig replaces the whole configuration.
func WithConfig(c Config) Option {
	return func(s *settings) { s.config = c }
}

// WithLogger sets the logger. Debug messages are logged at V(1).
func WithLogger(log logr.Logger) Option {
	return func(s *settings) { s.log = log }
}

// WithClock sets the clock used to stamp new animations.
// The host still drives them by calling Tick.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithRand sets the random source of the photo tilts.
func WithRand(r *rand.Rand) Option {
	return func(s *settings) { s.rand = r }
}

// WithScreen sets the area covered by the grid overlay.
// It defaults to the frame of the stack.
func WithScreen(r image.Rectangle) Option {
	return func(s *settings) { s.screen = r }
}
