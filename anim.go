package photostack

import (
	"image"
	"time"
)

// Durations of the stack animations.
const (
	rotateDuration   = 200 * time.Millisecond
	flingDuration    = 100 * time.Millisecond
	returnDuration   = 200 * time.Millisecond
	gridFadeDuration = 100 * time.Millisecond
	gridStepDuration = 100 * time.Millisecond
	gridStagger      = 100 * time.Millisecond
	gridDismissTime  = 250 * time.Millisecond
)

// EasingFunc maps linear progress in [0, 1] to eased progress.
type EasingFunc func(t float64) float64

var (
	// EaseLinear is constant speed.
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseInOut accelerates at the start and decelerates at the end.
	EaseInOut EasingFunc = func(t float64) float64 { return t * t * (3 - 2*t) }

	// EaseOut decelerates.
	EaseOut EasingFunc = func(t float64) float64 { return t * (2 - t) }
)

// Step is one timed change of the deck.
type Step struct {
	Duration time.Duration
	Delay    time.Duration // wait before starting
	Easing   EasingFunc    // defaults to EaseInOut

	Begin func()          // called once when the step starts, before the first Apply
	Apply func(t float64) // applies the change at eased progress t
	Done  func()          // called after the final Apply(1)
}

type running struct {
	step    Step
	start   time.Time
	started bool
}

// Animator runs steps on the host's frame clock. Nothing happens between
// calls to Tick: the host calls it once per frame and all the callbacks of
// the steps run inside it, on the caller's goroutine.
type Animator struct {
	now     func() time.Time
	running []*running
}

// NewAnimator returns an Animator that stamps new steps with now.
func NewAnimator(now func() time.Time) *Animator {
	if now == nil {
		now = time.Now
	}
	return &Animator{now: now}
}

// Start schedules s to start after its delay.
func (a *Animator) Start(s Step) {
	a.running = append(a.running, &running{step: s, start: a.now().Add(s.Delay)})
}

// Then chains steps: each one starts when the previous is done.
// done, if not nil, runs after the last one.
func (a *Animator) Then(steps []Step, done func()) {
	if len(steps) == 0 {
		if done != nil {
			done()
		}
		return
	}
	s := steps[0]
	inner := s.Done
	s.Done = func() {
		if inner != nil {
			inner()
		}
		a.Then(steps[1:], done)
	}
	a.Start(s)
}

// Group starts all the steps together. done, if not nil, runs once after
// every step has completed. Steps of a group complete in no particular order.
func (a *Animator) Group(steps []Step, done func()) {
	if len(steps) == 0 {
		if done != nil {
			done()
		}
		return
	}
	remaining := len(steps)
	for _, s := range steps {
		inner := s.Done
		s.Done = func() {
			if inner != nil {
				inner()
			}
			remaining--
			if remaining == 0 && done != nil {
				done()
			}
		}
		a.Start(s)
	}
}

// Animating reports whether any step is scheduled or running.
func (a *Animator) Animating() bool {
	return len(a.running) > 0
}

// Tick advances all the steps to now. Steps started by completions during
// Tick first run on the next call.
func (a *Animator) Tick(now time.Time) {
	current := a.running
	a.running = nil

	var finished []*running
	for _, r := range current {
		if now.Before(r.start) {
			a.running = append(a.running, r)
			continue
		}
		if !r.started {
			r.started = true
			if r.step.Begin != nil {
				r.step.Begin()
			}
		}
		t := 1.0
		if d := r.step.Duration; d > 0 {
			t = min(1, float64(now.Sub(r.start))/float64(d))
		}
		if r.step.Apply != nil {
			ease := r.step.Easing
			if ease == nil {
				ease = EaseInOut
			}
			r.step.Apply(ease(t))
		}
		if t >= 1 {
			finished = append(finished, r)
		} else {
			a.running = append(a.running, r)
		}
	}

	for _, r := range finished {
		if r.step.Done != nil {
			r.step.Done()
		}
	}
}

// moveStep moves the center of it to the point to.
func moveStep(it *PhotoItem, to image.Point, d time.Duration) Step {
	var from image.Point
	return Step{
		Duration: d,
		Begin:    func() { from = it.Center },
		Apply:    func(t float64) { it.Center = lerpPoint(from, to, t) },
	}
}

// frameStep moves and resizes it to fill r.
func frameStep(it *PhotoItem, r image.Rectangle, d, delay time.Duration) Step {
	var fromC, fromS image.Point
	toC, toS := midpoint(r), r.Size()
	return Step{
		Duration: d,
		Delay:    delay,
		Begin:    func() { fromC, fromS = it.Center, it.Size },
		Apply: func(t float64) {
			it.Center = lerpPoint(fromC, toC, t)
			it.Size = lerpPoint(fromS, toS, t)
		},
	}
}

// rotateStep turns it to deg.
func rotateStep(it *PhotoItem, deg float64) Step {
	var from float64
	return Step{
		Duration: rotateDuration,
		Begin:    func() { from = it.Angle },
		Apply:    func(t float64) { it.Angle = lerp(from, deg, t) },
	}
}
