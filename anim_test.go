package photostack

import (
	"image"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestAnimatorChainsSteps(t *testing.T) {
	clk := newClock()
	a := NewAnimator(clk.now)

	var log []string
	step := func(name string, d time.Duration) Step {
		return Step{
			Duration: d,
			Begin:    func() { log = append(log, "begin "+name) },
			Done:     func() { log = append(log, "done "+name) },
		}
	}
	a.Then([]Step{step("a", 100*time.Millisecond), step("b", 50*time.Millisecond)}, func() {
		log = append(log, "chain")
	})

	a.Tick(clk.advance(50 * time.Millisecond))
	if diff := cmp.Diff([]string{"begin a"}, log); diff != "" {
		t.Fatalf("unexpected callbacks (-want +got):\n%s", diff)
	}
	a.Tick(clk.advance(50 * time.Millisecond))
	a.Tick(clk.advance(50 * time.Millisecond))
	a.Tick(clk.advance(50 * time.Millisecond))
	want := []string{"begin a", "done a", "begin b", "done b", "chain"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Fatalf("unexpected callbacks (-want +got):\n%s", diff)
	}
	if a.Animating() {
		t.Fatalf("expected no animations left")
	}
}

func TestAnimatorDelay(t *testing.T) {
	clk := newClock()
	a := NewAnimator(clk.now)
	var progress []float64
	a.Start(Step{
		Duration: 100 * time.Millisecond,
		Delay:    100 * time.Millisecond,
		Easing:   EaseLinear,
		Apply:    func(t float64) { progress = append(progress, t) },
	})
	a.Tick(clk.advance(50 * time.Millisecond))
	a.Tick(clk.advance(100 * time.Millisecond))
	a.Tick(clk.advance(100 * time.Millisecond))
	if diff := cmp.Diff([]float64{0.5, 1}, progress); diff != "" {
		t.Fatalf("unexpected progress (-want +got):\n%s", diff)
	}
}

func TestAnimatorGroup(t *testing.T) {
	clk := newClock()
	a := NewAnimator(clk.now)
	done := 0
	a.Group([]Step{
		{Duration: 10 * time.Millisecond},
		{Duration: 300 * time.Millisecond},
		{},
	}, func() { done++ })

	a.Tick(clk.advance(100 * time.Millisecond))
	if done != 0 {
		t.Fatalf("expected the group to wait for its slowest step")
	}
	a.Tick(clk.advance(200 * time.Millisecond))
	if done != 1 {
		t.Fatalf("expected the group done once, got %d", done)
	}

	a.Group(nil, func() { done++ })
	if done != 2 {
		t.Fatalf("expected an empty group to complete at once")
	}
}

func TestMoveStep(t *testing.T) {
	clk := newClock()
	a := NewAnimator(clk.now)
	it := &PhotoItem{Center: image.Pt(0, 0)}
	s := moveStep(it, image.Pt(100, -50), 100*time.Millisecond)
	s.Easing = EaseLinear
	a.Start(s)
	it.Center = image.Pt(20, 0)
	a.Tick(clk.advance(50 * time.Millisecond))
	if want := image.Pt(60, -25); it.Center != want {
		t.Fatalf("expected %v half way from where the step began, got %v", want, it.Center)
	}
	a.Tick(clk.advance(50 * time.Millisecond))
	if want := image.Pt(100, -50); it.Center != want {
		t.Fatalf("expected %v, got %v", want, it.Center)
	}
}

func TestEasings(t *testing.T) {
	for name, ease := range map[string]EasingFunc{"linear": EaseLinear, "inout": EaseInOut, "out": EaseOut} {
		if ease(0) != 0 || ease(1) != 1 {
			t.Fatalf("%s: expected fixed end points, got %v and %v", name, ease(0), ease(1))
		}
	}
}
