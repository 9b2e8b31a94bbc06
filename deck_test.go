package photostack

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func indices(items []*PhotoItem) []int {
	var idx []int
	for _, it := range items {
		idx = append(idx, it.Index)
	}
	return idx
}

func testDeck(n int) *Deck {
	zero := func() float64 { return 0 }
	return buildDeck(newTestSource(n), DefaultConfig(), image.Rect(0, 0, 100, 100), nil, zero)
}

func TestDeckGoTo(t *testing.T) {
	d := testDeck(5)
	if diff := cmp.Diff([]int{4, 3, 2, 1, 0}, indices(d.Items())); diff != "" {
		t.Fatalf("unexpected initial order (-want +got):\n%s", diff)
	}
	d.goTo(2)
	if diff := cmp.Diff([]int{1, 0, 4, 3, 2}, indices(d.Items())); diff != "" {
		t.Fatalf("unexpected order after goTo(2) (-want +got):\n%s", diff)
	}
	d.goTo(7)
	if d.IndexOfTop() != 0 {
		t.Fatalf("expected an out of range index to select photo 0, got %d", d.IndexOfTop())
	}
}

func TestDeckSendToBottom(t *testing.T) {
	d := testDeck(4)
	top := d.Top()
	d.SendToBottom(top)
	if diff := cmp.Diff([]int{0, 3, 2, 1}, indices(d.Items())); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	if d.IndexOfTop() != 1 {
		t.Fatalf("expected photo 1 on top, got %d", d.IndexOfTop())
	}

	d.SendToBottom(&PhotoItem{Index: 9})
	if d.Len() != 4 || d.Items()[0] != top {
		t.Fatalf("expected foreign items to be ignored, got %v", indices(d.Items()))
	}
}

func TestDeckByIndex(t *testing.T) {
	d := testDeck(4)
	d.goTo(3)
	if diff := cmp.Diff([]int{0, 1, 2, 3}, indices(d.ByIndex())); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestEmptyDeck(t *testing.T) {
	d := new(Deck)
	if d.Top() != nil || d.below() != nil || d.IndexOfTop() != 0 {
		t.Fatalf("expected an empty deck to have no top")
	}
	d.goTo(3)
	if d.Len() != 0 {
		t.Fatalf("expected an empty deck, got %d items", d.Len())
	}
}

func TestDeckStraightensTop(t *testing.T) {
	tilt := func() float64 { return 3 }
	d := buildDeck(newTestSource(3), DefaultConfig(), image.Rect(0, 0, 100, 100), nil, tilt)
	for _, it := range d.Items() {
		want := 3.0
		if it == d.Top() {
			want = 0
		}
		if it.Angle != want {
			t.Fatalf("photo %d: expected angle %v, got %v", it.Index, want, it.Angle)
		}
	}
}
