package photostack

import (
	"image"
	"slices"
	"strconv"
)

// Deck is the ordered sequence of photo items, back to front.
// The last item is the top one, the only one the user interacts with.
type Deck struct {
	items []*PhotoItem
}

// Len returns the number of items.
func (d *Deck) Len() int {
	return len(d.items)
}

// Items returns the items in draw order. The slice must not be modified.
func (d *Deck) Items() []*PhotoItem {
	return d.items
}

// Top returns the top item, or nil if the deck is empty.
func (d *Deck) Top() *PhotoItem {
	if len(d.items) == 0 {
		return nil
	}
	return d.items[len(d.items)-1]
}

// below returns the item right under the top one. With a single item it
// returns the top item.
func (d *Deck) below() *PhotoItem {
	if len(d.items) < 2 {
		return d.Top()
	}
	return d.items[len(d.items)-2]
}

// IndexOfTop returns the index of the top item, 0 if the deck is empty.
func (d *Deck) IndexOfTop() int {
	if top := d.Top(); top != nil {
		return top.Index
	}
	return 0
}

// SendToBottom moves it to the back of the draw order so that the item under
// it becomes the top. Items not in the deck are ignored.
func (d *Deck) SendToBottom(it *PhotoItem) {
	i := slices.Index(d.items, it)
	if i < 0 {
		return
	}
	copy(d.items[1:i+1], d.items[:i])
	d.items[0] = it
}

// ByIndex returns the items ordered by their index.
func (d *Deck) ByIndex() []*PhotoItem {
	items := slices.Clone(d.items)
	slices.SortFunc(items, func(a, b *PhotoItem) int {
		return a.Index - b.Index
	})
	return items
}

// find returns the item with id.
func (d *Deck) find(id string) *PhotoItem {
	i := slices.IndexFunc(d.items, func(it *PhotoItem) bool {
		return it.ID == id
	})
	if i < 0 {
		return nil
	}
	return d.items[i]
}

// goTo reorders the deck so that the item with index is on top and the
// following indices are stacked under it, wrapping around.
func (d *Deck) goTo(index int) {
	byIndex := d.ByIndex()
	n := len(byIndex)
	if n == 0 {
		return
	}
	if index < 0 || index >= n {
		index = 0
	}
	for p := n - 1; p >= 0; p-- {
		d.items[n-1-p] = byIndex[(index+p)%n]
	}
}

// buildDeck creates the items for all the photos of src, centered on bounds.
// Photos that existed in prev keep their tilt, the others get one from tilt.
// The photo on top of prev stays on top if it still exists.
func buildDeck(src DataSource, cfg Config, bounds image.Rectangle, prev *Deck, tilt func() float64) *Deck {
	d := new(Deck)
	if src == nil {
		return d
	}
	if prev == nil {
		prev = new(Deck)
	}

	sizer, _ := src.(PhotoSizer)
	identifier, _ := src.(PhotoIdentifier)
	bw := cfg.borderWidth()
	center := midpoint(bounds)

	n := src.NumberOfPhotos()
	d.items = make([]*PhotoItem, 0, n)
	topIndex := 0
	for i := 0; i < n; i++ {
		img := src.ImageAt(i)
		it := &PhotoItem{
			ID:        strconv.Itoa(i),
			Index:     i,
			Image:     img,
			PhotoSize: img.Bounds().Size(),
			Center:    center,
		}
		if identifier != nil {
			it.ID = identifier.PhotoID(i)
		}
		if sizer != nil {
			it.PhotoSize = sizer.SizeAt(i)
		}

		it.Size = it.PhotoSize
		if bw > 0 {
			if cfg.BorderImage != nil {
				it.Inset = bw
				it.Size = it.PhotoSize.Add(image.Pt(2*bw, 2*bw))
			} else {
				it.Outline = bw
			}
		}

		if old := prev.find(it.ID); old != nil {
			it.Angle = old.Angle
			if old == prev.Top() {
				topIndex = i
			}
		} else {
			it.Angle = tilt()
		}
		d.items = append(d.items, it)
	}

	d.goTo(topIndex)
	if top := d.Top(); top != nil {
		top.Angle = 0
	}
	return d
}
