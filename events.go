package photostack

import (
	"fmt"
	"strings"
)

// ControlEvent is a set of control events a host can subscribe to.
type ControlEvent uint

const (
	// TouchDown is sent when the top photo is pressed.
	TouchDown ControlEvent = 1 << iota
	// TouchCancel is sent when a press turns into a drag.
	TouchCancel
	// TouchDragInside is sent for every pointer move while pressed.
	TouchDragInside
	// TouchUpInside is sent when the top photo is tapped.
	TouchUpInside

	AllTouchEvents = TouchDown | TouchCancel | TouchDragInside | TouchUpInside
)

var eventNames = []struct {
	ev   ControlEvent
	name string
}{
	{TouchDown, "TouchDown"},
	{TouchCancel, "TouchCancel"},
	{TouchDragInside, "TouchDragInside"},
	{TouchUpInside, "TouchUpInside"},
}

func (e ControlEvent) String() string {
	var names []string
	for _, n := range eventNames {
		if e&n.ev != 0 {
			names = append(names, n.name)
			e &^= n.ev
		}
	}
	if e != 0 {
		names = append(names, fmt.Sprintf("ControlEvent(%#x)", uint(e)))
	}
	if len(names) == 0 {
		return "0"
	}
	return strings.Join(names, "|")
}

type target struct {
	id     int
	events ControlEvent
	fn     func(ControlEvent)
}

// targets are the subscribers to control events.
type targets struct {
	list   []target
	nextID int
}

// add subscribes fn to events and returns a function that unsubscribes it.
func (t *targets) add(events ControlEvent, fn func(ControlEvent)) func() {
	id := t.nextID
	t.nextID++
	t.list = append(t.list, target{id, events, fn})
	return func() {
		for i := range t.list {
			if t.list[i].id == id {
				t.list = append(t.list[:i], t.list[i+1:]...)
				return
			}
		}
	}
}

func (t *targets) send(e ControlEvent) {
	for _, tg := range t.list {
		if tg.events&e != 0 {
			tg.fn(e)
		}
	}
}
