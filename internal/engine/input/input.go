// Package input translates SDL2 events into viewer input events.
package input

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventWheel
)

// Mouse buttons, matching sdl.BUTTON_*.
const (
	ButtonLeft   = sdl.BUTTON_LEFT
	ButtonMiddle = sdl.BUTTON_MIDDLE
	ButtonRight  = sdl.BUTTON_RIGHT
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Keycode
	Shift  bool
	Ctrl   bool
	Alt    bool
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	Wheel  int // +1 away from the user, -1 towards
}

// Input collects the events of one loop iteration.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them. Returns true when the window
// was asked to close.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		ev, ok := Translate(event)
		if !ok {
			continue
		}
		i.events = append(i.events, ev)
		if ev.Type == EventQuit {
			quit = true
		}
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Translate converts one SDL event. Events the viewer does not use report
// false.
func Translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			ev := Event{Type: EventKeyDown, Key: e.Keysym.Sym}
			setMods(&ev, sdl.GetModState())
			return ev, true
		}

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
		}, true

	case *sdl.MouseButtonEvent:
		ev := Event{
			MouseX: int(e.X),
			MouseY: int(e.Y),
			Button: e.Button,
		}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			ev.Type = EventMouseDown
		} else {
			ev.Type = EventMouseUp
		}
		setMods(&ev, sdl.GetModState())
		return ev, true

	case *sdl.MouseWheelEvent:
		switch {
		case e.Y > 0:
			return Event{Type: EventWheel, Wheel: 1}, true
		case e.Y < 0:
			return Event{Type: EventWheel, Wheel: -1}, true
		}
	}
	return Event{}, false
}

func setMods(ev *Event, mod sdl.Keymod) {
	ev.Shift = mod&sdl.KMOD_SHIFT != 0
	ev.Ctrl = mod&sdl.KMOD_CTRL != 0
	ev.Alt = mod&sdl.KMOD_ALT != 0
}

// ParseKey resolves an SDL key name such as "W", "Space" or "F1".
func ParseKey(name string) (sdl.Keycode, error) {
	code := sdl.GetKeyFromName(name)
	if code == sdl.K_UNKNOWN {
		return code, fmt.Errorf("unknown key %q", name)
	}
	return code, nil
}
