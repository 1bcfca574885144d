package app

import (
	"time"

	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/viewer"
)

// controller routes translated input events to the viewer.
type controller struct {
	viewer   *viewer.Viewer
	bindings Bindings

	screenshot bool // set by the screenshot command, cleared by the loop
}

// handle dispatches one event and reports whether a redraw is needed.
func (c *controller) handle(ev input.Event, now time.Time) bool {
	switch ev.Type {
	case input.EventWindowResize:
		return c.viewer.Resize(ev.Width, ev.Height)

	case input.EventKeyDown:
		cmd, ok := c.bindings.Lookup(ev.Key)
		if !ok {
			return false
		}
		if cmd == viewer.Screenshot {
			c.screenshot = true
			return true
		}
		return c.viewer.Execute(cmd, now)

	case input.EventMouseDown:
		return c.viewer.MouseDown(mouseButton(ev.Button), ev.MouseX, ev.MouseY, modifiers(ev))

	case input.EventMouseUp:
		return c.viewer.MouseUp(mouseButton(ev.Button), ev.MouseX, ev.MouseY)

	case input.EventMouseMove:
		return c.viewer.MouseMove(ev.MouseX, ev.MouseY)

	case input.EventWheel:
		return c.viewer.Wheel(ev.Wheel)
	}
	return false
}

func mouseButton(b uint8) viewer.MouseButton {
	switch b {
	case input.ButtonLeft:
		return viewer.ButtonLeft
	case input.ButtonMiddle:
		return viewer.ButtonMiddle
	case input.ButtonRight:
		return viewer.ButtonRight
	}
	return 0
}

func modifiers(ev input.Event) viewer.Modifiers {
	var m viewer.Modifiers
	if ev.Shift {
		m |= viewer.ModShift
	}
	if ev.Ctrl {
		m |= viewer.ModCtrl
	}
	if ev.Alt {
		m |= viewer.ModAlt
	}
	return m
}
