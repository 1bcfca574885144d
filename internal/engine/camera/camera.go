// Package camera provides the orbit camera shared by rendering and picking.
package camera

import (
	"github.com/Faultbox/meshview/pkg/math"
)

// Default orbit parameters.
const (
	DefaultDistance = 5.0
	MinDistance     = 1.0
	MaxDistance     = 50.0
	MinPitch        = -89.0
	MaxPitch        = 89.0

	// DragSensitivity is degrees of rotation per pixel of mouse drag.
	DragSensitivity = 0.2
	// ZoomStep is the distance change per wheel notch or right-button event.
	ZoomStep = 0.5
	// PanStep is the pan change per key press.
	PanStep = 1.0
)

// Orbit looks at the origin from Distance units away, rotated by Pitch and
// Yaw (degrees) and shifted by a screen-plane pan.
type Orbit struct {
	Pitch    float32 // Rotation about X, clamped to [MinPitch, MaxPitch]
	Yaw      float32 // Rotation about Y
	Distance float32 // Clamped to [MinDistance, MaxDistance]
	PanX     float32
	PanY     float32
}

// NewOrbit creates a camera in its reset position.
func NewOrbit() *Orbit {
	c := &Orbit{}
	c.Reset()
	return c
}

// Reset restores angles, distance and pan to their defaults.
func (c *Orbit) Reset() {
	c.Pitch = 0
	c.Yaw = 0
	c.Distance = DefaultDistance
	c.PanX = 0
	c.PanY = 0
}

// ViewMatrix returns the view transform. The order is fixed:
// translate by -Distance on Z, rotate pitch, rotate yaw, translate by -pan.
func (c *Orbit) ViewMatrix() math.Mat4 {
	return math.Translate(0, 0, -c.Distance).
		Mul(math.RotateX(math.Radians(c.Pitch))).
		Mul(math.RotateY(math.Radians(c.Yaw))).
		Mul(math.Translate(-c.PanX, -c.PanY, 0))
}

// HandleDrag rotates the camera by a mouse drag delta in pixels.
func (c *Orbit) HandleDrag(deltaX, deltaY float32) {
	c.Yaw += deltaX * DragSensitivity
	c.Pitch = clamp(c.Pitch+deltaY*DragSensitivity, MinPitch, MaxPitch)
}

// HandleZoom moves the camera by one zoom step: positive direction zooms in.
func (c *Orbit) HandleZoom(direction int) {
	switch {
	case direction > 0:
		c.Distance -= ZoomStep
	case direction < 0:
		c.Distance += ZoomStep
	}
	c.Distance = clamp(c.Distance, MinDistance, MaxDistance)
}

// Pan shifts the camera in the screen plane.
func (c *Orbit) Pan(dx, dy float32) {
	c.PanX += dx
	c.PanY += dy
}

// FitDistance places the camera twice the model's largest extent away.
func (c *Orbit) FitDistance(maxExtent float32) {
	c.Distance = clamp(maxExtent*2, MinDistance, MaxDistance)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
