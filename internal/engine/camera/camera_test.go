package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/meshview/pkg/math"
)

func TestNewOrbitDefaults(t *testing.T) {
	c := NewOrbit()
	assert.Equal(t, &Orbit{Distance: DefaultDistance}, c)
}

func TestZoomClamps(t *testing.T) {
	c := NewOrbit()
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
		assert.GreaterOrEqual(t, c.Distance, float32(MinDistance))
	}
	assert.Equal(t, float32(MinDistance), c.Distance)

	for i := 0; i < 200; i++ {
		c.HandleZoom(-1)
		assert.LessOrEqual(t, c.Distance, float32(MaxDistance))
	}
	assert.Equal(t, float32(MaxDistance), c.Distance)

	c.HandleZoom(0)
	assert.Equal(t, float32(MaxDistance), c.Distance)
}

func TestDragClampsPitch(t *testing.T) {
	c := NewOrbit()
	c.HandleDrag(10, 1000)
	assert.Equal(t, float32(MaxPitch), c.Pitch)
	assert.InDelta(t, 2.0, c.Yaw, 1e-5)

	c.HandleDrag(0, -5000)
	assert.Equal(t, float32(MinPitch), c.Pitch)
}

func TestResetAfterChanges(t *testing.T) {
	c := NewOrbit()
	c.HandleDrag(30, 40)
	c.HandleZoom(1)
	c.Pan(2, -3)
	c.Reset()
	assert.Equal(t, NewOrbit(), c)
}

func TestFitDistance(t *testing.T) {
	c := NewOrbit()
	c.FitDistance(3)
	assert.Equal(t, float32(6), c.Distance)

	c.FitDistance(400)
	assert.Equal(t, float32(MaxDistance), c.Distance)

	c.FitDistance(0)
	assert.Equal(t, float32(MinDistance), c.Distance)
}

func TestViewMatrixOrder(t *testing.T) {
	c := NewOrbit()

	// Origin sits Distance units in front of the eye.
	p := c.ViewMatrix().MulVec4(math.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -DefaultDistance, p[2], 1e-5)

	// Pan is applied before the rotations: panning to (1, 0) puts the
	// world point (1, 0, 0) on the view axis even with yaw applied.
	c.Pan(1, 0)
	c.Yaw = 90
	p = c.ViewMatrix().MulVec4(math.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 0, p[0], 1e-5)
	assert.InDelta(t, 0, p[1], 1e-5)
	assert.InDelta(t, -DefaultDistance, p[2], 1e-5)

	// Yaw rotates about the vertical axis before the distance offset.
	c = NewOrbit()
	c.Yaw = 90
	p = c.ViewMatrix().MulVec4(math.Vec4{1, 0, 0, 1})
	want := math.RotateY(math.Radians(90)).MulVec4(math.Vec4{1, 0, 0, 1})
	assert.InDelta(t, want[0], p[0], 1e-5)
	assert.InDelta(t, want[2]-DefaultDistance, p[2], 1e-5)
}
