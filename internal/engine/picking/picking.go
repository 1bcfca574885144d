// Package picking maps a clicked pixel to the identity of the mesh under it.
//
// A narrow frustum is built around the click with the same perspective and
// camera transform as the main view. Every target is tested against it and
// the backend reports the identities that intersect, in the order the
// targets were submitted. The last reported identity wins, matching the
// classic OpenGL name-stack convention where the final hit record belongs to
// the last mesh tested. Callers submit targets by ascending mesh index, so
// overlapping meshes resolve to the highest index.
package picking

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/math"
)

// Picking projection parameters. The near plane is intentionally closer than
// the display projection's.
const (
	FieldOfView = 45.0 // Vertical, degrees
	Near        = 0.1
	Far         = 100.0
	DefaultSize = 5 // Side of the pick box in pixels
)

// Viewport is the window size in pixels.
type Viewport struct {
	Width, Height int
}

// Aspect returns width/height, or 1 when the height is zero.
func (v Viewport) Aspect() float32 {
	if v.Height == 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// Empty reports whether the viewport has no pixels.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Region is a Size x Size pixel box centred on (X, Y).
// X and Y are window coordinates with the origin at the top-left.
type Region struct {
	X, Y int
	Size int
}

// Target is one mesh submitted for hit testing. Only positions matter.
type Target struct {
	ID        int
	Model     math.Mat4
	Positions [][3]float32
	Faces     [][3]uint32
}

// Backend hit-tests targets against the pick frustum. It returns the IDs of
// intersecting targets in the order the targets were given.
type Backend interface {
	HitTest(region Region, viewport Viewport, view, projection math.Mat4, targets []Target) ([]int, error)
}

// ViewSource supplies the camera transform shared with the renderer.
type ViewSource interface {
	ViewMatrix() math.Mat4
}

// Projection returns the pick projection for a region: the pick matrix
// applied in front of a 45 degree perspective with near 0.1 and far 100.
func Projection(region Region, viewport Viewport) math.Mat4 {
	// GL window space has its origin at the bottom-left.
	glY := float32(viewport.Height - region.Y)
	pick := math.PickMatrix(
		float32(region.X), glY,
		float32(region.Size), float32(region.Size),
		float32(viewport.Width), float32(viewport.Height),
	)
	return pick.Mul(math.Perspective(math.Radians(FieldOfView), viewport.Aspect(), Near, Far))
}

// Engine resolves clicks through a Backend.
type Engine struct {
	backend Backend
	size    int
}

// NewEngine creates an engine with a size x size pick box.
func NewEngine(backend Backend, size int) *Engine {
	if size <= 0 {
		size = DefaultSize
	}
	return &Engine{backend: backend, size: size}
}

// SetBackend swaps the hit-test implementation.
func (e *Engine) SetBackend(b Backend) {
	e.backend = b
}

// Pick returns the ID of the mesh under (x, y), or hit=false when nothing is
// there. The last intersecting entry of targets wins.
func (e *Engine) Pick(x, y int, viewport Viewport, cam ViewSource, targets []Target) (id int, hit bool, err error) {
	if len(targets) == 0 || viewport.Empty() {
		return -1, false, nil
	}

	region := Region{X: x, Y: y, Size: e.size}
	hits, err := e.backend.HitTest(region, viewport, cam.ViewMatrix(), Projection(region, viewport), targets)
	if err != nil {
		return -1, false, fmt.Errorf("hit test at (%d, %d): %w", x, y, err)
	}

	logger.Debug("pick",
		zap.Int("x", x),
		zap.Int("y", y),
		zap.Ints("hits", hits),
	)

	if len(hits) == 0 {
		return -1, false, nil
	}
	return hits[len(hits)-1], true, nil
}
