package viewer

import (
	"github.com/Faultbox/meshview/internal/engine/lighting"
	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/pkg/math"
)

// Display projection parameters. The near plane differs from the picking
// projection's on purpose.
const (
	FieldOfView = 45.0 // Vertical, degrees
	DisplayNear = 1.0
	DisplayFar  = 100.0
)

// OutlineWidth is the line width of the selection outline.
const OutlineWidth = 2.0

// Painter receives draw calls from the Pipeline.
type Painter interface {
	BeginFrame(view, projection math.Mat4, lights *lighting.Bank)
	// DrawSolid draws a lit mesh in a flat color. Normals and UVs are used
	// when the mesh has them.
	DrawSolid(mesh *scene.Mesh, model math.Mat4, color RGBA)
	// DrawOutline draws a mesh as black wireframe with depth testing on.
	DrawOutline(mesh *scene.Mesh, model math.Mat4)
	EndFrame()
}

// Frame is everything the pipeline reads to draw one frame.
type Frame struct {
	Scene      *scene.Scene
	Store      *StateStore
	Selection  *Selection
	Lights     *lighting.Bank
	View       math.Mat4
	Projection math.Mat4
}

// Pipeline draws a frame in two passes: a solid pass over every visible mesh
// and, in selection mode, an outline pass over the selected meshes.
// Both passes walk the node tree in pre-order. A mesh's transform comes only
// from its own state; node transforms are not inherited.
type Pipeline struct {
	painter Painter
}

// NewPipeline creates a pipeline drawing through p.
func NewPipeline(p Painter) *Pipeline {
	return &Pipeline{painter: p}
}

// Render draws one frame.
func (p *Pipeline) Render(f Frame) {
	p.painter.BeginFrame(f.View, f.Projection, f.Lights)

	f.Scene.Walk(func(_, mesh int) {
		st, err := f.Store.Get(mesh)
		must(err)
		if !st.Visible {
			return
		}
		p.painter.DrawSolid(f.Scene.Mesh(mesh), st.Model(), st.Color)
	})

	if f.Selection.ModeActive && f.Selection.Len() > 0 {
		f.Scene.Walk(func(_, mesh int) {
			if !f.Selection.IsSelected(mesh) {
				return
			}
			st, err := f.Store.Get(mesh)
			must(err)
			p.painter.DrawOutline(f.Scene.Mesh(mesh), st.Model())
		})
	}

	p.painter.EndFrame()
}

// DisplayProjection returns the perspective used for drawing.
func DisplayProjection(aspect float32) math.Mat4 {
	return math.Perspective(math.Radians(FieldOfView), aspect, DisplayNear, DisplayFar)
}
