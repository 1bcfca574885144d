package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshview/internal/engine/lighting"
	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/pkg/math"
)

type drawCall struct {
	mesh  int
	model math.Mat4
	color RGBA
}

type recordingPainter struct {
	frames     int
	view       math.Mat4
	projection math.Mat4
	lights     *lighting.Bank
	solid      []drawCall
	outline    []drawCall
	ended      bool
}

func (p *recordingPainter) BeginFrame(view, projection math.Mat4, lights *lighting.Bank) {
	p.frames++
	p.view, p.projection, p.lights = view, projection, lights
}

func (p *recordingPainter) DrawSolid(mesh *scene.Mesh, model math.Mat4, color RGBA) {
	p.solid = append(p.solid, drawCall{mesh: mesh.Index, model: model, color: color})
}

func (p *recordingPainter) DrawOutline(mesh *scene.Mesh, model math.Mat4) {
	p.outline = append(p.outline, drawCall{mesh: mesh.Index, model: model})
}

func (p *recordingPainter) EndFrame() { p.ended = true }

func meshes(calls []drawCall) []int {
	out := []int{}
	for _, c := range calls {
		out = append(out, c.mesh)
	}
	return out
}

func testFrame(sc *scene.Scene) Frame {
	return Frame{
		Scene:      sc,
		Store:      NewStateStore(sc.MeshCount()),
		Selection:  NewSelection(sc.MeshCount()),
		Lights:     lighting.NewBank(),
		View:       math.Identity(),
		Projection: DisplayProjection(1),
	}
}

func TestSolidPassDrawsVisibleMeshesInPreOrder(t *testing.T) {
	f := testFrame(threeMeshScene())
	p := &recordingPainter{}
	NewPipeline(p).Render(f)

	assert.Equal(t, 1, p.frames)
	assert.True(t, p.ended)
	assert.Equal(t, []int{0, 1, 2}, meshes(p.solid))
	assert.Empty(t, p.outline)
	for _, c := range p.solid {
		assert.Equal(t, White, c.color)
		assert.Equal(t, math.Identity(), c.model)
	}
}

func TestSolidPassSkipsHiddenMeshes(t *testing.T) {
	f := testFrame(threeMeshScene())
	require.NoError(t, f.Store.SetVisible(1, false))
	p := &recordingPainter{}
	NewPipeline(p).Render(f)

	assert.Equal(t, []int{0, 2}, meshes(p.solid))
}

func TestSolidPassAppliesMeshState(t *testing.T) {
	f := testFrame(threeMeshScene())
	require.NoError(t, f.Store.Move(2, math.Vec3{X: 1, Y: 2, Z: 3}))
	require.NoError(t, f.Store.SetRotation(2, 90))
	require.NoError(t, f.Store.SetColor(2, Blue))
	p := &recordingPainter{}
	NewPipeline(p).Render(f)

	want := math.Translate(1, 2, 3).Mul(math.RotateY(math.Radians(90)))
	assert.Equal(t, want, p.solid[2].model)
	assert.Equal(t, Blue, p.solid[2].color)
}

func TestSolidPassRevisitsSharedMesh(t *testing.T) {
	sc := threeMeshScene()
	sc.Nodes[2].Meshes = []int{2, 1}
	p := &recordingPainter{}
	NewPipeline(p).Render(testFrame(sc))

	assert.Equal(t, []int{0, 1, 2, 1}, meshes(p.solid))
}

func TestOutlinePassNeedsModeAndSelection(t *testing.T) {
	f := testFrame(threeMeshScene())
	require.NoError(t, f.Selection.ClickSelect(1, true, false))

	p := &recordingPainter{}
	NewPipeline(p).Render(f)
	assert.Empty(t, p.outline, "mode off")

	f.Selection.ToggleMode()
	f.Selection.Clear()
	p = &recordingPainter{}
	NewPipeline(p).Render(f)
	assert.Empty(t, p.outline, "empty selection")
}

func TestOutlinePassOnlyDrawsSelectedMeshes(t *testing.T) {
	f := testFrame(threeMeshScene())
	f.Selection.ToggleMode()
	require.NoError(t, f.Selection.ClickSelect(0, true, true))
	require.NoError(t, f.Selection.ClickSelect(2, true, true))
	require.NoError(t, f.Store.SetVisible(2, false))

	p := &recordingPainter{}
	NewPipeline(p).Render(f)

	assert.Equal(t, []int{0, 1}, meshes(p.solid))
	assert.Equal(t, []int{0, 2}, meshes(p.outline), "hidden selected meshes keep their outline")
	for _, c := range p.outline {
		assert.True(t, f.Selection.IsSelected(c.mesh))
	}
}

func TestRenderIgnoresNodeHierarchyForTransforms(t *testing.T) {
	// Every mesh has identity model regardless of nesting depth.
	sc := threeMeshScene()
	sc.Nodes[1].Children = []int{2}
	sc.Nodes[0].Children = []int{1}
	p := &recordingPainter{}
	NewPipeline(p).Render(testFrame(sc))

	for _, c := range p.solid {
		assert.Equal(t, math.Identity(), c.model)
	}
}
