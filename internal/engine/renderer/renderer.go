// Package renderer draws the viewer's scene with OpenGL 4.1 core.
//
// Renderer implements viewer.Painter: lit solid meshes in a flat color and
// black wireframe outlines. It also provides a GPU picking backend that
// renders mesh IDs into a small off-screen target.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/lighting"
	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/internal/engine/shader"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/internal/viewer"
	"github.com/Faultbox/meshview/pkg/math"
)

// ClearColor is the background color.
var ClearColor = [4]float32{0.1, 0.1, 0.15, 1.0}

type passMode int

const (
	passNone passMode = iota
	passSolid
	passOutline
)

// Renderer handles all OpenGL rendering.
type Renderer struct {
	width, height int

	solid *shader.Program
	flat  *shader.Program

	meshes []*gpuMesh

	mode       passMode
	view       math.Mat4
	projection math.Mat4
	lights     *lighting.Bank
}

// New creates a new renderer.
// It must be called after the OpenGL context is created.
func New(width, height int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])

	r := &Renderer{}

	var err error
	r.solid, err = shader.Compile(solidVertexShader, solidFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("solid shader: %w", err)
	}
	r.flat, err = shader.Compile(flatVertexShader, flatFragmentShader)
	if err != nil {
		r.solid.Delete()
		return nil, fmt.Errorf("flat shader: %w", err)
	}

	r.Resize(width, height)
	return r, nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.releaseMeshes()
	r.solid.Delete()
	r.flat.Delete()
}

// Resize sets the GL viewport. A zero-sized window is ignored.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Upload replaces the GPU copies of the scene's meshes.
func (r *Renderer) Upload(sc *scene.Scene) {
	r.releaseMeshes()
	r.meshes = make([]*gpuMesh, sc.MeshCount())
	for i := range sc.Meshes {
		r.meshes[i] = uploadMesh(&sc.Meshes[i])
	}
	logger.Debug("meshes uploaded",
		zap.Int("meshes", len(r.meshes)),
		zap.Int("triangles", sc.TriangleCount()),
	)
}

func (r *Renderer) releaseMeshes() {
	for _, m := range r.meshes {
		m.release()
	}
	r.meshes = nil
}

func (r *Renderer) mesh(i int) (*gpuMesh, error) {
	if i < 0 || i >= len(r.meshes) {
		return nil, fmt.Errorf("mesh %d not uploaded (have %d)", i, len(r.meshes))
	}
	return r.meshes[i], nil
}

// BeginFrame clears the screen and loads camera and light uniforms.
func (r *Renderer) BeginFrame(view, projection math.Mat4, lights *lighting.Bank) {
	r.view, r.projection, r.lights = view, projection, lights
	r.mode = passNone

	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
}

// DrawSolid draws a lit mesh.
func (r *Renderer) DrawSolid(m *scene.Mesh, model math.Mat4, color viewer.RGBA) {
	g, err := r.mesh(m.Index)
	if err != nil {
		logger.Warn("draw solid", zap.Error(err))
		return
	}
	if r.mode != passSolid {
		r.beginSolid()
	}
	r.solid.SetMat4("uModel", model)
	r.solid.SetVec4("uColor", color)
	g.draw()
}

func (r *Renderer) beginSolid() {
	r.mode = passSolid
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	r.solid.Use()
	r.solid.SetMat4("uView", r.view)
	r.solid.SetMat4("uProjection", r.projection)
	r.solid.SetVec3Array("uLightDir", r.lights.GetDirections())
	r.solid.SetVec3Array("uLightDiffuse", r.lights.GetDiffuse())
	r.solid.SetVec3Array("uLightSpecular", r.lights.GetSpecular())
	r.solid.SetIntArray("uLightEnabled", r.lights.GetEnabled())
}

// DrawOutline draws a mesh as black wireframe.
func (r *Renderer) DrawOutline(m *scene.Mesh, model math.Mat4) {
	g, err := r.mesh(m.Index)
	if err != nil {
		logger.Warn("draw outline", zap.Error(err))
		return
	}
	if r.mode != passOutline {
		r.beginOutline()
	}
	r.flat.SetMat4("uModel", model)
	g.draw()
}

func (r *Renderer) beginOutline() {
	r.mode = passOutline
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	gl.LineWidth(viewer.OutlineWidth)
	r.flat.Use()
	r.flat.SetMat4("uView", r.view)
	r.flat.SetMat4("uProjection", r.projection)
	r.flat.SetVec4("uColor", viewer.Black)
}

// EndFrame restores fill mode.
func (r *Renderer) EndFrame() {
	if r.mode == passOutline {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		gl.LineWidth(1)
	}
	gl.UseProgram(0)
	r.mode = passNone
}

// ReadScreen reads the default framebuffer as RGBA bytes, bottom row first.
func (r *Renderer) ReadScreen() (pixels []byte, width, height int) {
	pixels = make([]byte, r.width*r.height*4)
	if len(pixels) == 0 {
		return pixels, r.width, r.height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(r.width), int32(r.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, r.width, r.height
}
