package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/pkg/math"
)

// Interleaved vertex layout: position(3) normal(3) texcoord(2).
const (
	floatsPerVertex = 8
	vertexStride    = floatsPerVertex * 4
)

// gpuMesh holds the buffers for one uploaded mesh.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

func uploadMesh(m *scene.Mesh) *gpuMesh {
	vertices := interleave(m)
	indices := flattenFaces(m.Faces)

	g := &gpuMesh{indexCount: int32(len(indices))}
	if len(vertices) == 0 || len(indices) == 0 {
		return g
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexStride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return g
}

func (g *gpuMesh) draw() {
	if g.vao == 0 {
		return
	}
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (g *gpuMesh) release() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
	}
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}
	*g = gpuMesh{}
}

// interleave packs a mesh into the vertex layout. Missing normals are
// generated from the faces; missing texture coordinates are zero.
func interleave(m *scene.Mesh) []float32 {
	normals := m.Normals
	if !m.HasNormals() {
		normals = vertexNormals(m)
	}

	out := make([]float32, 0, len(m.Positions)*floatsPerVertex)
	for i, p := range m.Positions {
		n := normals[i]
		var uv [2]float32
		if m.HasUVs() {
			uv = m.UVs[i]
		}
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return out
}

// vertexNormals averages the area-weighted normals of the faces around each
// vertex. Vertices used by no face get +Z.
func vertexNormals(m *scene.Mesh) [][3]float32 {
	sums := make([]math.Vec3, len(m.Positions))
	for _, f := range m.Faces {
		a := math.V3(m.Positions[f[0]])
		b := math.V3(m.Positions[f[1]])
		c := math.V3(m.Positions[f[2]])
		n := b.Sub(a).Cross(c.Sub(a))
		for _, v := range f {
			sums[v] = sums[v].Add(n)
		}
	}

	out := make([][3]float32, len(sums))
	for i, s := range sums {
		if s.Length() == 0 {
			out[i] = [3]float32{0, 0, 1}
			continue
		}
		out[i] = s.Normalize().Array()
	}
	return out
}

func flattenFaces(faces [][3]uint32) []uint32 {
	out := make([]uint32, 0, len(faces)*3)
	for _, f := range faces {
		out = append(out, f[0], f[1], f[2])
	}
	return out
}
