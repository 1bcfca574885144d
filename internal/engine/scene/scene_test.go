package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tri returns a one-triangle mesh with the given index.
func tri(index int) Mesh {
	return Mesh{
		Index:     index,
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Faces:     [][3]uint32{{0, 1, 2}},
	}
}

func testScene() *Scene {
	// root(0) -> [a(1) -> [c(3)], b(2)]
	return &Scene{
		Nodes: []Node{
			{Name: "root", Meshes: []int{0}, Children: []int{1, 2}},
			{Name: "a", Meshes: []int{1}, Children: []int{3}},
			{Name: "b", Meshes: []int{2, 1}},
			{Name: "c", Meshes: []int{3}},
		},
		Meshes: []Mesh{tri(0), tri(1), tri(2), tri(3)},
		Root:   0,
	}
}

func TestWalkPreOrder(t *testing.T) {
	s := testScene()

	var meshes, nodes []int
	s.Walk(func(node, mesh int) {
		nodes = append(nodes, node)
		meshes = append(meshes, mesh)
	})

	assert.Equal(t, []int{0, 1, 3, 2, 1}, meshes, "node meshes come before children, shared meshes repeat")
	assert.Equal(t, []int{0, 1, 3, 2, 2}, nodes)
}

func TestWalkNilScene(t *testing.T) {
	var s *Scene
	called := false
	s.Walk(func(int, int) { called = true })
	assert.False(t, called)
	assert.Equal(t, 0, s.MeshCount())
}

func TestValidate(t *testing.T) {
	require.NoError(t, testScene().Validate())

	tests := []struct {
		name   string
		mutate func(*Scene)
	}{
		{"missing root", func(s *Scene) { s.Root = 9 }},
		{"mesh out of range", func(s *Scene) { s.Nodes[2].Meshes = []int{7} }},
		{"child out of range", func(s *Scene) { s.Nodes[3].Children = []int{12} }},
		{"cycle", func(s *Scene) { s.Nodes[3].Children = []int{1} }},
		{"face out of range", func(s *Scene) { s.Meshes[1].Faces[0][2] = 5 }},
		{"wrong index", func(s *Scene) { s.Meshes[2].Index = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testScene()
			tt.mutate(s)
			assert.ErrorIs(t, s.Validate(), ErrIncompleteScene)
		})
	}
}

func TestBounds(t *testing.T) {
	s := testScene()
	s.Meshes[2].Positions = append(s.Meshes[2].Positions, [3]float32{-2, 4, 3})

	b, ok := s.Bounds()
	require.True(t, ok)
	assert.Equal(t, [3]float32{-2, 0, 0}, b.Min)
	assert.Equal(t, [3]float32{1, 4, 3}, b.Max)
	assert.Equal(t, float32(4), b.MaxExtent())

	_, ok = (&Scene{}).Bounds()
	assert.False(t, ok)
}

func TestMeshAttributes(t *testing.T) {
	m := tri(0)
	assert.False(t, m.HasNormals())
	assert.False(t, m.HasUVs())

	m.Normals = [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	m.UVs = [][2]float32{{0, 0}, {1, 0}}
	assert.True(t, m.HasNormals())
	assert.False(t, m.HasUVs(), "partial UVs do not count")
}
