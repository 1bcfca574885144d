// Package scene holds the imported mesh hierarchy as an arena of nodes and
// meshes addressed by stable integer indices.
package scene

import (
	"errors"
	"fmt"
)

// Scene graph errors.
var (
	ErrEmptyScene      = errors.New("scene has no meshes")
	ErrIncompleteScene = errors.New("scene is incomplete")
)

// Mesh is immutable geometry produced by the importer.
// Faces are always triangles.
type Mesh struct {
	Index     int
	Name      string
	Positions [][3]float32
	Normals   [][3]float32 // nil when the source had none
	UVs       [][2]float32 // nil when the source had none
	Faces     [][3]uint32
}

// HasNormals reports whether every vertex carries a normal.
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) == len(m.Positions) && len(m.Normals) > 0
}

// HasUVs reports whether every vertex carries a texture coordinate.
func (m *Mesh) HasUVs() bool {
	return len(m.UVs) == len(m.Positions) && len(m.UVs) > 0
}

// Node references meshes and child nodes by index.
type Node struct {
	Name     string
	Meshes   []int
	Children []int
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// MaxExtent returns the largest side of the box.
func (b Bounds) MaxExtent() float32 {
	ext := b.Max[0] - b.Min[0]
	for i := 1; i < 3; i++ {
		if d := b.Max[i] - b.Min[i]; d > ext {
			ext = d
		}
	}
	return ext
}

// Scene is a tree of nodes with a single root plus the meshes they reference.
type Scene struct {
	Name   string
	Nodes  []Node
	Meshes []Mesh
	Root   int
}

// MeshCount returns the number of meshes. Mesh indices are 0..MeshCount()-1.
func (s *Scene) MeshCount() int {
	if s == nil {
		return 0
	}
	return len(s.Meshes)
}

// Mesh returns the mesh with the given index.
func (s *Scene) Mesh(i int) *Mesh {
	return &s.Meshes[i]
}

// Validate checks that the root exists, every reference is in range and the
// node graph is a tree.
func (s *Scene) Validate() error {
	if s.Root < 0 || s.Root >= len(s.Nodes) {
		return fmt.Errorf("%w: missing root node", ErrIncompleteScene)
	}
	for i := range s.Meshes {
		m := &s.Meshes[i]
		if m.Index != i {
			return fmt.Errorf("%w: mesh %d carries index %d", ErrIncompleteScene, i, m.Index)
		}
		for f, face := range m.Faces {
			for _, v := range face {
				if int(v) >= len(m.Positions) {
					return fmt.Errorf("%w: mesh %d face %d references vertex %d", ErrIncompleteScene, i, f, v)
				}
			}
		}
	}

	seen := make([]bool, len(s.Nodes))
	stack := []int{s.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			return fmt.Errorf("%w: node %d reached twice", ErrIncompleteScene, n)
		}
		seen[n] = true
		for _, m := range s.Nodes[n].Meshes {
			if m < 0 || m >= len(s.Meshes) {
				return fmt.Errorf("%w: node %q references mesh %d", ErrIncompleteScene, s.Nodes[n].Name, m)
			}
		}
		for _, c := range s.Nodes[n].Children {
			if c < 0 || c >= len(s.Nodes) {
				return fmt.Errorf("%w: node %q references child %d", ErrIncompleteScene, s.Nodes[n].Name, c)
			}
			stack = append(stack, c)
		}
	}
	return nil
}

// Walk visits every mesh reference depth-first from the root: a node's meshes
// in order, then its children in order. A mesh referenced by several nodes is
// visited once per reference.
func (s *Scene) Walk(fn func(node, mesh int)) {
	if s == nil || s.Root < 0 || s.Root >= len(s.Nodes) {
		return
	}
	stack := []int{s.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := &s.Nodes[n]
		for _, m := range node.Meshes {
			fn(n, m)
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
}

// Bounds returns the bounding box of all mesh positions (untransformed).
// ok is false when the scene has no vertices.
func (s *Scene) Bounds() (b Bounds, ok bool) {
	b = Bounds{
		Min: [3]float32{1e30, 1e30, 1e30},
		Max: [3]float32{-1e30, -1e30, -1e30},
	}
	for i := range s.Meshes {
		for _, p := range s.Meshes[i].Positions {
			ok = true
			for a := 0; a < 3; a++ {
				if p[a] < b.Min[a] {
					b.Min[a] = p[a]
				}
				if p[a] > b.Max[a] {
					b.Max[a] = p[a]
				}
			}
		}
	}
	if !ok {
		return Bounds{}, false
	}
	return b, true
}

// TriangleCount returns the number of triangles across all meshes.
func (s *Scene) TriangleCount() int {
	n := 0
	for i := range s.Meshes {
		n += len(s.Meshes[i].Faces)
	}
	return n
}
