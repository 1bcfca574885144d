package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/formats"
)

// Import loads a scene from disk. The geometry is triangulated, texture
// coordinates are flipped vertically and identical vertices are merged.
func Import(path string) (*Scene, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".obj" {
		return nil, fmt.Errorf("importing %s: unsupported format %q", path, ext)
	}

	obj, err := formats.ParseOBJFile(path)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", path, err)
	}

	s, err := FromOBJ(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), obj)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", path, err)
	}

	logger.Info("scene imported",
		zap.String("path", path),
		zap.Int("meshes", s.MeshCount()),
		zap.Int("triangles", s.TriangleCount()),
	)
	return s, nil
}

// FromOBJ builds a scene from parsed OBJ data: a root node with one child
// node per group, each child owning one mesh.
func FromOBJ(name string, obj *formats.OBJ) (*Scene, error) {
	s := &Scene{
		Name:  name,
		Nodes: []Node{{Name: name}},
		Root:  0,
	}

	for g := range obj.Groups {
		group := &obj.Groups[g]
		mesh := buildMesh(obj, group)
		if len(mesh.Faces) == 0 {
			continue
		}
		mesh.Index = len(s.Meshes)
		s.Meshes = append(s.Meshes, mesh)

		s.Nodes = append(s.Nodes, Node{Name: group.Name, Meshes: []int{mesh.Index}})
		s.Nodes[s.Root].Children = append(s.Nodes[s.Root].Children, len(s.Nodes)-1)
	}

	if len(s.Meshes) == 0 {
		return nil, ErrEmptyScene
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// vertexKey identifies a unique vertex by its attribute values.
type vertexKey struct {
	pos    [3]float32
	uv     [2]float32
	normal [3]float32
}

func buildMesh(obj *formats.OBJ, group *formats.OBJGroup) Mesh {
	hasNormals, hasUVs := true, true
	for _, f := range group.Faces {
		for _, c := range f.Corners {
			if c.Normal < 0 {
				hasNormals = false
			}
			if c.TexCoord < 0 {
				hasUVs = false
			}
		}
	}

	mesh := Mesh{Name: group.Name}
	lookup := make(map[vertexKey]uint32)

	vertex := func(c formats.OBJCorner) uint32 {
		key := vertexKey{pos: obj.Positions[c.Position]}
		if hasUVs {
			uv := obj.TexCoords[c.TexCoord]
			key.uv = [2]float32{uv[0], 1 - uv[1]}
		}
		if hasNormals {
			key.normal = obj.Normals[c.Normal]
		}
		if idx, ok := lookup[key]; ok {
			return idx
		}

		idx := uint32(len(mesh.Positions))
		mesh.Positions = append(mesh.Positions, key.pos)
		if hasUVs {
			mesh.UVs = append(mesh.UVs, key.uv)
		}
		if hasNormals {
			mesh.Normals = append(mesh.Normals, key.normal)
		}
		lookup[key] = idx
		return idx
	}

	// Fan triangulation around the first corner.
	for _, f := range group.Faces {
		first := vertex(f.Corners[0])
		for i := 1; i+1 < len(f.Corners); i++ {
			mesh.Faces = append(mesh.Faces, [3]uint32{
				first,
				vertex(f.Corners[i]),
				vertex(f.Corners[i+1]),
			})
		}
	}
	return mesh
}
