// Wavefront OBJ format parser for polygon geometry.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrInvalidOBJLine     = errors.New("invalid OBJ line")
	ErrOBJIndexOutOfRange = errors.New("OBJ index out of range")
	ErrDegenerateOBJFace  = errors.New("OBJ face has fewer than 3 corners")
)

// DefaultOBJGroup names faces that appear before any "o" or "g" statement.
const DefaultOBJGroup = "default"

// OBJCorner references the attributes of one polygon corner.
// Indices are 0-based; -1 marks an absent attribute.
type OBJCorner struct {
	Position int
	TexCoord int
	Normal   int
}

// OBJFace is a polygon with three or more corners.
type OBJFace struct {
	Corners []OBJCorner
}

// OBJGroup is a named run of faces ("o" or "g" statement).
type OBJGroup struct {
	Name  string
	Faces []OBJFace
}

// OBJ holds the parsed contents of a Wavefront OBJ file.
type OBJ struct {
	Positions [][3]float32
	Normals   [][3]float32
	TexCoords [][2]float32
	Groups    []OBJGroup
}

// FaceCount returns the number of polygons across all groups.
func (o *OBJ) FaceCount() int {
	n := 0
	for i := range o.Groups {
		n += len(o.Groups[i].Faces)
	}
	return n
}

// ParseOBJ parses OBJ data from a byte slice.
func ParseOBJ(data []byte) (*OBJ, error) {
	return ReadOBJ(bytes.NewReader(data))
}

// ReadOBJ parses OBJ data from a reader.
func ReadOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}
	current := -1

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v", "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidOBJLine, lineNo, err)
			}
			p := [3]float32{v[0], v[1], v[2]}
			if fields[0] == "v" {
				obj.Positions = append(obj.Positions, p)
			} else {
				obj.Normals = append(obj.Normals, p)
			}

		case "vt":
			v, err := parseFloats(fields[1:], 1)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidOBJLine, lineNo, err)
			}
			uv := [2]float32{v[0]}
			if len(v) > 1 {
				uv[1] = v[1]
			}
			obj.TexCoords = append(obj.TexCoords, uv)

		case "o", "g":
			name := DefaultOBJGroup
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}
			// An empty group is renamed rather than kept as an empty mesh.
			if current >= 0 && len(obj.Groups[current].Faces) == 0 {
				obj.Groups[current].Name = name
				continue
			}
			obj.Groups = append(obj.Groups, OBJGroup{Name: name})
			current = len(obj.Groups) - 1

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d", ErrDegenerateOBJFace, lineNo)
			}
			face := OBJFace{Corners: make([]OBJCorner, 0, len(fields)-1)}
			for _, f := range fields[1:] {
				c, err := obj.parseCorner(f)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				face.Corners = append(face.Corners, c)
			}
			if current < 0 {
				obj.Groups = append(obj.Groups, OBJGroup{Name: DefaultOBJGroup})
				current = 0
			}
			obj.Groups[current].Faces = append(obj.Groups[current].Faces, face)

		default:
			// mtllib, usemtl, s, l and p carry nothing the viewer uses
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ data: %w", err)
	}

	// Drop a trailing empty group
	if current >= 0 && len(obj.Groups[current].Faces) == 0 {
		obj.Groups = obj.Groups[:current]
	}

	return obj, nil
}

// ParseOBJFile reads and parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	defer f.Close()
	return ReadOBJ(f)
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn".
func (o *OBJ) parseCorner(s string) (OBJCorner, error) {
	c := OBJCorner{Position: -1, TexCoord: -1, Normal: -1}
	parts := strings.Split(s, "/")
	if len(parts) > 3 || parts[0] == "" {
		return c, fmt.Errorf("%w: corner %q", ErrInvalidOBJLine, s)
	}

	var err error
	if c.Position, err = resolveIndex(parts[0], len(o.Positions)); err != nil {
		return c, fmt.Errorf("position of %q: %w", s, err)
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.TexCoord, err = resolveIndex(parts[1], len(o.TexCoords)); err != nil {
			return c, fmt.Errorf("texcoord of %q: %w", s, err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.Normal, err = resolveIndex(parts[2], len(o.Normals)); err != nil {
			return c, fmt.Errorf("normal of %q: %w", s, err)
		}
	}
	return c, nil
}

// resolveIndex converts a 1-based (or negative, relative) OBJ index to 0-based.
func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1, fmt.Errorf("%w: %q", ErrInvalidOBJLine, s)
	}
	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return -1, fmt.Errorf("%w: %d of %d", ErrOBJIndexOutOfRange, n, count)
	}
	return idx, nil
}

func parseFloats(fields []string, want int) ([]float32, error) {
	if len(fields) < want {
		return nil, fmt.Errorf("expected %d values, got %d", want, len(fields))
	}
	out := make([]float32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, err
		}
		out = append(out, float32(v))
	}
	return out, nil
}
