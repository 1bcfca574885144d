package renderer

import (
	"fmt"
	"sort"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meshview/internal/engine/framebuffer"
	"github.com/Faultbox/meshview/internal/engine/picking"
	"github.com/Faultbox/meshview/pkg/math"
)

// maxPickTargets is the number of targets a 24-bit color can identify
// (zero is the background).
const maxPickTargets = 1<<24 - 1

// PickBackend hit-tests on the GPU. Each target is drawn in a color that
// encodes its draw position into a size x size framebuffer covering the
// pick region. Depth testing is off, so where targets overlap the one drawn
// last survives; the highest surviving draw position is therefore the last
// target that intersects the region.
type PickBackend struct {
	r  *Renderer
	fb *framebuffer.Framebuffer
}

// NewPickBackend creates the off-screen target for a size x size pick box.
func (r *Renderer) NewPickBackend(size int) (*PickBackend, error) {
	fb, err := framebuffer.New(int32(size), int32(size))
	if err != nil {
		return nil, fmt.Errorf("pick target: %w", err)
	}
	return &PickBackend{r: r, fb: fb}, nil
}

// Close releases the framebuffer.
func (b *PickBackend) Close() {
	b.fb.Destroy()
}

// HitTest implements picking.Backend.
func (b *PickBackend) HitTest(region picking.Region, _ picking.Viewport, view, projection math.Mat4, targets []picking.Target) ([]int, error) {
	if len(targets) > maxPickTargets {
		return nil, fmt.Errorf("%d pick targets exceeds %d", len(targets), maxPickTargets)
	}
	b.fb.Resize(int32(region.Size), int32(region.Size))

	restore := b.fb.BindWithViewport()
	defer restore()

	b.fb.Clear(0, 0, 0, 0)
	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	b.r.flat.Use()
	b.r.flat.SetMat4("uView", view)
	b.r.flat.SetMat4("uProjection", projection)
	for i, t := range targets {
		g, err := b.r.mesh(t.ID)
		if err != nil {
			return nil, err
		}
		b.r.flat.SetMat4("uModel", t.Model)
		b.r.flat.SetVec4("uColor", encodeID(i))
		g.draw()
	}
	gl.UseProgram(0)

	order := collectHits(b.fb.ReadPixels(), len(targets))
	hits := make([]int, len(order))
	for i, pos := range order {
		hits[i] = targets[pos].ID
	}
	return hits, nil
}

// encodeID maps draw position i to a color; black means no target.
func encodeID(i int) [4]float32 {
	id := i + 1
	return [4]float32{
		float32(id&0xFF) / 255,
		float32((id>>8)&0xFF) / 255,
		float32((id>>16)&0xFF) / 255,
		1,
	}
}

// decodeID returns the draw position stored in an RGBA pixel, or -1.
func decodeID(px []byte) int {
	id := int(px[0]) | int(px[1])<<8 | int(px[2])<<16
	return id - 1
}

// collectHits returns the distinct draw positions found in pixels, ascending.
func collectHits(pixels []byte, count int) []int {
	seen := make(map[int]struct{})
	for i := 0; i+3 < len(pixels); i += 4 {
		pos := decodeID(pixels[i : i+4])
		if pos >= 0 && pos < count {
			seen[pos] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for pos := range seen {
		out = append(out, pos)
	}
	sort.Ints(out)
	return out
}
