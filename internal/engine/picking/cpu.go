package picking

import (
	"github.com/Faultbox/meshview/pkg/math"
)

// CPUBackend hit-tests on the CPU by clipping every triangle against the
// pick frustum in homogeneous clip space, the same test a GL selection pass
// performs. It needs no render context.
type CPUBackend struct{}

// HitTest implements Backend.
func (CPUBackend) HitTest(_ Region, _ Viewport, view, projection math.Mat4, targets []Target) ([]int, error) {
	viewProj := projection.Mul(view)

	var hits []int
	for i := range targets {
		t := &targets[i]
		mvp := viewProj.Mul(t.Model)
		for _, f := range t.Faces {
			tri := [3]math.Vec4{
				mvp.Clip(t.Positions[f[0]]),
				mvp.Clip(t.Positions[f[1]]),
				mvp.Clip(t.Positions[f[2]]),
			}
			if intersectsClipVolume(tri) {
				hits = append(hits, t.ID)
				break
			}
		}
	}
	return hits, nil
}

// planeDistance returns the signed distance-like value of v to clip plane p;
// v is inside the plane when the result is >= 0.
func planeDistance(v math.Vec4, p int) float32 {
	switch p {
	case 0:
		return v[3] + v[0]
	case 1:
		return v[3] - v[0]
	case 2:
		return v[3] + v[1]
	case 3:
		return v[3] - v[1]
	case 4:
		return v[3] + v[2]
	default:
		return v[3] - v[2]
	}
}

func intersectsClipVolume(tri [3]math.Vec4) bool {
	// Trivial reject: all corners outside one plane.
	// Trivial accept: a corner inside every plane.
	for p := 0; p < 6; p++ {
		if planeDistance(tri[0], p) < 0 && planeDistance(tri[1], p) < 0 && planeDistance(tri[2], p) < 0 {
			return false
		}
	}
	for _, v := range tri {
		inside := true
		for p := 0; p < 6 && inside; p++ {
			inside = planeDistance(v, p) >= 0
		}
		if inside {
			return true
		}
	}

	poly := tri[:]
	for p := 0; p < 6; p++ {
		poly = clipPolygon(poly, p)
		if len(poly) == 0 {
			return false
		}
	}
	return true
}

// clipPolygon clips a convex polygon against one clip plane (Sutherland-Hodgman).
func clipPolygon(poly []math.Vec4, p int) []math.Vec4 {
	out := make([]math.Vec4, 0, len(poly)+1)
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		da := planeDistance(a, p)
		db := planeDistance(b, p)

		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			t := da / (da - db)
			out = append(out, math.Vec4{
				a[0] + (b[0]-a[0])*t,
				a[1] + (b[1]-a[1])*t,
				a[2] + (b[2]-a[2])*t,
				a[3] + (b[3]-a[3])*t,
			})
		}
	}
	return out
}
