package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestMulVec4Point(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.MulVec4(Vec4{1, 2, 3, 1})

	expected := Vec4{11, 22, 33, 1}
	if result != expected {
		t.Errorf("MulVec4: got %v, want %v", result, expected)
	}
}

func TestMulVec4Direction(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.MulVec4(Vec4{1, 2, 3, 0})

	// w = 0 ignores translation
	expected := Vec4{1, 2, 3, 0}
	if result != expected {
		t.Errorf("MulVec4 direction: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(Radians(90))
	result := m.MulVec4(Vec4{1, 0, 0, 1})

	// (1,0,0) turns to (0,0,-1)
	if abs(result[0]) > 0.001 || abs(result[1]) > 0.001 || abs(result[2]+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateX90(t *testing.T) {
	m := RotateX(Radians(90))
	result := m.MulVec4(Vec4{0, 1, 0, 1})

	// (0,1,0) turns to (0,0,1)
	if abs(result[0]) > 0.001 || abs(result[1]) > 0.001 || abs(result[2]-1) > 0.001 {
		t.Errorf("RotateX 90: got %v, want (0, 0, 1)", result)
	}
}

func TestTranslateThenRotate(t *testing.T) {
	// Rotation is applied to the point first, translation second.
	m := Translate(5, 0, 0).Mul(RotateY(Radians(90)))
	result := m.MulVec4(Vec4{1, 0, 0, 1})

	if abs(result[0]-5) > 0.001 || abs(result[2]+1) > 0.001 {
		t.Errorf("Translate*RotateY: got %v, want (5, 0, -1)", result)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1.0, 0.1, 100.0)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestPickMatrixFullViewportIsIdentity(t *testing.T) {
	m := PickMatrix(400, 300, 800, 600, 800, 600)
	if m != Identity() {
		t.Errorf("PickMatrix over the whole viewport: got %v, want identity", m)
	}
}

func TestPickMatrixCentresRegion(t *testing.T) {
	const w, h = 800, 600
	x, y := float32(200), float32(450)

	// NDC coordinates of the pick pixel in the unpicked projection.
	ndcX := 2*x/w - 1
	ndcY := 2*y/h - 1

	m := PickMatrix(x, y, 5, 5, w, h)
	got := m.MulVec4(Vec4{ndcX, ndcY, 0, 1})

	if abs(got[0]) > 1e-4 || abs(got[1]) > 1e-4 {
		t.Errorf("pick centre should map to NDC origin, got (%f, %f)", got[0], got[1])
	}

	// A pixel 2.5px to the right lands on the right edge of the pick box.
	edge := m.MulVec4(Vec4{2*(x+2.5)/w - 1, ndcY, 0, 1})
	if abs(edge[0]-1) > 1e-3 {
		t.Errorf("pick box edge should map to x=1, got %f", edge[0])
	}
}

func TestPickMatrixDegenerateBox(t *testing.T) {
	if m := PickMatrix(10, 10, 0, 5, 100, 100); m != Identity() {
		t.Errorf("zero-width pick box should yield identity, got %v", m)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
