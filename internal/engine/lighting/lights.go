// Package lighting provides the fixed bank of directional lights.
package lighting

import (
	"errors"
	"fmt"
)

// LightCount is the number of lights in a Bank. Shaders declare arrays of this size.
const LightCount = 4

// ErrNoSuchLight is returned for a light index outside [0, LightCount).
var ErrNoSuchLight = errors.New("no such light")

// DirectionalLight is an infinitely distant light.
type DirectionalLight struct {
	Enabled   bool
	Direction [3]float32 // Points towards the light
	Diffuse   [3]float32 // RGB, 0-1 range
	Specular  [3]float32 // RGB, 0-1 range
}

// Bank holds the four lights. It is independent of mesh state.
type Bank struct {
	Lights [LightCount]DirectionalLight
}

// NewBank returns the default rig: a white key light from the upper right
// front, the others placed around the model and switched off.
func NewBank() *Bank {
	white := [3]float32{1, 1, 1}
	return &Bank{Lights: [LightCount]DirectionalLight{
		{Enabled: true, Direction: [3]float32{1, 1, 1}, Diffuse: white, Specular: white},
		{Direction: [3]float32{-1, 1, 1}, Diffuse: [3]float32{0.6, 0.6, 0.8}, Specular: [3]float32{0.3, 0.3, 0.4}},
		{Direction: [3]float32{0, 1, -1}, Diffuse: [3]float32{0.8, 0.7, 0.6}, Specular: [3]float32{0.4, 0.35, 0.3}},
		{Direction: [3]float32{0, -1, 0}, Diffuse: [3]float32{0.4, 0.4, 0.4}, Specular: [3]float32{0.1, 0.1, 0.1}},
	}}
}

// Toggle flips the enabled flag of light i.
func (b *Bank) Toggle(i int) error {
	if i < 0 || i >= LightCount {
		return fmt.Errorf("%w: %d", ErrNoSuchLight, i)
	}
	b.Lights[i].Enabled = !b.Lights[i].Enabled
	return nil
}

// Enabled reports whether light i is on. Out-of-range indices report false.
func (b *Bank) Enabled(i int) bool {
	if i < 0 || i >= LightCount {
		return false
	}
	return b.Lights[i].Enabled
}

// GetDirections returns directions as a flat slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *Bank) GetDirections() []float32 {
	return b.flatten(func(l *DirectionalLight) [3]float32 { return l.Direction })
}

// GetDiffuse returns diffuse colors as a flat slice for GPU upload.
func (b *Bank) GetDiffuse() []float32 {
	return b.flatten(func(l *DirectionalLight) [3]float32 { return l.Diffuse })
}

// GetSpecular returns specular colors as a flat slice for GPU upload.
func (b *Bank) GetSpecular() []float32 {
	return b.flatten(func(l *DirectionalLight) [3]float32 { return l.Specular })
}

// GetEnabled returns 1 for enabled lights and 0 otherwise.
func (b *Bank) GetEnabled() []int32 {
	result := make([]int32, LightCount)
	for i := range b.Lights {
		if b.Lights[i].Enabled {
			result[i] = 1
		}
	}
	return result
}

func (b *Bank) flatten(get func(*DirectionalLight) [3]float32) []float32 {
	result := make([]float32, LightCount*3)
	for i := range b.Lights {
		v := get(&b.Lights[i])
		result[i*3+0] = v[0]
		result[i*3+1] = v[1]
		result[i*3+2] = v[2]
	}
	return result
}
